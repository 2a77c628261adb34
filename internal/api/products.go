package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

type paginatedProducts struct {
	Items      []domain.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ListProducts fetches the current catalog. Concurrent callers share one
// in-flight request. The backend has shipped both a bare array and a
// paginated wrapper for this endpoint; both shapes are accepted.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("products", func() (any, error) {
		var raw json.RawMessage
		if err := c.doJSON(ctx, http.MethodGet, "/products/", "", nil, &raw); err != nil {
			return nil, err
		}
		return decodeProductList(raw)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func decodeProductList(raw json.RawMessage) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var page paginatedProducts
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("unrecognized product list shape: %w", err)
	}
	return page.Items, nil
}

// UpsertProduct creates or updates a product, optionally attaching an image
// file. The endpoint takes multipart form data, not JSON.
func (c *Client) UpsertProduct(ctx context.Context, token string, req domain.ProductUpsertRequest, image io.Reader, imageName string) error {
	fields := map[string]string{
		"name":      req.Name,
		"price":     req.Price.String(),
		"stock_qty": strconv.Itoa(req.StockQty),
		"unit":      req.Unit,
		"farmer_id": strconv.FormatInt(req.FarmerID, 10),
	}
	if req.ID != 0 {
		fields["id"] = strconv.FormatInt(req.ID, 10)
	}
	return c.postMultipart(ctx, "/products/upsert", token, fields, image, imageName)
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, token string, productID int64) error {
	path := fmt.Sprintf("/products/%d", productID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// UpdateStock sets a product's absolute stock quantity.
func (c *Client) UpdateStock(ctx context.Context, token string, productID int64, qty int) error {
	path := fmt.Sprintf("/products/%d/stock?qty=%d", productID, qty)
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}

func (c *Client) postMultipart(ctx context.Context, path, token string, fields map[string]string, file io.Reader, fileName string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile("file", fileName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("copy form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, token, nil)
}
