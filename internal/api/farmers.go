package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// FarmerProfile is the detail view: the farmer plus their products.
type FarmerProfile struct {
	domain.Farmer
	Products []domain.Product `json:"products"`
}

func (c *Client) ListFarmers(ctx context.Context) ([]domain.Farmer, error) {
	var farmers []domain.Farmer
	if err := c.doJSON(ctx, http.MethodGet, "/farmers/", "", nil, &farmers); err != nil {
		return nil, err
	}
	return farmers, nil
}

func (c *Client) GetFarmer(ctx context.Context, farmerID int64) (*FarmerProfile, error) {
	var profile FarmerProfile
	path := fmt.Sprintf("/farmers/%d", farmerID)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RegisterFarmer creates the farmer profile and its login account in one
// call. Admin only; the endpoint takes multipart form data with an optional
// profile picture.
func (c *Client) RegisterFarmer(ctx context.Context, token string, req domain.FarmerCreateRequest, picture io.Reader, pictureName string) error {
	fields := map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
		"location": req.Location,
		"bio":      req.Bio,
	}
	return c.postMultipart(ctx, "/farmers/", token, fields, picture, pictureName)
}
