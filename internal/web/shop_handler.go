package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/api"
	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// Catalog is the read-only slice of the backend the storefront needs.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetFarmer(ctx context.Context, farmerID int64) (*api.FarmerProfile, error)
}

type ShopHandler struct {
	catalog Catalog
	carts   cart.Storage
	render  *Renderer
}

func NewShopHandler(catalog Catalog, carts cart.Storage, render *Renderer) *ShopHandler {
	return &ShopHandler{catalog: catalog, carts: carts, render: render}
}

type homePage struct {
	basePage
	Products []domain.Product
	LoadErr  bool
}

// Home is the storefront grid. A catalog outage renders the page with a
// "farm is resting" notice instead of failing.
func (h *ShopHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := homePage{basePage: newBasePage(r.Context(), "Fresh from the farm", h.carts)}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		Logger(r.Context()).Warn("catalog fetch failed", zap.Error(err))
		page.LoadErr = true
	}
	page.Products = products

	h.render.HTML(w, http.StatusOK, "index.html", page)
}

type farmerPage struct {
	basePage
	Farmer *api.FarmerProfile
}

func (h *ShopHandler) Farmer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	profile, err := h.catalog.GetFarmer(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		Logger(r.Context()).Error("farmer fetch failed", zap.Int64("farmer_id", id), zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	page := farmerPage{
		basePage: newBasePage(r.Context(), profile.Name, h.carts),
		Farmer:   profile,
	}
	h.render.HTML(w, http.StatusOK, "farmer.html", page)
}
