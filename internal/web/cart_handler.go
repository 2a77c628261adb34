package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/validation"
)

type CartHandler struct {
	catalog Catalog
	carts   cart.Storage
	render  *Renderer
}

func NewCartHandler(catalog Catalog, carts cart.Storage, render *Renderer) *CartHandler {
	return &CartHandler{catalog: catalog, carts: carts, render: render}
}

// AddItem adds one unit of a product, snapshotting it from the live
// catalog at the moment of insertion.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PostFormValue("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		Logger(r.Context()).Error("catalog fetch failed", zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	session := h.session(r)
	for _, p := range products {
		if p.ID == productID {
			session.AddItem(r.Context(), p)
			redirectBack(w, r)
			return
		}
	}
	http.NotFound(w, r)
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}

	qty, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		http.Error(w, "Quantity must be a whole number", http.StatusBadRequest)
		return
	}
	if qty > 0 {
		if err := validation.ValidateQuantity(qty, 0); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	h.session(r).UpdateQuantity(r.Context(), productID, qty)
	redirectBack(w, r)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}

	h.session(r).RemoveItem(r.Context(), productID)
	redirectBack(w, r)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.session(r).Clear(r.Context())
	redirectBack(w, r)
}

func (h *CartHandler) ToggleDrawer(w http.ResponseWriter, r *http.Request) {
	h.session(r).ToggleDrawer(r.Context())
	redirectBack(w, r)
}

// Drawer returns the cart fragment on its own, for in-page refreshes.
func (h *CartHandler) Drawer(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	h.render.Partial(w, http.StatusOK, "index.html", "cart_drawer", struct {
		Cart *cart.Cart
	}{session.Cart})
}

func (h *CartHandler) session(r *http.Request) *cart.Session {
	return cart.Open(r.Context(), CartID(r.Context()), h.carts, Logger(r.Context()))
}

// redirectBack returns the visitor to the page the form was posted from.
// The Referer header is caller-supplied, so only same-host or relative
// targets are honored; anything else falls back to the storefront.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if u, err := url.Parse(r.Header.Get("Referer")); err == nil &&
		(u.Host == "" || u.Host == r.Host) &&
		strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//") {
		target = u.Path
		if u.RawQuery != "" {
			target += "?" + u.RawQuery
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
