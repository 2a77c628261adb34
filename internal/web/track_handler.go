package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/api"
	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
	"github.com/NaveenSasalu/organic-farm/internal/validation"
)

// OrderTracker looks up a single order by id and email.
type OrderTracker interface {
	TrackOrder(ctx context.Context, orderID int, email string) (*domain.Order, error)
}

type TrackHandler struct {
	tracker OrderTracker
	carts   cart.Storage
	render  *Renderer
}

func NewTrackHandler(tracker OrderTracker, carts cart.Storage, render *Renderer) *TrackHandler {
	return &TrackHandler{tracker: tracker, carts: carts, render: render}
}

type trackPage struct {
	basePage
	OrderID string
	Email   string
	Notice  string
	Error   string
	Order   *domain.Order
}

// Show renders the lookup form and, when both query parameters are
// present, the order itself. Inputs are validated locally before the
// backend is asked anything. The id format check also keeps the page from
// being used to enumerate order numbers.
func (h *TrackHandler) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := trackPage{
		basePage: newBasePage(r.Context(), "Track your order", h.carts),
		OrderID:  strings.TrimSpace(q.Get("order")),
		Email:    strings.TrimSpace(q.Get("email")),
		Notice:   q.Get("notice"),
	}

	if page.OrderID == "" && page.Email == "" {
		h.render.HTML(w, http.StatusOK, "track.html", page)
		return
	}

	switch {
	case page.OrderID == "" || page.Email == "":
		page.Error = "Please enter both order number and email"
	case !validation.IsValidOrderID(page.OrderID):
		page.Error = "Please enter a valid order number"
	case !validation.IsValidEmail(page.Email):
		page.Error = "Please enter a valid email address"
	}
	if page.Error != "" {
		h.render.HTML(w, http.StatusOK, "track.html", page)
		return
	}

	orderID, _ := strconv.Atoi(page.OrderID)
	order, err := h.tracker.TrackOrder(r.Context(), orderID, page.Email)
	switch {
	case err == nil:
		page.Order = order
	case api.IsNotFound(err):
		page.Error = "Order not found. Please check your order number and email."
	case api.IsRateLimited(err):
		page.Error = "Too many requests. Please wait a moment and try again."
	default:
		Logger(r.Context()).Warn("order lookup failed", zap.Error(err))
		page.Error = "Failed to fetch order. Please try again."
	}

	h.render.HTML(w, http.StatusOK, "track.html", page)
}
