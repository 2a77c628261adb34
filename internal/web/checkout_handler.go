package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/checkout"
	"github.com/NaveenSasalu/organic-farm/internal/validation"
)

type CheckoutHandler struct {
	service *checkout.Service
	carts   cart.Storage
	render  *Renderer
}

func NewCheckoutHandler(service *checkout.Service, carts cart.Storage, render *Renderer) *CheckoutHandler {
	return &CheckoutHandler{service: service, carts: carts, render: render}
}

type checkoutPage struct {
	basePage
	Form      validation.CheckoutForm
	Errors    map[string]string
	SubmitErr string
}

func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := checkoutPage{basePage: newBasePage(r.Context(), "Delivery Details", h.carts)}
	h.render.HTML(w, http.StatusOK, "checkout.html", page)
}

// Submit validates the delivery form, places the order through the
// checkout service and sends the customer to a confirmation page. Field
// errors re-render the form with everything the customer typed.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form := validation.CheckoutForm{
		CustomerName:  r.PostFormValue("customer_name"),
		CustomerEmail: r.PostFormValue("customer_email"),
		Address:       r.PostFormValue("address"),
	}

	if res := validation.ValidateCheckoutForm(form); !res.Valid {
		page := checkoutPage{
			basePage: newBasePage(r.Context(), "Delivery Details", h.carts),
			Form:     form,
			Errors:   res.Errors,
		}
		h.render.HTML(w, http.StatusUnprocessableEntity, "checkout.html", page)
		return
	}

	result, err := h.service.Submit(r.Context(), CartID(r.Context()), form)
	if err != nil {
		h.submitError(w, r, form, err)
		return
	}

	q := url.Values{}
	q.Set("order", strconv.FormatInt(result.OrderID, 10))
	q.Set("email", form.CustomerEmail)
	if result.Warning != "" {
		q.Set("notice", result.Warning)
	}
	http.Redirect(w, r, "/checkout/placed?"+q.Encode(), http.StatusSeeOther)
}

type orderPlacedPage struct {
	basePage
	OrderID string
	Email   string
	Notice  string
}

// Placed is the confirmation page, reached by redirect so a refresh cannot
// resubmit the order.
func (h *CheckoutHandler) Placed(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order")
	if !validation.IsValidOrderID(orderID) {
		http.NotFound(w, r)
		return
	}
	page := orderPlacedPage{
		basePage: newBasePage(r.Context(), "Order placed", h.carts),
		OrderID:  orderID,
		Email:    r.URL.Query().Get("email"),
		Notice:   r.URL.Query().Get("notice"),
	}
	h.render.HTML(w, http.StatusOK, "order_placed.html", page)
}

func (h *CheckoutHandler) submitError(w http.ResponseWriter, r *http.Request, form validation.CheckoutForm, err error) {
	page := checkoutPage{
		basePage: newBasePage(r.Context(), "Delivery Details", h.carts),
		Form:     form,
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		// The empty-cart state renders its own message.
	case errors.Is(err, checkout.ErrNothingAvailable):
		page.SubmitErr = err.Error()
	default:
		Logger(r.Context()).Warn("order submission failed", zap.Error(err))
		page.SubmitErr = err.Error()
	}
	h.render.HTML(w, http.StatusOK, "checkout.html", page)
}
