package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
	"github.com/NaveenSasalu/organic-farm/internal/validation"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidForm = errors.New("checkout form is invalid")

	// ErrNothingAvailable means reconciliation removed every line.
	ErrNothingAvailable = errors.New("no items in the cart are currently available")
)

// Backend is the slice of the API client checkout needs.
type Backend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (*domain.OrderCreateResponse, error)
}

const catalogUnreachableWarning = "We could not verify current stock and prices; your order was placed with the values shown in your cart."

type Service struct {
	backend Backend
	carts   cart.Storage
	log     *zap.Logger
}

func NewService(backend Backend, carts cart.Storage, log *zap.Logger) *Service {
	return &Service{backend: backend, carts: carts, log: log}
}

// Result reports a placed order plus any reconciliation warning the page
// should surface.
type Result struct {
	OrderID int64
	Warning string
}

// Submit validates the delivery form, reconciles the cart against a fresh
// catalog fetch and posts the order. A failed catalog fetch is downgraded
// to a warning; checkout proceeds with the possibly stale local snapshot
// rather than blocking. On success the cart is cleared.
func (s *Service) Submit(ctx context.Context, cartID string, form validation.CheckoutForm) (*Result, error) {
	if res := validation.ValidateCheckoutForm(form); !res.Valid {
		return nil, ErrInvalidForm
	}

	c := cart.Open(ctx, cartID, s.carts, s.log).Cart
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := c.Lines
	var warning string
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.log.Warn("catalog fetch failed, submitting unreconciled cart",
			zap.String("cart_id", cartID), zap.Error(err))
		warning = catalogUnreachableWarning
	} else {
		lines, warning = Reconcile(lines, products)
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNothingAvailable, warning)
		}
	}

	req := domain.OrderCreateRequest{
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		Address:       form.Address,
		TotalPrice:    total(lines),
	}
	for _, l := range lines {
		req.Items = append(req.Items, domain.OrderItemCreate{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}

	resp, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, cartID); err != nil {
		s.log.Warn("clearing cart after order failed",
			zap.String("cart_id", cartID), zap.Error(err))
	}

	return &Result{OrderID: resp.OrderID, Warning: warning}, nil
}
