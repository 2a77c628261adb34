package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
	"github.com/NaveenSasalu/organic-farm/internal/validation"
)

type mockBackend struct {
	products    []domain.Product
	listErr     error
	createErr   error
	gotRequest  *domain.OrderCreateRequest
	orderID     int64
	createCalls int
}

func (m *mockBackend) ListProducts(context.Context) ([]domain.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockBackend) CreateOrder(_ context.Context, req domain.OrderCreateRequest) (*domain.OrderCreateResponse, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.gotRequest = &req
	return &domain.OrderCreateResponse{Status: "success", OrderID: m.orderID}, nil
}

func validForm() validation.CheckoutForm {
	return validation.CheckoutForm{
		CustomerName:  "John Doe",
		CustomerEmail: "john@test.com",
		Address:       "123 Main Street, City, State 12345",
	}
}

func seedCart(t *testing.T, storage cart.Storage, lines ...cart.Line) {
	t.Helper()
	require.NoError(t, storage.Save(context.Background(), "c1", &cart.Cart{Lines: lines}))
}

func TestSubmit_Success(t *testing.T) {
	storage := cart.NewMemoryStorage()
	seedCart(t, storage,
		line(1, "Tomatoes", 40, 2),
		line(2, "Spinach", 25, 3),
	)
	backend := &mockBackend{
		orderID: 42,
		products: []domain.Product{
			catalogProduct(1, 40, 10),
			catalogProduct(2, 25, 10),
		},
	}
	svc := NewService(backend, storage, zap.NewNop())

	res, err := svc.Submit(context.Background(), "c1", validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.OrderID)
	assert.Empty(t, res.Warning)

	require.NotNil(t, backend.gotRequest)
	assert.Equal(t, "John Doe", backend.gotRequest.CustomerName)
	assert.True(t, backend.gotRequest.TotalPrice.Equal(decimal.NewFromInt(155)))
	require.Len(t, backend.gotRequest.Items, 2)

	// Cart is cleared after a placed order.
	_, err = storage.Load(context.Background(), "c1")
	assert.ErrorIs(t, err, cart.ErrNotFound)
}

func TestSubmit_InvalidFormRejectedBeforeAnyCall(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, cart.NewMemoryStorage(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "c1", validation.CheckoutForm{})
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Zero(t, backend.createCalls)
}

func TestSubmit_EmptyCart(t *testing.T) {
	svc := NewService(&mockBackend{}, cart.NewMemoryStorage(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "c1", validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_ReconciliationAdjustsOrder(t *testing.T) {
	storage := cart.NewMemoryStorage()
	seedCart(t, storage,
		line(1, "Tomatoes", 40, 8),
		line(2, "Spinach", 25, 1),
	)
	backend := &mockBackend{
		orderID: 7,
		products: []domain.Product{
			catalogProduct(1, 45, 3), // clamped and repriced
			catalogProduct(2, 25, 0), // dropped
		},
	}
	svc := NewService(backend, storage, zap.NewNop())

	res, err := svc.Submit(context.Background(), "c1", validForm())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warning)

	require.Len(t, backend.gotRequest.Items, 1)
	item := backend.gotRequest.Items[0]
	assert.Equal(t, int64(1), item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(45)))
	assert.True(t, backend.gotRequest.TotalPrice.Equal(decimal.NewFromInt(135)))
}

func TestSubmit_EverythingUnavailable(t *testing.T) {
	storage := cart.NewMemoryStorage()
	seedCart(t, storage, line(1, "Tomatoes", 40, 2))
	backend := &mockBackend{products: []domain.Product{catalogProduct(1, 40, 0)}}
	svc := NewService(backend, storage, zap.NewNop())

	_, err := svc.Submit(context.Background(), "c1", validForm())
	assert.ErrorIs(t, err, ErrNothingAvailable)
	assert.Zero(t, backend.createCalls)
}

func TestSubmit_CatalogDownProceedsWithWarning(t *testing.T) {
	storage := cart.NewMemoryStorage()
	seedCart(t, storage, line(1, "Tomatoes", 40, 2))
	backend := &mockBackend{orderID: 9, listErr: errors.New("connection refused")}
	svc := NewService(backend, storage, zap.NewNop())

	res, err := svc.Submit(context.Background(), "c1", validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.OrderID)
	assert.Equal(t, catalogUnreachableWarning, res.Warning)

	// The local snapshot was submitted as-is.
	require.Len(t, backend.gotRequest.Items, 1)
	assert.Equal(t, 2, backend.gotRequest.Items[0].Quantity)
}

func TestSubmit_BackendRejectionSurfaces(t *testing.T) {
	storage := cart.NewMemoryStorage()
	seedCart(t, storage, line(1, "Tomatoes", 40, 2))
	backend := &mockBackend{
		products:  []domain.Product{catalogProduct(1, 40, 10)},
		createErr: errors.New("Only 1 kg of Tomatoes left!"),
	}
	svc := NewService(backend, storage, zap.NewNop())

	_, err := svc.Submit(context.Background(), "c1", validForm())
	assert.EqualError(t, err, "Only 1 kg of Tomatoes left!")

	// The cart survives a failed submission.
	c, loadErr := storage.Load(context.Background(), "c1")
	require.NoError(t, loadErr)
	assert.False(t, c.IsEmpty())
}
