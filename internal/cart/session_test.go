package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

type failingStorage struct {
	loadErr  error
	saveErr  error
	saves    int
	snapshot *Cart
}

func (f *failingStorage) Load(context.Context, string) (*Cart, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.snapshot == nil {
		return nil, ErrNotFound
	}
	return f.snapshot.Clone(), nil
}

func (f *failingStorage) Save(_ context.Context, _ string, c *Cart) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = c.Clone()
	return nil
}

func (f *failingStorage) Delete(context.Context, string) error {
	f.snapshot = nil
	return nil
}

func TestOpen_MissingCartStartsEmpty(t *testing.T) {
	s := Open(context.Background(), "c1", &failingStorage{}, zap.NewNop())
	assert.True(t, s.Cart.IsEmpty())
	assert.False(t, s.Cart.DrawerOpen)
}

func TestOpen_StorageErrorFailsOpen(t *testing.T) {
	st := &failingStorage{loadErr: errors.New("connection refused")}
	s := Open(context.Background(), "c1", st, zap.NewNop())
	assert.True(t, s.Cart.IsEmpty())
}

func TestSession_SavesAfterEveryMutation(t *testing.T) {
	st := &failingStorage{}
	ctx := context.Background()
	s := Open(ctx, "c1", st, zap.NewNop())

	p := domain.Product{ID: 1, Name: "Okra"}
	s.AddItem(ctx, p)
	s.UpdateQuantity(ctx, 1, 4)
	s.ToggleDrawer(ctx)
	s.RemoveItem(ctx, 1)
	s.Clear(ctx)

	assert.Equal(t, 5, st.saves)
}

func TestSession_SaveFailureIsSilent(t *testing.T) {
	st := &failingStorage{saveErr: errors.New("write timeout")}
	ctx := context.Background()
	s := Open(ctx, "c1", st, zap.NewNop())

	// The mutation still applies locally even when persistence fails.
	s.AddItem(ctx, domain.Product{ID: 1, Name: "Okra"})
	assert.Equal(t, 1, s.Cart.ItemCount())
}

func TestSession_RoundTripThroughStorage(t *testing.T) {
	st := NewMemoryStorage()
	ctx := context.Background()

	s := Open(ctx, "c1", st, zap.NewNop())
	s.AddItem(ctx, domain.Product{ID: 1, Name: "Okra"})
	s.AddItem(ctx, domain.Product{ID: 2, Name: "Beans"})
	s.UpdateQuantity(ctx, 2, 6)
	s.ToggleDrawer(ctx)

	reloaded := Open(ctx, "c1", st, zap.NewNop())
	require.Len(t, reloaded.Cart.Lines, 2)
	assert.Equal(t, s.Cart.Lines, reloaded.Cart.Lines)
	assert.True(t, reloaded.Cart.DrawerOpen)
	assert.Equal(t, 7, reloaded.Cart.ItemCount())
}
