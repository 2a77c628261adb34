package cart

import (
	"context"
	"errors"
)

// Storage persists cart snapshots keyed by cart id. Concurrent writers for
// the same id are last-write-wins; there is no merge.
type Storage interface {
	Load(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, cartID string, c *Cart) error
	Delete(ctx context.Context, cartID string) error
}

var ErrNotFound = errors.New("cart not found")
