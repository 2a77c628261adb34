package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// Session binds a Cart to its storage key and writes the full snapshot back
// after every mutation, so the cart survives reloads and restarts.
//
// Storage failures never reach the caller: a failed load starts from an
// empty cart and a failed save only logs. The cart degrades, it does not
// break the page.
type Session struct {
	ID      string
	Cart    *Cart
	storage Storage
	log     *zap.Logger
}

// Open loads the visitor's cart. A missing key, corrupt snapshot or storage
// error all yield an empty cart with the drawer closed.
func Open(ctx context.Context, cartID string, storage Storage, log *zap.Logger) *Session {
	c, err := storage.Load(ctx, cartID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("cart load failed, starting empty",
				zap.String("cart_id", cartID), zap.Error(err))
		}
		c = &Cart{}
	}
	return &Session{ID: cartID, Cart: c, storage: storage, log: log}
}

func (s *Session) AddItem(ctx context.Context, p domain.Product) {
	s.Cart.AddItem(p)
	s.save(ctx)
}

func (s *Session) RemoveItem(ctx context.Context, productID int64) {
	s.Cart.RemoveItem(productID)
	s.save(ctx)
}

func (s *Session) UpdateQuantity(ctx context.Context, productID int64, qty int) {
	s.Cart.UpdateQuantity(productID, qty)
	s.save(ctx)
}

func (s *Session) Clear(ctx context.Context) {
	s.Cart.Clear()
	s.save(ctx)
}

func (s *Session) ToggleDrawer(ctx context.Context) {
	s.Cart.ToggleDrawer()
	s.save(ctx)
}

func (s *Session) save(ctx context.Context) {
	if err := s.storage.Save(ctx, s.ID, s.Cart); err != nil {
		s.log.Warn("cart save failed",
			zap.String("cart_id", s.ID), zap.Error(err))
	}
}
