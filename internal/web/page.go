package web

import (
	"context"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// basePage is embedded by every page's view model; the layout reads the
// cart badge and login state from it.
type basePage struct {
	Title    string
	Cart     *cart.Cart
	LoggedIn bool
	IsAdmin  bool
}

func newBasePage(ctx context.Context, title string, carts cart.Storage) basePage {
	session := cart.Open(ctx, CartID(ctx), carts, Logger(ctx))
	return basePage{
		Title:    title,
		Cart:     session.Cart,
		LoggedIn: Token(ctx) != "",
		IsAdmin:  Role(ctx) == domain.RoleAdmin,
	}
}
