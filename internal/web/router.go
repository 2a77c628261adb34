package web

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/checkout"
)

// Backend is the full API surface the web layer consumes; *api.Client
// satisfies it.
type Backend interface {
	Catalog
	OrderTracker
	Authenticator
	AdminBackend
}

// NewRouter assembles the whole site: storefront, cart endpoints, checkout,
// order tracking, auth and the gated back office.
func NewRouter(backend Backend, carts cart.Storage, checkoutSvc *checkout.Service, render *Renderer, log *zap.Logger, requestTimeout time.Duration) http.Handler {
	shop := NewShopHandler(backend, carts, render)
	cartH := NewCartHandler(backend, carts, render)
	checkoutH := NewCheckoutHandler(checkoutSvc, carts, render)
	track := NewTrackHandler(backend, carts, render)
	auth := NewAuthHandler(backend, carts, render)
	admin := NewAdminHandler(backend, carts, render)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID(log))
	r.Use(AccessLog)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(CartCookie)
	r.Use(Auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/placeholder-produce.png", http.FileServer(http.FS(static)))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", shop.Home)
	r.Get("/farmer/{id}", shop.Farmer)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartH.Drawer)
		r.Post("/items", cartH.AddItem)
		r.Post("/items/{product_id}/quantity", cartH.UpdateQuantity)
		r.Post("/items/{product_id}/remove", cartH.RemoveItem)
		r.Post("/clear", cartH.Clear)
		r.Post("/toggle", cartH.ToggleDrawer)
	})

	r.Get("/checkout", checkoutH.Show)
	r.Post("/checkout", checkoutH.Submit)
	r.Get("/checkout/placed", checkoutH.Placed)

	r.Get("/track", track.Show)

	r.Get("/login", auth.Show)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAuth)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		})

		r.Get("/inventory", admin.Inventory)
		r.Post("/inventory", admin.SaveProduct)
		r.Post("/inventory/{product_id}/stock", admin.UpdateStock)
		r.Post("/inventory/{product_id}/delete", admin.DeleteProduct)

		r.Get("/orders", admin.Orders)
		r.Post("/orders/{order_id}/status", admin.SetOrderStatus)
		r.Post("/orders/{order_id}/cancel", admin.CancelOrder)

		r.Get("/farmers", admin.Farmers)
		r.Post("/farmers", admin.RegisterFarmer)

		r.Route("/users", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", admin.Users)
			r.Post("/{user_id}/role", admin.SetUserRole)
		})
	})

	return otelhttp.NewHandler(r, "organic-farm-web")
}
