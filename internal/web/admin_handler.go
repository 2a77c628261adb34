package web

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
	"github.com/NaveenSasalu/organic-farm/internal/validation"
)

const maxUploadSize = 5 << 20 // 5MB, matches the backend's upload cap

// AdminBackend is everything the back office calls on the API.
type AdminBackend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpsertProduct(ctx context.Context, token string, req domain.ProductUpsertRequest, image io.Reader, imageName string) error
	UpdateStock(ctx context.Context, token string, productID int64, qty int) error
	DeleteProduct(ctx context.Context, token string, productID int64) error
	ListFarmers(ctx context.Context) ([]domain.Farmer, error)
	RegisterFarmer(ctx context.Context, token string, req domain.FarmerCreateRequest, picture io.Reader, pictureName string) error
	ListOrders(ctx context.Context, token string, status domain.OrderStatus, farmerID int64) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int64, status domain.OrderStatus) error
	CancelOrder(ctx context.Context, token string, orderID int64) error
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, token string, userID int64, role domain.UserRole) error
}

type AdminHandler struct {
	backend AdminBackend
	carts   cart.Storage
	render  *Renderer
}

func NewAdminHandler(backend AdminBackend, carts cart.Storage, render *Renderer) *AdminHandler {
	return &AdminHandler{backend: backend, carts: carts, render: render}
}

type inventoryPage struct {
	basePage
	Products []domain.Product
	Farmers  []domain.Farmer
	Form     validation.ProductForm
	Errors   map[string]string
	SaveErr  string
}

func (h *AdminHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	h.renderInventory(w, r, http.StatusOK, validation.ProductForm{}, nil, "")
}

// SaveProduct handles both create and update; the backend upserts on id.
func (h *AdminHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form, errs := parseProductForm(r)
	if res := validation.ValidateProductForm(form); !res.Valid {
		for k, v := range res.Errors {
			if _, dup := errs[k]; !dup {
				errs[k] = v
			}
		}
	}
	if len(errs) > 0 {
		h.renderInventory(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}

	req := domain.ProductUpsertRequest{
		Name:     form.Name,
		Price:    form.Price,
		StockQty: form.StockQty,
		Unit:     form.Unit,
		FarmerID: form.FarmerID,
	}
	if id, err := strconv.ParseInt(r.FormValue("id"), 10, 64); err == nil {
		req.ID = id
	}

	image, imageName := formFile(r, "file")
	if err := h.backend.UpsertProduct(r.Context(), Token(r.Context()), req, image, imageName); err != nil {
		Logger(r.Context()).Warn("product upsert failed", zap.Error(err))
		h.renderInventory(w, r, http.StatusOK, form, nil, err.Error())
		return
	}
	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}
	qty, err := strconv.Atoi(r.PostFormValue("qty"))
	if err != nil || qty < 0 {
		http.Error(w, "qty must be a non-negative integer", http.StatusBadRequest)
		return
	}

	if err := h.backend.UpdateStock(r.Context(), Token(r.Context()), productID, qty); err != nil {
		Logger(r.Context()).Warn("stock update failed", zap.Int64("product_id", productID), zap.Error(err))
	}
	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.backend.DeleteProduct(r.Context(), Token(r.Context()), productID); err != nil {
		Logger(r.Context()).Warn("product delete failed", zap.Int64("product_id", productID), zap.Error(err))
	}
	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

type adminOrdersPage struct {
	basePage
	Orders   []domain.Order
	Status   domain.OrderStatus
	Statuses []domain.OrderStatus
	LoadErr  string
}

var orderStatuses = []domain.OrderStatus{
	domain.OrderPending,
	domain.OrderConfirmed,
	domain.OrderPacked,
	domain.OrderDelivered,
	domain.OrderCancelled,
}

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	page := adminOrdersPage{
		basePage: newBasePage(r.Context(), "Orders", h.carts),
		Status:   domain.OrderStatus(r.URL.Query().Get("status")),
		Statuses: orderStatuses,
	}

	var farmerID int64
	if id, err := strconv.ParseInt(r.URL.Query().Get("farmer_id"), 10, 64); err == nil {
		farmerID = id
	}

	orders, err := h.backend.ListOrders(r.Context(), Token(r.Context()), page.Status, farmerID)
	if err != nil {
		Logger(r.Context()).Warn("order list failed", zap.Error(err))
		page.LoadErr = err.Error()
	}
	page.Orders = orders
	h.render.HTML(w, http.StatusOK, "admin_orders.html", page)
}

func (h *AdminHandler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		http.Error(w, "order_id must be a positive integer", http.StatusBadRequest)
		return
	}

	status := domain.OrderStatus(r.PostFormValue("status"))
	if !validStatus(status) {
		http.Error(w, "unknown order status", http.StatusBadRequest)
		return
	}

	if err := h.backend.UpdateOrderStatus(r.Context(), Token(r.Context()), orderID, status); err != nil {
		Logger(r.Context()).Warn("status update failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

func (h *AdminHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		http.Error(w, "order_id must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.backend.CancelOrder(r.Context(), Token(r.Context()), orderID); err != nil {
		Logger(r.Context()).Warn("cancel failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

type adminFarmersPage struct {
	basePage
	Farmers []domain.Farmer
	Form    validation.FarmerForm
	Bio     string
	Errors  map[string]string
	SaveErr string
}

func (h *AdminHandler) Farmers(w http.ResponseWriter, r *http.Request) {
	h.renderFarmers(w, r, http.StatusOK, validation.FarmerForm{}, "", nil, "")
}

func (h *AdminHandler) RegisterFarmer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	form := validation.FarmerForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Location: r.FormValue("location"),
	}
	bio := r.FormValue("bio")

	if res := validation.ValidateFarmerForm(form); !res.Valid {
		h.renderFarmers(w, r, http.StatusUnprocessableEntity, form, bio, res.Errors, "")
		return
	}

	req := domain.FarmerCreateRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Location: form.Location,
		Bio:      bio,
	}
	picture, pictureName := formFile(r, "file")
	if err := h.backend.RegisterFarmer(r.Context(), Token(r.Context()), req, picture, pictureName); err != nil {
		Logger(r.Context()).Warn("farmer registration failed", zap.Error(err))
		h.renderFarmers(w, r, http.StatusOK, form, bio, nil, err.Error())
		return
	}
	http.Redirect(w, r, "/admin/farmers", http.StatusSeeOther)
}

type adminUsersPage struct {
	basePage
	Users   []domain.User
	LoadErr string
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	page := adminUsersPage{basePage: newBasePage(r.Context(), "Users", h.carts)}

	users, err := h.backend.ListUsers(r.Context(), Token(r.Context()))
	if err != nil {
		Logger(r.Context()).Warn("user list failed", zap.Error(err))
		page.LoadErr = err.Error()
	}
	page.Users = users
	h.render.HTML(w, http.StatusOK, "admin_users.html", page)
}

func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "user_id must be a positive integer", http.StatusBadRequest)
		return
	}

	role := domain.UserRole(r.PostFormValue("role"))
	if role != domain.RoleAdmin && role != domain.RoleFarmer {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}

	if err := h.backend.UpdateUserRole(r.Context(), Token(r.Context()), userID, role); err != nil {
		Logger(r.Context()).Warn("role update failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (h *AdminHandler) renderInventory(w http.ResponseWriter, r *http.Request, status int, form validation.ProductForm, errs map[string]string, saveErr string) {
	page := inventoryPage{
		basePage: newBasePage(r.Context(), "Inventory", h.carts),
		Form:     form,
		Errors:   errs,
		SaveErr:  saveErr,
	}

	var err error
	if page.Products, err = h.backend.ListProducts(r.Context()); err != nil {
		Logger(r.Context()).Warn("product list failed", zap.Error(err))
	}
	if page.Farmers, err = h.backend.ListFarmers(r.Context()); err != nil {
		Logger(r.Context()).Warn("farmer list failed", zap.Error(err))
	}
	h.render.HTML(w, status, "admin_inventory.html", page)
}

func (h *AdminHandler) renderFarmers(w http.ResponseWriter, r *http.Request, status int, form validation.FarmerForm, bio string, errs map[string]string, saveErr string) {
	page := adminFarmersPage{
		basePage: newBasePage(r.Context(), "Farmers", h.carts),
		Form:     form,
		Bio:      bio,
		Errors:   errs,
		SaveErr:  saveErr,
	}

	var err error
	if page.Farmers, err = h.backend.ListFarmers(r.Context()); err != nil {
		Logger(r.Context()).Warn("farmer list failed", zap.Error(err))
	}
	h.render.HTML(w, status, "admin_farmers.html", page)
}

// parseProductForm converts the posted fields, collecting conversion
// problems as field errors so they render next to the inputs.
func parseProductForm(r *http.Request) (validation.ProductForm, map[string]string) {
	errs := make(map[string]string)
	form := validation.ProductForm{
		Name: r.FormValue("name"),
		Unit: r.FormValue("unit"),
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		errs["price"] = "Price must be a number"
	} else {
		form.Price = price
	}

	if qty, err := strconv.Atoi(r.FormValue("stock_qty")); err != nil {
		errs["stock_qty"] = "Stock must be a whole number"
	} else {
		form.StockQty = qty
	}

	if id, err := strconv.ParseInt(r.FormValue("farmer_id"), 10, 64); err == nil {
		form.FarmerID = id
	}

	return form, errs
}

func formFile(r *http.Request, field string) (io.Reader, string) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, ""
	}
	return file, header.Filename
}

func validStatus(s domain.OrderStatus) bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
