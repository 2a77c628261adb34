package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPacked    OrderStatus = "packed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
	IsHarvested bool            `json:"is_harvested"`
	Product     *Product        `json:"product,omitempty"`
}

type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Address       string          `json:"address"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        OrderStatus     `json:"status"`
	// The backend emits naive ISO-8601 timestamps, which do not parse as
	// RFC 3339. Kept as strings; they are display-only here.
	CreatedAt    string      `json:"created_at"`
	DeliveryDate string      `json:"delivery_date"`
	Items        []OrderItem `json:"items"`
}

type OrderItemCreate struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderCreateRequest struct {
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Address       string            `json:"address"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	Items         []OrderItemCreate `json:"items"`
}

type OrderCreateResponse struct {
	Status  string `json:"status"`
	OrderID int64  `json:"order_id"`
}
