package domain

import "github.com/shopspring/decimal"

func init() {
	// The backend API encodes prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Farmer struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	Location   string `json:"location"`
	ProfilePic string `json:"profile_pic"`
}

type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	StockQty  int             `json:"stock_qty"`
	IsOrganic bool            `json:"is_organic"`
	ImageURL  string          `json:"image_url"`
	FarmerID  int64           `json:"farmer_id"`
	Farmer    *Farmer         `json:"farmer,omitempty"`
}

type ProductUpsertRequest struct {
	ID       int64           `json:"id,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	StockQty int             `json:"stock_qty"`
	Unit     string          `json:"unit"`
	FarmerID int64           `json:"farmer_id"`
}

type FarmerCreateRequest struct {
	Name     string
	Email    string
	Password string
	Location string
	Bio      string
}
