// Package validation holds the client-side field checks shared by the
// storefront and admin forms. Every function is pure and returns a
// value-level failure; nothing here panics or performs I/O. The backend
// re-validates everything. These checks exist for immediate feedback only
// and are never the security boundary.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Result reports the outcome of a whole-form validation. Errors maps field
// names to human-readable messages; an empty map means the form passed.
type Result struct {
	Valid  bool
	Errors map[string]string
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePassword returns the first failing requirement, checked in order:
// length, uppercase, lowercase, digit. A nil return means the password is
// acceptable.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return errors.New("Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return errors.New("Password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return errors.New("Password must contain at least one number")
	}
	return nil
}

type CheckoutForm struct {
	CustomerName  string
	CustomerEmail string
	Address       string
}

// ValidateCheckoutForm checks all three delivery fields independently and
// reports every violation together.
func ValidateCheckoutForm(form CheckoutForm) Result {
	errs := make(map[string]string)

	name := strings.TrimSpace(form.CustomerName)
	switch {
	case name == "":
		errs["customer_name"] = "Name is required"
	case len(name) < 2:
		errs["customer_name"] = "Name must be at least 2 characters"
	case len(name) > 100:
		errs["customer_name"] = "Name must be less than 100 characters"
	}

	email := strings.TrimSpace(form.CustomerEmail)
	switch {
	case email == "":
		errs["customer_email"] = "Email is required"
	case !IsValidEmail(email):
		errs["customer_email"] = "Please enter a valid email address"
	}

	address := strings.TrimSpace(form.Address)
	switch {
	case address == "":
		errs["address"] = "Address is required"
	case len(address) < 10:
		errs["address"] = "Please enter a complete address (at least 10 characters)"
	case len(address) > 500:
		errs["address"] = "Address must be less than 500 characters"
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

var (
	maxProductPrice = decimal.NewFromInt(100000)
	maxProductStock = 10000
)

type ProductForm struct {
	Name     string
	Price    decimal.Decimal
	StockQty int
	Unit     string
	FarmerID int64
}

func ValidateProductForm(form ProductForm) Result {
	errs := make(map[string]string)

	switch {
	case strings.TrimSpace(form.Name) == "":
		errs["name"] = "Product name is required"
	case len(form.Name) > 100:
		errs["name"] = "Name must be less than 100 characters"
	}

	switch {
	case form.Price.IsNegative():
		errs["price"] = "Price cannot be negative"
	case form.Price.GreaterThan(maxProductPrice):
		errs["price"] = "Price seems too high"
	}

	switch {
	case form.StockQty < 0:
		errs["stock_qty"] = "Stock cannot be negative"
	case form.StockQty > maxProductStock:
		errs["stock_qty"] = "Stock quantity seems too high"
	}

	if strings.TrimSpace(form.Unit) == "" {
		errs["unit"] = "Unit is required"
	}

	if form.FarmerID <= 0 {
		errs["farmer_id"] = "Please select a farmer"
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

type FarmerForm struct {
	Name     string
	Email    string
	Password string
	Location string
}

func ValidateFarmerForm(form FarmerForm) Result {
	errs := make(map[string]string)

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case len(name) < 2:
		errs["name"] = "Name must be at least 2 characters"
	}

	switch {
	case strings.TrimSpace(form.Email) == "":
		errs["email"] = "Email is required"
	case !IsValidEmail(form.Email):
		errs["email"] = "Please enter a valid email address"
	}

	if err := ValidatePassword(form.Password); err != nil {
		errs["password"] = err.Error()
	}

	if strings.TrimSpace(form.Location) == "" {
		errs["location"] = "Location is required"
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

const defaultMaxQuantity = 1000

// ValidateQuantity checks a cart quantity against available stock. A
// maxStock of zero or less falls back to the default cap.
func ValidateQuantity(quantity, maxStock int) error {
	if maxStock <= 0 {
		maxStock = defaultMaxQuantity
	}
	if quantity < 1 {
		return errors.New("Quantity must be at least 1")
	}
	if quantity > maxStock {
		return fmt.Errorf("Maximum quantity is %d", maxStock)
	}
	return nil
}

// IsValidOrderID bounds order lookups so the track page cannot be used to
// enumerate identifiers.
func IsValidOrderID(id string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	return err == nil && n > 0 && n < 10000000
}
