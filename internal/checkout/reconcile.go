// Package checkout turns a locally held cart into a submitted order. The
// cart snapshots prices and stock at add-time, so right before submission
// the lines are reconciled against a fresh catalog fetch; the backend
// remains the authority and re-checks everything anyway.
package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// Reconcile adjusts cart lines to the current catalog. The policy is
// deterministic and applied uniformly:
//
//   - product gone or out of stock: the line is dropped
//   - stock below the requested quantity: the quantity is clamped
//   - price drift: the server price is adopted
//
// The returned warning is one consolidated human-readable string, empty
// when nothing changed.
func Reconcile(lines []cart.Line, products []domain.Product) ([]cart.Line, string) {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var kept []cart.Line
	var notes []string
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			notes = append(notes, fmt.Sprintf("%s is no longer available and was removed", line.Name))
			continue
		}
		if p.StockQty <= 0 {
			notes = append(notes, fmt.Sprintf("%s is sold out and was removed", line.Name))
			continue
		}
		if line.Quantity > p.StockQty {
			notes = append(notes, fmt.Sprintf("%s reduced to %d (only %d %s in stock)",
				line.Name, p.StockQty, p.StockQty, p.Unit))
			line.Quantity = p.StockQty
		}
		if !line.UnitPrice.Equal(p.Price) {
			notes = append(notes, fmt.Sprintf("%s price changed from ₹%s to ₹%s",
				line.Name, line.UnitPrice, p.Price))
			line.UnitPrice = p.Price
		}
		kept = append(kept, line)
	}

	return kept, consolidate(notes)
}

func consolidate(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	return "Your cart was updated: " + strings.Join(notes, "; ") + "."
}

// total sums price × quantity over the reconciled lines.
func total(lines []cart.Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}
