package domain

import (
	"fmt"

	"github.com/govalues/decimal"
)

// ComputeTotal returns the landed cost of a quote:
// unitCost * quantity * (1 + marginPercent/100).
func ComputeTotal(quote SupplierQuote) (decimal.Decimal, error) {
	if quote.Quantity < 0 || quote.UnitCost.IsNeg() || quote.MarginPercent.IsNeg() {
		return decimal.Decimal{}, ErrInvalidQuoteInput
	}

	qty := decimal.MustNew(int64(quote.Quantity), 0)

	base, err := quote.UnitCost.Mul(qty)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("math error:%w", err)
	}
	markup, err := quote.MarginPercent.Add(decimal.Hundred)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("math error:%w", err)
	}
	total, err := base.Mul(markup)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("math error:%w", err)
	}
	total, err = total.Quo(decimal.Hundred)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("math error:%w", err)
	}

	return total, nil
}

// BestPrice selects the quote with the lowest landed cost. Ties keep
// the earliest quote in input order.
func BestPrice(quotes []SupplierQuote) (SupplierQuote, error) {
	if len(quotes) < 2 {
		return SupplierQuote{}, ErrInsufficientQuotes
	}

	best := quotes[0]
	bestTotal, err := ComputeTotal(best)
	if err != nil {
		return SupplierQuote{}, err
	}

	for _, q := range quotes[1:] {
		total, err := ComputeTotal(q)
		if err != nil {
			return SupplierQuote{}, err
		}
		if total.Cmp(bestTotal) < 0 {
			best = q
			bestTotal = total
		}
	}

	return best, nil
}

// BestDelivery selects the quote with the fewest delivery days. Ties
// keep the earliest quote in input order.
func BestDelivery(quotes []SupplierQuote) (SupplierQuote, error) {
	if len(quotes) < 2 {
		return SupplierQuote{}, ErrInsufficientQuotes
	}

	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.DeliveryDays < best.DeliveryDays {
			best = q
		}
	}

	return best, nil
}
