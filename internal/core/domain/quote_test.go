package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func quote(unitCost, margin string, qty, days int) domain.SupplierQuote {
	return domain.SupplierQuote{
		ID:            uuid.New(),
		SupplierRef:   "SUP-1",
		UnitCost:      decimal.MustParse(unitCost),
		MarginPercent: decimal.MustParse(margin),
		Quantity:      qty,
		DeliveryDays:  days,
		Location:      domain.LocationDomestic,
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		quote    domain.SupplierQuote
		expTotal string
		expError error
	}{
		{
			name:     "unit 100 qty 3 margin 20 lands at 360",
			quote:    quote("100", "20", 3, 5),
			expTotal: "360",
		},
		{
			name:     "zero margin is no markup",
			quote:    quote("12.50", "0", 4, 5),
			expTotal: "50",
		},
		{
			name:     "zero quantity costs nothing",
			quote:    quote("99.99", "15", 0, 5),
			expTotal: "0",
		},
		{
			name:     "fractional margin",
			quote:    quote("10", "2.5", 2, 5),
			expTotal: "20.5",
		},
		{
			name:     "negative cost rejected",
			quote:    quote("-1", "0", 1, 5),
			expError: domain.ErrInvalidQuoteInput,
		},
		{
			name:     "negative margin rejected",
			quote:    quote("1", "-10", 1, 5),
			expError: domain.ErrInvalidQuoteInput,
		},
		{
			name:     "negative quantity rejected",
			quote:    quote("1", "0", -1, 5),
			expError: domain.ErrInvalidQuoteInput,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			total, err := domain.ComputeTotal(test.quote)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
			assert.Zero(t, total.Cmp(decimal.MustParse(test.expTotal)),
				"want %s, got %s", test.expTotal, total)
		})
	}
}

func TestBestPrice(t *testing.T) {
	cheap := quote("10", "0", 1, 9)
	expensive := quote("100", "0", 1, 1)

	best, err := domain.BestPrice([]domain.SupplierQuote{expensive, cheap})

	assert.NoError(t, err)
	assert.Equal(t, cheap.ID, best.ID)
}

func TestBestPriceStableTieBreak(t *testing.T) {
	// 100 * 1 * 1.20 == 60 * 2 * 1.00 == 120
	first := quote("100", "20", 1, 3)
	second := quote("60", "0", 2, 1)

	best, err := domain.BestPrice([]domain.SupplierQuote{first, second})

	assert.NoError(t, err)
	assert.Equal(t, first.ID, best.ID)
}

func TestBestDelivery(t *testing.T) {
	slow := quote("1", "0", 1, 30)
	fast := quote("9", "0", 1, 2)
	alsoFast := quote("5", "0", 1, 2)

	best, err := domain.BestDelivery([]domain.SupplierQuote{slow, fast, alsoFast})

	assert.NoError(t, err)
	assert.Equal(t, fast.ID, best.ID, "tie keeps first-encountered quote")
}

func TestComparisonNeedsTwoQuotes(t *testing.T) {
	single := []domain.SupplierQuote{quote("1", "0", 1, 1)}

	_, err := domain.BestPrice(single)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuotes)

	_, err = domain.BestDelivery(single)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuotes)

	_, err = domain.BestPrice(nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuotes)
}
