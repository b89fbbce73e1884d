package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/procuramart/backoffice/internal/core/domain"
)

// QuoteComparison pairs the winning quotes of one line item.
type QuoteComparison struct {
	BestPrice    domain.SupplierQuote
	BestDelivery domain.SupplierQuote
}

type Service interface {
	LoginUser(ctx context.Context, login string, password string) (string, error)

	CreateOrder(ctx context.Context, clientRef string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ListOrdersByClient(ctx context.Context, clientRef string) ([]*domain.Order, error)
	ChangeStatus(ctx context.Context, orderID uint64, status domain.OrderStatus, reason string) (*domain.Order, error)

	AddLineItem(ctx context.Context, orderID uint64, referenceID uint64, quantity int) (*domain.LineItem, error)
	RemoveLineItem(ctx context.Context, orderID uint64, lineItemID uuid.UUID) error
	SetLineItemActive(ctx context.Context, orderID uint64, lineItemID uuid.UUID, active bool) error

	AddQuote(ctx context.Context, orderID uint64, lineItemID uuid.UUID, quote domain.SupplierQuote) (*domain.SupplierQuote, error)
	RemoveQuote(ctx context.Context, orderID uint64, lineItemID uuid.UUID, quoteID uuid.UUID) error
	CompareQuotes(ctx context.Context, orderID uint64, lineItemID uuid.UUID) (*QuoteComparison, error)

	ImportBulkLines(ctx context.Context, orderID uint64, text string) (*domain.ImportResult, error)
}
