package port

import (
	"context"

	"github.com/procuramart/backoffice/internal/core/domain"
)

// BulkImporter folds pasted "<qty> <code>" text into draft line items
// on an order.
type BulkImporter interface {
	ImportLines(ctx context.Context, order *domain.Order, text string) (*domain.ImportResult, error)
}
