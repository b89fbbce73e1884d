package port

import (
	"context"

	"github.com/procuramart/backoffice/internal/core/domain"
)

//go:generate mockgen -source=catalog.go -destination=mock/catalog.go -package=mock

// CatalogResolver turns a free-text product code into a catalog
// reference, creating one on first sight.
type CatalogResolver interface {
	Resolve(ctx context.Context, code string) (*domain.CatalogReference, error)
}
