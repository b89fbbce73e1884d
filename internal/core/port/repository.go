package port

import (
	"context"

	"github.com/procuramart/backoffice/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// OrderRepository persists the Order aggregate. Save must compare the
// stored version with the one on the order and fail with
// domain.ErrConcurrentModification on mismatch.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListOrdersByClient(ctx context.Context, clientRef string) ([]*domain.Order, error)
}

// CatalogRepository stores canonical product codes. FindByCode matches
// case-insensitively on the normalized code; CreateReference must fail
// with domain.ErrConflictingData when the code already exists.
type CatalogRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.CatalogReference, error)
	CreateReference(ctx context.Context, code string, comment string) (*domain.CatalogReference, error)
}

type UserRepository interface {
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)
}
