package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/procuramart/backoffice/internal/core/domain"
	"github.com/procuramart/backoffice/internal/core/port"
	"go.uber.org/zap"
)

// CreatedByImportComment marks catalog references created on the fly
// by the bulk import path rather than entered by a person.
const CreatedByImportComment = "auto-created during bulk import"

// Matcher resolves free-text product codes against the catalog,
// creating missing references lazily. Resolution is idempotent: when a
// concurrent import creates the same code first, the unique violation
// is swallowed and the winner's reference is fetched instead.
type Matcher struct {
	repo   port.CatalogRepository
	logger *zap.Logger
}

func NewMatcher(repo port.CatalogRepository, logger *zap.Logger) (*Matcher, error) {
	return &Matcher{repo: repo, logger: logger}, nil
}

func (m *Matcher) Resolve(ctx context.Context, code string) (*domain.CatalogReference, error) {
	code = domain.NormalizeCode(code)

	ref, err := m.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		m.logger.Error("catalog lookup", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogLookup, err)
	}
	if ref != nil {
		return ref, nil
	}

	created, err := m.repo.CreateReference(ctx, code, CreatedByImportComment)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			// lost the create race, the code exists now
			return m.fetchAfterConflict(ctx, code)
		}
		m.logger.Error("catalog create", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogCreate, err)
	}

	return created, nil
}

func (m *Matcher) fetchAfterConflict(ctx context.Context, code string) (*domain.CatalogReference, error) {
	ref, err := m.repo.FindByCode(ctx, code)
	if err != nil {
		m.logger.Error("catalog refetch after conflict", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogLookup, err)
	}
	return ref, nil
}
