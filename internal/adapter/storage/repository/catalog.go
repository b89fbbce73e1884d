package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/procuramart/backoffice/internal/core/domain"
)

func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.CatalogReference, error) {
	statement := r.db.QueryBuilder.
		Select("id", "code", "comment", "created_at").
		From("catalog_references").
		Where(sq.Eq{"code": domain.NormalizeCode(code)})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	ref := domain.CatalogReference{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&ref.ID,
		&ref.Code,
		&ref.Comment,
		&ref.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &ref, nil
}

// CreateReference inserts a new canonical code. The unique index on
// code turns a concurrent duplicate insert into
// domain.ErrConflictingData, which the matcher resolves by refetching.
func (r *Repository) CreateReference(ctx context.Context, code string, comment string) (*domain.CatalogReference, error) {
	ref := domain.CatalogReference{
		Code:      domain.NormalizeCode(code),
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	statement := r.db.QueryBuilder.Insert("catalog_references").
		Columns("code", "comment", "created_at").
		Values(ref.Code, ref.Comment, ref.CreatedAt).
		Suffix("returning id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&ref.ID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return &ref, nil
}
