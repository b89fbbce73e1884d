package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/procuramart/backoffice/internal/core/domain"
)

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.Version = 1

	statement := r.db.QueryBuilder.Insert("orders").
		Columns("client_ref", "status", "rejection_reason", "version", "created_at", "updated_at").
		Values(order.ClientRef, order.Status, order.RejectionReason,
			order.Version, order.CreatedAt, order.UpdatedAt).
		Suffix("returning id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "client_ref", "status", "rejection_reason", "version", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.ClientRef,
		&order.Status,
		&order.RejectionReason,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	order.LineItems, err = r.readLineItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *Repository) ListOrdersByClient(ctx context.Context, clientRef string) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("id", "client_ref", "status", "rejection_reason", "version", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"client_ref": clientRef}).
		OrderBy("created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.ClientRef,
			&order.Status,
			&order.RejectionReason,
			&order.Version,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range list {
		order.LineItems, err = r.readLineItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

// SaveOrder persists the whole aggregate. The order row is updated
// with a compare-and-swap on version; losing the swap means someone
// saved the order after our read.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Update("orders").
			Set("client_ref", order.ClientRef).
			Set("status", order.Status).
			Set("rejection_reason", order.RejectionReason).
			Set("updated_at", order.UpdatedAt).
			Set("version", order.Version+1).
			Where(sq.Eq{"id": order.ID, "version": order.Version})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConcurrentModification
		}

		return r.writeLineItems(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	order.Version++
	return order, nil
}

func (r *Repository) readLineItems(ctx context.Context, orderID uint64) ([]domain.LineItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "reference_id", "quantity", "active").
		From("order_line_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("position")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		item := domain.LineItem{}
		err := rows.Scan(
			&item.ID,
			&item.ReferenceID,
			&item.Quantity,
			&item.Active,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Quotes, err = r.readQuotes(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (r *Repository) readQuotes(ctx context.Context, lineItemID uuid.UUID) ([]domain.SupplierQuote, error) {
	statement := r.db.QueryBuilder.
		Select("id", "supplier_ref", "unit_cost", "margin_percent",
			"quantity", "delivery_days", "location", "total_cost").
		From("supplier_quotes").
		Where(sq.Eq{"line_item_id": lineItemID}).
		OrderBy("position")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]domain.SupplierQuote, 0)
	for rows.Next() {
		quote := domain.SupplierQuote{}
		err := rows.Scan(
			&quote.ID,
			&quote.SupplierRef,
			&quote.UnitCost,
			&quote.MarginPercent,
			&quote.Quantity,
			&quote.DeliveryDays,
			&quote.Location,
			&quote.TotalCost,
		)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

// writeLineItems rewrites the owned rows of the aggregate. Quotes go
// away with their line items via the FK cascade.
func (r *Repository) writeLineItems(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	deleteSt := r.db.QueryBuilder.Delete("order_line_items").
		Where(sq.Eq{"order_id": order.ID})

	sql, args, err := deleteSt.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	for pos, item := range order.LineItems {
		itemSt := r.db.QueryBuilder.Insert("order_line_items").
			Columns("id", "order_id", "reference_id", "quantity", "active", "position").
			Values(item.ID, order.ID, item.ReferenceID, item.Quantity, item.Active, pos)

		sql, args, err := itemSt.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		for qpos, quote := range item.Quotes {
			quoteSt := r.db.QueryBuilder.Insert("supplier_quotes").
				Columns("id", "line_item_id", "supplier_ref", "unit_cost", "margin_percent",
					"quantity", "delivery_days", "location", "total_cost", "position").
				Values(quote.ID, item.ID, quote.SupplierRef, quote.UnitCost, quote.MarginPercent,
					quote.Quantity, quote.DeliveryDays, quote.Location, quote.TotalCost, qpos)

			sql, args, err := quoteSt.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
	}

	return nil
}
