package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mercadinho/internal/domain/model"
)

type ItemRepository interface {
	Create(ctx context.Context, ownerID int64, name, description string, price float64) (int64, error)
	ListNewestFirst(ctx context.Context) ([]model.Item, error)
}

type pgItemRepository struct {
	db *sql.DB
}

func NewPgItemRepository(db *sql.DB) ItemRepository {
	return &pgItemRepository{db: db}
}

func (r *pgItemRepository) Create(ctx context.Context, ownerID int64, name, description string, price float64) (int64, error) {
	query := `INSERT INTO itens (user_id, name, description, price)
	          VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ownerID, name, description, price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("pgItemRepository.Create: %w", err)
	}
	return id, nil
}

// ListNewestFirst returns every item in the system ordered by descending id.
// Listing is deliberately not filtered by owner: all authenticated users see
// the same shared catalog.
func (r *pgItemRepository) ListNewestFirst(ctx context.Context) ([]model.Item, error) {
	query := `SELECT id, user_id, name, description, price
	          FROM itens ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgItemRepository.ListNewestFirst: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("pgItemRepository.ListNewestFirst: scanning row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgItemRepository.ListNewestFirst: %w", err)
	}
	return items, nil
}
