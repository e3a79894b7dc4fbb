package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository implementation
func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Get(ctx context.Context, key models.ItemKey) (*models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")

	var i models.Item
	err := r.db.QueryRowContext(ctx, `
SELECT id, kind, domain_id, title, created_at
FROM items
WHERE id = ? AND kind = ?
`, key.ID, key.Kind).Scan(&i.ID, &i.Kind, &i.DomainID, &i.Title, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: %s", key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return &i, nil
}

func (r *itemRepository) Insert(ctx context.Context, item models.Item) error {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("inserting item: %s, domain_id=%d", item.Key(), item.DomainID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO items (id, kind, domain_id, title)
VALUES (?, ?, ?, ?)
ON CONFLICT(id, kind) DO UPDATE SET
    domain_id = excluded.domain_id,
    title = excluded.title
`, item.ID, item.Kind, item.DomainID, item.Title)
	if err != nil {
		log.Error("failed to insert item: %v", err)
	}
	return err
}
