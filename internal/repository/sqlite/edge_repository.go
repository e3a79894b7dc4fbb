package sqlite

import (
	"context"
	"database/sql"

	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

type edgeRepository struct {
	db *sql.DB
}

// NewEdgeRepository creates a new EdgeRepository implementation
func NewEdgeRepository(db *sql.DB) repository.EdgeRepository {
	return &edgeRepository{db: db}
}

func (r *edgeRepository) ListByDomain(ctx context.Context, domainID int64) ([]models.PrerequisiteEdge, error) {
	log := logger.FromContext(ctx).WithPrefix("edge_repo")
	log.Debug("listing edges: domain_id=%d", domainID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, domain_id, item_id, item_kind, prereq_id, prereq_kind, weight, is_manual
FROM prerequisite_edges
WHERE domain_id = ?
ORDER BY id ASC
`, domainID)
	if err != nil {
		log.Error("failed to list edges: %v", err)
		return nil, err
	}
	defer rows.Close()

	var edges []models.PrerequisiteEdge
	for rows.Next() {
		var e models.PrerequisiteEdge
		if err := rows.Scan(&e.ID, &e.DomainID, &e.ItemID, &e.ItemKind, &e.PrereqID, &e.PrereqKind, &e.Weight, &e.IsManual); err != nil {
			log.Error("failed to scan edge row: %v", err)
			return nil, err
		}
		edges = append(edges, e)
	}
	log.Debug("found %d edges", len(edges))
	return edges, rows.Err()
}

func (r *edgeRepository) Insert(ctx context.Context, e models.PrerequisiteEdge) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("edge_repo")
	log.Debug("inserting edge: %s -> %s, weight=%.2f", e.ItemKey(), e.PrereqKey(), e.Weight)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO prerequisite_edges (domain_id, item_id, item_kind, prereq_id, prereq_kind, weight, is_manual)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(item_id, item_kind, prereq_id, prereq_kind) DO UPDATE SET
    weight = excluded.weight,
    is_manual = excluded.is_manual
`, e.DomainID, e.ItemID, e.ItemKind, e.PrereqID, e.PrereqKind, e.Weight, e.IsManual)
	if err != nil {
		log.Error("failed to insert edge: %v", err)
		return 0, err
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		log.Debug("edge inserted: id=%d", id)
		return id, nil
	}
	var id int64
	err = r.db.QueryRowContext(ctx, `
SELECT id FROM prerequisite_edges
WHERE item_id = ? AND item_kind = ? AND prereq_id = ? AND prereq_kind = ?
`, e.ItemID, e.ItemKind, e.PrereqID, e.PrereqKind).Scan(&id)
	if err != nil {
		log.Error("failed to get edge id: %v", err)
	}
	return id, err
}
