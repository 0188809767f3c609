package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// relationRepository serves both join tables; table and column names are fixed at construction.
type relationRepository struct {
	db           sqlx.ExtContext
	table        string
	targetColumn string
}

// NewFollowRepository returns the user_channel relation.
func NewFollowRepository(db sqlx.ExtContext) RelationRepository {
	return &relationRepository{db: db, table: "user_channel", targetColumn: "channel_id"}
}

// NewLikeRepository returns the user_post relation.
func NewLikeRepository(db sqlx.ExtContext) RelationRepository {
	return &relationRepository{db: db, table: "user_post", targetColumn: "post_id"}
}

func (r *relationRepository) Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	var exists bool

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND %s = $2)`, r.table, r.targetColumn)

	if err := sqlx.GetContext(ctx, r.db, &exists, query, userID, targetID); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", r.table, classify(err))
	}

	return exists, nil
}

func (r *relationRepository) Insert(ctx context.Context, userID, targetID uuid.UUID) error {
	query := fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, r.table, r.targetColumn)

	result, err := r.db.ExecContext(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check inserted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s row already present: %w", r.table, ErrConflictDetected)
	}

	return nil
}

func (r *relationRepository) Delete(ctx context.Context, userID, targetID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, r.table, r.targetColumn)

	result, err := r.db.ExecContext(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s row already gone: %w", r.table, ErrConflictDetected)
	}

	return nil
}

func (r *relationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY %s`, r.targetColumn, r.table, r.targetColumn)

	if err := sqlx.SelectContext(ctx, r.db, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, classify(err))
	}

	return ids, nil
}
