package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialforum/internal/models"
)

type commentRepository struct {
	db sqlx.ExtContext
}

func NewCommentRepository(db sqlx.ExtContext) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, description, created, updated, user_id, post_id`

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.Created = time.Now().UTC()
	comment.Updated = nil

	query := `
		INSERT INTO comments (id, description, created, updated, user_id, post_id)
		VALUES (:id, :description, :created, :updated, :user_id, :post_id)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", classify(err))
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment

	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	if err := sqlx.GetContext(ctx, r.db, &comment, query, commentID); err != nil {
		return nil, fmt.Errorf("failed to get comment %s: %w", commentID, classify(err))
	}

	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created, id`

	if err := sqlx.SelectContext(ctx, r.db, &comments, query); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", classify(err))
	}

	return comments, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created, id`

	if err := sqlx.SelectContext(ctx, r.db, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments of post %s: %w", postID, classify(err))
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, commentID uuid.UUID, upd models.CommentUpdate) (*models.Comment, error) {
	var comment models.Comment

	query := `
		UPDATE comments
		SET description = $1, updated = $2
		WHERE id = $3
		RETURNING ` + commentColumns

	err := sqlx.GetContext(ctx, r.db, &comment, query, upd.Description, time.Now().UTC(), commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %s: %w", commentID, classify(err))
	}

	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", commentID, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}

	return nil
}
