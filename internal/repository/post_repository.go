package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialforum/internal/models"
)

type postRepository struct {
	db sqlx.ExtContext
}

func NewPostRepository(db sqlx.ExtContext) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, name, description, created, updated, channel_id`

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.Created = time.Now().UTC()
	post.Updated = nil

	query := `
		INSERT INTO posts (id, name, description, created, updated, channel_id)
		VALUES (:id, :name, :description, :created, :updated, :channel_id)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, post); err != nil {
		return fmt.Errorf("failed to create post: %w", classify(err))
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	if err := sqlx.GetContext(ctx, r.db, &post, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", postID, classify(err))
	}

	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created, id`

	if err := sqlx.SelectContext(ctx, r.db, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", classify(err))
	}

	return posts, nil
}

func (r *postRepository) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT ` + postColumns + ` FROM posts WHERE channel_id = $1 ORDER BY created, id`

	if err := sqlx.SelectContext(ctx, r.db, &posts, query, channelID); err != nil {
		return nil, fmt.Errorf("failed to list posts of channel %s: %w", channelID, classify(err))
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, postID uuid.UUID, upd models.PostUpdate) (*models.Post, error) {
	var post models.Post

	query := `
		UPDATE posts
		SET name = $1, description = $2, updated = $3
		WHERE id = $4
		RETURNING ` + postColumns

	err := sqlx.GetContext(ctx, r.db, &post, query, upd.Name, upd.Description, time.Now().UTC(), postID)
	if err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", postID, classify(err))
	}

	return &post, nil
}

var postCascade = []string{
	`DELETE FROM user_post WHERE post_id = $1`,
	`DELETE FROM comments WHERE post_id = $1`,
}

func (r *postRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	if err := execAll(ctx, r.db, postCascade, postID); err != nil {
		return fmt.Errorf("failed to delete post %s dependents: %w", postID, err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", postID, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}
