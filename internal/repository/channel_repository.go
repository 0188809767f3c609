package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialforum/internal/models"
)

type channelRepository struct {
	db sqlx.ExtContext
}

func NewChannelRepository(db sqlx.ExtContext) ChannelRepository {
	return &channelRepository{db: db}
}

const channelColumns = `id, name, avatar, description, created, updated, user_id`

func (r *channelRepository) Create(ctx context.Context, channel *models.Channel) error {
	if channel.ID == uuid.Nil {
		channel.ID = uuid.New()
	}
	channel.Created = time.Now().UTC()
	channel.Updated = nil

	query := `
		INSERT INTO channels (id, name, avatar, description, created, updated, user_id)
		VALUES (:id, :name, :avatar, :description, :created, :updated, :user_id)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, channel); err != nil {
		return fmt.Errorf("failed to create channel: %w", classify(err))
	}

	return nil
}

func (r *channelRepository) GetByID(ctx context.Context, channelID uuid.UUID) (*models.Channel, error) {
	var channel models.Channel

	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`

	if err := sqlx.GetContext(ctx, r.db, &channel, query, channelID); err != nil {
		return nil, fmt.Errorf("failed to get channel %s: %w", channelID, classify(err))
	}

	return &channel, nil
}

func (r *channelRepository) List(ctx context.Context) ([]models.Channel, error) {
	channels := []models.Channel{}

	query := `SELECT ` + channelColumns + ` FROM channels ORDER BY created, id`

	if err := sqlx.SelectContext(ctx, r.db, &channels, query); err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", classify(err))
	}

	return channels, nil
}

// Update rewrites the mutable columns and stamps updated. The owner column is never touched.
func (r *channelRepository) Update(ctx context.Context, channelID uuid.UUID, upd models.ChannelUpdate) (*models.Channel, error) {
	var channel models.Channel

	query := `
		UPDATE channels
		SET name = $1, avatar = $2, description = $3, updated = $4
		WHERE id = $5
		RETURNING ` + channelColumns

	err := sqlx.GetContext(ctx, r.db, &channel, query,
		upd.Name, upd.Avatar, upd.Description, time.Now().UTC(), channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to update channel %s: %w", channelID, classify(err))
	}

	return &channel, nil
}

var channelCascade = []string{
	`DELETE FROM user_post WHERE post_id IN (SELECT id FROM posts WHERE channel_id = $1)`,
	`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE channel_id = $1)`,
	`DELETE FROM posts WHERE channel_id = $1`,
	`DELETE FROM user_channel WHERE channel_id = $1`,
}

// Delete removes the channel with its posts, their comments and likes, and its follow edges.
func (r *channelRepository) Delete(ctx context.Context, channelID uuid.UUID) error {
	if err := execAll(ctx, r.db, channelCascade, channelID); err != nil {
		return fmt.Errorf("failed to delete channel %s dependents: %w", channelID, err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE id = $1`, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete channel %s: %w", channelID, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}

	return nil
}
