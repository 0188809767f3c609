package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialforum/internal/models"
)

var postRowColumns = []string{"id", "name", "description", "created", "updated", "channel_id"}

func TestPostRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock, channelID uuid.UUID)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock, channelID uuid.UUID) {
				mock.ExpectExec(`
					INSERT INTO posts (id, name, description, created, updated, channel_id)
					VALUES (?, ?, ?, ?, ?, ?)
				`).
					WithArgs(sqlmock.AnyArg(), "hello", "first post", sqlmock.AnyArg(), nil, channelID).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "channel vanished",
			setupMock: func(mock sqlmock.Sqlmock, channelID uuid.UUID) {
				mock.ExpectExec(`
					INSERT INTO posts (id, name, description, created, updated, channel_id)
					VALUES (?, ?, ?, ?, ?, ?)
				`).
					WithArgs(sqlmock.AnyArg(), "hello", "first post", sqlmock.AnyArg(), nil, channelID).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)
			channelID := uuid.New()
			tt.setupMock(mock, channelID)

			post := &models.Post{Name: "hello", Description: "first post", ChannelID: channelID}
			err := repo.Create(context.Background(), post)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, post.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_ListByChannel(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	channelID := uuid.New()

	rows := sqlmock.NewRows(postRowColumns).
		AddRow(uuid.New().String(), "one", "d1", time.Now(), nil, channelID.String()).
		AddRow(uuid.New().String(), "two", "d2", time.Now(), nil, channelID.String())

	mock.ExpectQuery(`SELECT id, name, description, created, updated, channel_id FROM posts WHERE channel_id = $1 ORDER BY created, id`).
		WithArgs(channelID).
		WillReturnRows(rows)

	posts, err := repo.ListByChannel(context.Background(), channelID)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, channelID, p.ChannelID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	postID := uuid.New()
	channelID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`
		UPDATE posts
		SET name = $1, description = $2, updated = $3
		WHERE id = $4
		RETURNING id, name, description, created, updated, channel_id`).
		WithArgs("new", "body", sqlmock.AnyArg(), postID).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(postID.String(), "new", "body", now, now, channelID.String()))

	post, err := repo.Update(context.Background(), postID, models.PostUpdate{Name: "new", Description: "body"})

	require.NoError(t, err)
	assert.Equal(t, "new", post.Name)
	assert.Equal(t, channelID, post.ChannelID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	postID := uuid.New()

	t.Run("removes likes and comments first", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM user_post WHERE post_id = $1`).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM comments WHERE post_id = $1`).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM posts WHERE id = $1`).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), postID))
	})

	t.Run("missing post", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM user_post WHERE post_id = $1`).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM comments WHERE post_id = $1`).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM posts WHERE id = $1`).WithArgs(postID).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), postID), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
