package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	userID, channelID := uuid.New(), uuid.New()

	t.Run("exists", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS (SELECT 1 FROM user_channel WHERE user_id = $1 AND channel_id = $2)`).
			WithArgs(userID, channelID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.Exists(ctx, userID, channelID)

		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("insert", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user_channel (user_id, channel_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`).
			WithArgs(userID, channelID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Insert(ctx, userID, channelID))
	})

	t.Run("insert lost race", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO user_channel (user_id, channel_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`).
			WithArgs(userID, channelID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Insert(ctx, userID, channelID), ErrConflictDetected)
	})

	t.Run("list", func(t *testing.T) {
		other := uuid.New()
		mock.ExpectQuery(`SELECT channel_id FROM user_channel WHERE user_id = $1 ORDER BY channel_id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"channel_id"}).
				AddRow(channelID.String()).
				AddRow(other.String()))

		ids, err := repo.ListByUser(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{channelID, other}, ids)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	userID, postID := uuid.New(), uuid.New()
	query := `DELETE FROM user_post WHERE user_id = $1 AND post_id = $2`

	mock.ExpectExec(query).WithArgs(userID, postID).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, userID, postID))

	mock.ExpectExec(query).WithArgs(userID, postID).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, userID, postID), ErrConflictDetected)

	assert.NoError(t, mock.ExpectationsWereMet())
}
