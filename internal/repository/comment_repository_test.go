package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialforum/internal/models"
)

var commentRowColumns = []string{"id", "description", "created", "updated", "user_id", "post_id"}

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	userID, postID := uuid.New(), uuid.New()
	comment := &models.Comment{Description: "nice", UserID: userID, PostID: postID}

	mock.ExpectExec(`
		INSERT INTO comments (id, description, created, updated, user_id, post_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`).
		WithArgs(sqlmock.AnyArg(), "nice", sqlmock.AnyArg(), nil, userID, postID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), comment))
	assert.NotEqual(t, uuid.Nil, comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetAndList(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	commentID, userID, postID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT id, description, created, updated, user_id, post_id FROM comments WHERE id = $1`).
		WithArgs(commentID).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(commentID.String(), "nice", time.Now(), nil, userID.String(), postID.String()))

	comment, err := repo.GetByID(ctx, commentID)
	require.NoError(t, err)
	assert.Equal(t, userID, comment.UserID)
	assert.Equal(t, postID, comment.PostID)

	mock.ExpectQuery(`SELECT id, description, created, updated, user_id, post_id FROM comments WHERE post_id = $1 ORDER BY created, id`).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows(commentRowColumns))

	comments, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	mock.ExpectQuery(`SELECT id, description, created, updated, user_id, post_id FROM comments ORDER BY created, id`).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(commentID.String(), "nice", time.Now(), nil, userID.String(), postID.String()))

	comments, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	commentID := uuid.New()

	mock.ExpectQuery(`
		UPDATE comments
		SET description = $1, updated = $2
		WHERE id = $3
		RETURNING id, description, created, updated, user_id, post_id`).
		WithArgs("edited", sqlmock.AnyArg(), commentID).
		WillReturnError(sql.ErrNoRows)

	comment, err := repo.Update(context.Background(), commentID, models.CommentUpdate{Description: "edited"})

	assert.Nil(t, comment)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	commentID := uuid.New()

	mock.ExpectExec(`DELETE FROM comments WHERE id = $1`).WithArgs(commentID).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), commentID))

	mock.ExpectExec(`DELETE FROM comments WHERE id = $1`).WithArgs(commentID).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), commentID), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
