package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialforum/internal/models"
)

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password, email, created, is_active`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Created.IsZero() {
		user.Created = time.Now().UTC()
	}

	query := `
		INSERT INTO users (id, username, password, email, created, is_active)
		VALUES (:id, :username, :password, :email, :created, :is_active)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	if err := sqlx.GetContext(ctx, r.db, &user, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, classify(err))
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	if err := sqlx.GetContext(ctx, r.db, &user, query, username); err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, classify(err))
	}

	return &user, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	if err := sqlx.GetContext(ctx, r.db, &exists, query, username, email); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", classify(err))
	}

	return exists, nil
}

// userCascade removes everything the user owns, children before parents.
var userCascade = []string{
	`DELETE FROM user_post WHERE user_id = $1 OR post_id IN (
		SELECT p.id FROM posts p JOIN channels c ON c.id = p.channel_id WHERE c.user_id = $1)`,
	`DELETE FROM comments WHERE user_id = $1 OR post_id IN (
		SELECT p.id FROM posts p JOIN channels c ON c.id = p.channel_id WHERE c.user_id = $1)`,
	`DELETE FROM posts WHERE channel_id IN (SELECT id FROM channels WHERE user_id = $1)`,
	`DELETE FROM user_channel WHERE user_id = $1 OR channel_id IN (SELECT id FROM channels WHERE user_id = $1)`,
	`DELETE FROM channels WHERE user_id = $1`,
}

// Delete must run inside a transaction so the cascade is all-or-nothing.
func (r *userRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := execAll(ctx, r.db, userCascade, userID); err != nil {
		return fmt.Errorf("failed to delete user %s dependents: %w", userID, err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return nil
}
