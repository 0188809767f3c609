package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialforum/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByID(ctx context.Context, channelID uuid.UUID) (*models.Channel, error)
	List(ctx context.Context) ([]models.Channel, error)
	Update(ctx context.Context, channelID uuid.UUID, upd models.ChannelUpdate) (*models.Channel, error)
	Delete(ctx context.Context, channelID uuid.UUID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Post, error)
	Update(ctx context.Context, postID uuid.UUID, upd models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, postID uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)
	List(ctx context.Context) ([]models.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	Update(ctx context.Context, commentID uuid.UUID, upd models.CommentUpdate) (*models.Comment, error)
	Delete(ctx context.Context, commentID uuid.UUID) error
}

// RelationRepository manages one user-to-target join table.
type RelationRepository interface {
	Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
	// Insert returns ErrConflictDetected when the pair already exists.
	Insert(ctx context.Context, userID, targetID uuid.UUID) error
	// Delete returns ErrConflictDetected when the pair is already gone.
	Delete(ctx context.Context, userID, targetID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Repository struct {
	User    UserRepository
	Channel ChannelRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  RelationRepository
	Like    RelationRepository
}

// NewRepository binds every repository to db, which may be a *sqlx.DB or a *sqlx.Tx.
func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Channel: NewChannelRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
		Like:    NewLikeRepository(db),
	}
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

type sqlTransactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlTransactor{db: db}
}

// WithinTx runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(NewRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}

	return nil
}
