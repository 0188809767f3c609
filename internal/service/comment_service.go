package service

import (
	"context"

	"github.com/google/uuid"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type CommentService interface {
	Create(ctx context.Context, username string, postID uuid.UUID, description string) error
	Get(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)
	List(ctx context.Context) ([]models.Comment, error)
	Update(ctx context.Context, username string, commentID uuid.UUID, upd models.CommentUpdate) (*models.Comment, error)
	Delete(ctx context.Context, username string, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	tx   repository.Transactor
}

func NewCommentService(repo *repository.Repository, tx repository.Transactor) CommentService {
	return &commentService{repo: repo, tx: tx}
}

func (c *commentService) Create(ctx context.Context, username string, postID uuid.UUID, description string) error {
	description, err := cleanText("description", description)
	if err != nil {
		return err
	}

	return inTx(ctx, c.tx, func(repo *repository.Repository) error {
		authorID, err := actorID(ctx, repo, username)
		if err != nil {
			return err
		}

		if _, err := repo.Post.GetByID(ctx, postID); err != nil {
			return targetNotFound(err, msgPostNotFound)
		}

		return repo.Comment.Create(ctx, &models.Comment{
			Description: description,
			UserID:      authorID,
			PostID:      postID,
		})
	})
}

func (c *commentService) Get(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	comment, err := c.repo.Comment.GetByID(ctx, commentID)
	if err != nil {
		return nil, targetNotFound(err, msgCommentNotFound)
	}
	return comment, nil
}

func (c *commentService) List(ctx context.Context) ([]models.Comment, error) {
	return c.repo.Comment.List(ctx)
}

func (c *commentService) Update(ctx context.Context, username string, commentID uuid.UUID, upd models.CommentUpdate) (*models.Comment, error) {
	description, err := cleanText("description", upd.Description)
	if err != nil {
		return nil, err
	}
	upd.Description = description

	var updated *models.Comment
	err = inTx(ctx, c.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindComment, commentID); err != nil {
			return err
		}

		updated, err = repo.Comment.Update(ctx, commentID, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (c *commentService) Delete(ctx context.Context, username string, commentID uuid.UUID) error {
	return inTx(ctx, c.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindComment, commentID); err != nil {
			return err
		}
		return repo.Comment.Delete(ctx, commentID)
	})
}
