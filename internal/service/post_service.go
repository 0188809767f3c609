package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type PostInput struct {
	Name        string
	Description string
}

type PostService interface {
	// Create adds a post to a channel the user owns.
	Create(ctx context.Context, username string, channelID uuid.UUID, in PostInput) error
	Get(ctx context.Context, postID uuid.UUID) (*models.PostWithComments, error)
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, username string, postID uuid.UUID, upd models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, username string, postID uuid.UUID) error
	Like(ctx context.Context, username string, postID uuid.UUID) (ToggleOutcome, error)
}

type postService struct {
	repo *repository.Repository
	tx   repository.Transactor
}

func NewPostService(repo *repository.Repository, tx repository.Transactor) PostService {
	return &postService{repo: repo, tx: tx}
}

func (p *postService) Create(ctx context.Context, username string, channelID uuid.UUID, in PostInput) error {
	name, err := cleanText("name", in.Name)
	if err != nil {
		return err
	}
	description, err := cleanText("description", in.Description)
	if err != nil {
		return err
	}

	return inTx(ctx, p.tx, func(repo *repository.Repository) error {
		err := requireOwner(ctx, repo, username, KindChannel, channelID)
		if errors.Is(err, ErrResourceNotFound) {
			return withDetail(ErrResourceNotFound, KindPost.deniedDetail())
		}
		if err != nil {
			return err
		}

		return repo.Post.Create(ctx, &models.Post{
			Name:        name,
			Description: description,
			ChannelID:   channelID,
		})
	})
}

func (p *postService) Get(ctx context.Context, postID uuid.UUID) (*models.PostWithComments, error) {
	post, err := p.repo.Post.GetByID(ctx, postID)
	if err != nil {
		return nil, targetNotFound(err, msgPostNotFound)
	}

	comments, err := p.repo.Comment.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &models.PostWithComments{Post: *post, Comments: comments}, nil
}

func (p *postService) List(ctx context.Context) ([]models.Post, error) {
	return p.repo.Post.List(ctx)
}

func (p *postService) Update(ctx context.Context, username string, postID uuid.UUID, upd models.PostUpdate) (*models.Post, error) {
	var err error
	if upd.Name, err = cleanText("name", upd.Name); err != nil {
		return nil, err
	}
	if upd.Description, err = cleanText("description", upd.Description); err != nil {
		return nil, err
	}

	var updated *models.Post
	err = inTx(ctx, p.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindPost, postID); err != nil {
			return err
		}

		updated, err = repo.Post.Update(ctx, postID, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (p *postService) Delete(ctx context.Context, username string, postID uuid.UUID) error {
	return inTx(ctx, p.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindPost, postID); err != nil {
			return err
		}
		return repo.Post.Delete(ctx, postID)
	})
}

func (p *postService) Like(ctx context.Context, username string, postID uuid.UUID) (ToggleOutcome, error) {
	var outcome ToggleOutcome
	err := inTx(ctx, p.tx, func(repo *repository.Repository) error {
		var err error
		outcome, err = Toggle(ctx, repo, username, postID, Like)
		return err
	})
	return outcome, err
}
