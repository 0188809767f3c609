package service

import (
	"context"
	"errors"
	"fmt"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type UserService interface {
	Profile(ctx context.Context, username string) (*models.Profile, error)
}

type userService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) UserService {
	return &userService{repo: repo}
}

// Profile returns the user with the channels they follow and the posts they like.
func (s *userService) Profile(ctx context.Context, username string) (*models.Profile, error) {
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withDetail(ErrUserNotFound, msgUserNotFound)
		}
		return nil, err
	}

	following, err := s.repo.Follow.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load follows: %w", err)
	}

	likes, err := s.repo.Like.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	return &models.Profile{User: *user, Following: following, Likes: likes}, nil
}
