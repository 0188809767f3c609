package service

import (
	"context"

	"go.uber.org/zap"

	"socialforum/internal/config"
	"socialforum/internal/repository"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Channel ChannelService
	Post    PostService
	Comment CommentService
}

// NewService wires every service over one repository. avatars may be nil
// when object storage is not configured.
func NewService(repo *repository.Repository, tx repository.Transactor, tokens TokenService, avatars AvatarStorage, cfg *config.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tx, NewCredentialService(0), tokens, log),
		User:    NewUserService(repo),
		Channel: NewChannelService(repo, tx, avatars, cfg.MaxUploadSize, log),
		Post:    NewPostService(repo, tx),
		Comment: NewCommentService(repo, tx),
	}
}

// inTx runs fn in a transaction and reports a lost commit race as ErrConflictDetected.
func inTx(ctx context.Context, tx repository.Transactor, fn func(repo *repository.Repository) error) error {
	return conflictOr(tx.WithinTx(ctx, fn))
}
