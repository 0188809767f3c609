package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type ChannelInput struct {
	Name        string
	Avatar      *string
	Description *string
}

// AvatarUpload is an image already sniffed by the caller.
type AvatarUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AvatarStorage keeps channel avatars outside the database and hands back their public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, channelID uuid.UUID, fileName, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

var avatarContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ChannelService interface {
	Create(ctx context.Context, username string, in ChannelInput) error
	Get(ctx context.Context, channelID uuid.UUID) (*models.ChannelWithPosts, error)
	List(ctx context.Context) ([]models.Channel, error)
	Update(ctx context.Context, username string, channelID uuid.UUID, upd models.ChannelUpdate) (*models.Channel, error)
	Delete(ctx context.Context, username string, channelID uuid.UUID) error
	Follow(ctx context.Context, username string, channelID uuid.UUID) (ToggleOutcome, error)
	UploadAvatar(ctx context.Context, username string, channelID uuid.UUID, upload AvatarUpload) (*models.Channel, error)
}

type channelService struct {
	repo          *repository.Repository
	tx            repository.Transactor
	avatars       AvatarStorage
	maxUploadSize int64
	log           *zap.Logger
}

func NewChannelService(repo *repository.Repository, tx repository.Transactor, avatars AvatarStorage, maxUploadSize int64, log *zap.Logger) ChannelService {
	return &channelService{
		repo:          repo,
		tx:            tx,
		avatars:       avatars,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (s *channelService) Create(ctx context.Context, username string, in ChannelInput) error {
	name, err := cleanText("name", in.Name)
	if err != nil {
		return err
	}

	return inTx(ctx, s.tx, func(repo *repository.Repository) error {
		ownerID, err := actorID(ctx, repo, username)
		if err != nil {
			return err
		}

		return repo.Channel.Create(ctx, &models.Channel{
			Name:        name,
			Avatar:      cleanOptional(in.Avatar),
			Description: cleanOptional(in.Description),
			UserID:      ownerID,
		})
	})
}

func (s *channelService) Get(ctx context.Context, channelID uuid.UUID) (*models.ChannelWithPosts, error) {
	channel, err := s.repo.Channel.GetByID(ctx, channelID)
	if err != nil {
		return nil, targetNotFound(err, msgChannelNotFound)
	}

	posts, err := s.repo.Post.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return &models.ChannelWithPosts{Channel: *channel, Posts: posts}, nil
}

func (s *channelService) List(ctx context.Context) ([]models.Channel, error) {
	return s.repo.Channel.List(ctx)
}

func (s *channelService) Update(ctx context.Context, username string, channelID uuid.UUID, upd models.ChannelUpdate) (*models.Channel, error) {
	name, err := cleanText("name", upd.Name)
	if err != nil {
		return nil, err
	}
	upd.Name = name
	upd.Avatar = cleanOptional(upd.Avatar)
	upd.Description = cleanOptional(upd.Description)

	var updated *models.Channel
	err = inTx(ctx, s.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindChannel, channelID); err != nil {
			return err
		}

		updated, err = repo.Channel.Update(ctx, channelID, upd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *channelService) Delete(ctx context.Context, username string, channelID uuid.UUID) error {
	var avatar *string
	err := inTx(ctx, s.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindChannel, channelID); err != nil {
			return err
		}

		channel, err := repo.Channel.GetByID(ctx, channelID)
		if err != nil {
			return err
		}
		avatar = channel.Avatar

		return repo.Channel.Delete(ctx, channelID)
	})
	if err != nil {
		return err
	}

	s.dropAvatar(ctx, avatar)
	return nil
}

func (s *channelService) Follow(ctx context.Context, username string, channelID uuid.UUID) (ToggleOutcome, error) {
	var outcome ToggleOutcome
	err := inTx(ctx, s.tx, func(repo *repository.Repository) error {
		var err error
		outcome, err = Toggle(ctx, repo, username, channelID, Follow)
		return err
	})
	return outcome, err
}

// UploadAvatar stores the image and points the channel at it. The previous
// image is removed once the new one is committed.
func (s *channelService) UploadAvatar(ctx context.Context, username string, channelID uuid.UUID, upload AvatarUpload) (*models.Channel, error) {
	if s.avatars == nil {
		return nil, withDetail(ErrStorageUnavailable, "Avatar storage is not configured")
	}
	if !avatarContentTypes[upload.ContentType] {
		return nil, withDetail(ErrValidationFailed, fmt.Sprintf("unsupported avatar type %s", upload.ContentType))
	}
	if upload.Size <= 0 || upload.Size > s.maxUploadSize {
		return nil, withDetail(ErrValidationFailed, fmt.Sprintf("avatar must be between 1 and %d bytes", s.maxUploadSize))
	}

	var (
		updated  *models.Channel
		previous *string
		url      string
	)
	err := inTx(ctx, s.tx, func(repo *repository.Repository) error {
		if err := requireOwner(ctx, repo, username, KindChannel, channelID); err != nil {
			return err
		}

		channel, err := repo.Channel.GetByID(ctx, channelID)
		if err != nil {
			return err
		}
		previous = channel.Avatar

		url, err = s.avatars.Upload(ctx, channelID, upload.FileName, upload.ContentType, upload.Body, upload.Size)
		if err != nil {
			return fmt.Errorf("failed to upload avatar: %w", err)
		}

		updated, err = repo.Channel.Update(ctx, channelID, models.ChannelUpdate{
			Name:        channel.Name,
			Avatar:      &url,
			Description: channel.Description,
		})
		return err
	})
	if err != nil {
		if url != "" {
			s.dropAvatar(ctx, &url)
		}
		return nil, err
	}

	s.dropAvatar(ctx, previous)
	return updated, nil
}

func (s *channelService) dropAvatar(ctx context.Context, url *string) {
	if s.avatars == nil || url == nil || *url == "" {
		return
	}
	if err := s.avatars.Delete(ctx, *url); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("failed to remove avatar object", zap.String("url", *url), zap.Error(err))
	}
}
