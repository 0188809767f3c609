package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"socialforum/internal/repository"
)

type ResourceKind int

const (
	KindChannel ResourceKind = iota
	KindPost
	KindComment
)

func (k ResourceKind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindPost:
		return "post"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

// deniedDetail is the single message for both "absent" and "not yours",
// so a caller cannot probe for resources it does not own.
func (k ResourceKind) deniedDetail() string {
	switch k {
	case KindChannel:
		return "User doesn't have such a channel"
	case KindPost:
		return "You don't have such a post"
	default:
		return "User doesn't have such a comment"
	}
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// ResolveOwner returns the id of the user owning the resource. A post is owned
// by the owner of its channel.
func ResolveOwner(ctx context.Context, repo *repository.Repository, kind ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	switch kind {
	case KindChannel:
		channel, err := repo.Channel.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, notFound(err, kind)
		}
		return channel.UserID, nil

	case KindPost:
		post, err := repo.Post.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, notFound(err, kind)
		}
		channel, err := repo.Channel.GetByID(ctx, post.ChannelID)
		if err != nil {
			return uuid.Nil, notFound(err, kind)
		}
		return channel.UserID, nil

	case KindComment:
		comment, err := repo.Comment.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, notFound(err, kind)
		}
		return comment.UserID, nil
	}

	return uuid.Nil, fmt.Errorf("unknown resource kind %v", kind)
}

// Authorize allows the action only when username owns the resource.
func Authorize(ctx context.Context, repo *repository.Repository, username string, kind ResourceKind, id uuid.UUID) (Decision, error) {
	actorID, err := actorID(ctx, repo, username)
	if err != nil {
		return Deny, err
	}

	ownerID, err := ResolveOwner(ctx, repo, kind, id)
	if err != nil {
		return Deny, err
	}

	if ownerID != actorID {
		return Deny, nil
	}
	return Allow, nil
}

// requireOwner folds Deny and a missing resource into the same per-kind error.
func requireOwner(ctx context.Context, repo *repository.Repository, username string, kind ResourceKind, id uuid.UUID) error {
	decision, err := Authorize(ctx, repo, username, kind, id)
	if errors.Is(err, ErrResourceNotFound) || (err == nil && decision == Deny) {
		return withDetail(ErrResourceNotFound, kind.deniedDetail())
	}
	return err
}

func actorID(ctx context.Context, repo *repository.Repository, username string) (uuid.UUID, error) {
	user, err := repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, withDetail(ErrUserNotFound, msgUserNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user %q: %w", username, err)
	}
	return user.ID, nil
}

func notFound(err error, kind ResourceKind) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", kind, ErrResourceNotFound)
	}
	return fmt.Errorf("failed to resolve %s owner: %w", kind, err)
}
