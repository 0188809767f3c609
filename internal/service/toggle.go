package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"socialforum/internal/repository"
)

type Relation int

const (
	Follow Relation = iota
	Like
)

type ToggleOutcome int

const (
	Added ToggleOutcome = iota + 1
	Removed
)

func (o ToggleOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Toggle flips membership of (user, target) in the relation's join table.
// Following one's own channel is forbidden; liking one's own post is not.
// Run it inside a transaction: a concurrent toggle that wins the race makes
// this one fail with ErrConflictDetected instead of a duplicate key.
func Toggle(ctx context.Context, repo *repository.Repository, username string, targetID uuid.UUID, rel Relation) (ToggleOutcome, error) {
	userID, err := actorID(ctx, repo, username)
	if err != nil {
		return 0, err
	}

	var edges repository.RelationRepository
	switch rel {
	case Follow:
		channel, err := repo.Channel.GetByID(ctx, targetID)
		if err != nil {
			return 0, targetNotFound(err, msgChannelNotFound)
		}
		if channel.UserID == userID {
			return 0, withDetail(ErrSelfActionForbidden, msgSelfFollow)
		}
		edges = repo.Follow

	case Like:
		if _, err := repo.Post.GetByID(ctx, targetID); err != nil {
			return 0, targetNotFound(err, msgPostNotFound)
		}
		edges = repo.Like

	default:
		return 0, fmt.Errorf("unknown relation %d", rel)
	}

	exists, err := edges.Exists(ctx, userID, targetID)
	if err != nil {
		return 0, err
	}

	if exists {
		if err := edges.Delete(ctx, userID, targetID); err != nil {
			return 0, conflictOr(err)
		}
		return Removed, nil
	}

	if err := edges.Insert(ctx, userID, targetID); err != nil {
		return 0, conflictOr(err)
	}
	return Added, nil
}

func targetNotFound(err error, detail string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return withDetail(ErrResourceNotFound, detail)
	}
	return err
}

func conflictOr(err error) error {
	if errors.Is(err, repository.ErrConflictDetected) {
		return fmt.Errorf("%w: %v", ErrConflictDetected, err)
	}
	return err
}
