package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"socialforum/internal/config"
	"socialforum/internal/models"
	"socialforum/internal/repository"
	"socialforum/internal/repository/memory"
	"socialforum/internal/storage"
)

type testEnv struct {
	store *memory.Store
	repo  *repository.Repository
	svc   *Service
}

func newTestEnv(t *testing.T, avatars AvatarStorage) *testEnv {
	t.Helper()

	store := memory.NewStore()
	repo := store.Repository()
	tokens := NewTokenService("test-secret", time.Hour, storage.NewMemoryRevocation())
	cfg := &config.Config{MaxUploadSize: 1024}

	svc := NewService(repo, store, tokens, avatars, cfg, zap.NewNop())
	svc.Auth = NewAuthService(repo, store, NewCredentialService(bcrypt.MinCost), tokens, zap.NewNop())

	return &testEnv{store: store, repo: repo, svc: svc}
}

func (e *testEnv) signup(t *testing.T, username string) models.User {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.svc.Auth.Signup(ctx, SignupInput{
		Username: username,
		Password: username + "-password",
		Email:    username + "@example.com",
	}))

	user, err := e.repo.User.GetByUsername(ctx, username)
	require.NoError(t, err)
	return *user
}

func (e *testEnv) channel(t *testing.T, owner, name string) models.Channel {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.svc.Channel.Create(ctx, owner, ChannelInput{Name: name}))

	channels, err := e.repo.Channel.List(ctx)
	require.NoError(t, err)
	for _, c := range channels {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("channel %q was not created", name)
	return models.Channel{}
}

func (e *testEnv) post(t *testing.T, owner string, channelID uuid.UUID, name string) models.Post {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.svc.Post.Create(ctx, owner, channelID, PostInput{Name: name, Description: name + " body"}))

	posts, err := e.repo.Post.ListByChannel(ctx, channelID)
	require.NoError(t, err)
	for _, p := range posts {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("post %q was not created", name)
	return models.Post{}
}

func (e *testEnv) comment(t *testing.T, author string, postID uuid.UUID, text string) models.Comment {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.svc.Comment.Create(ctx, author, postID, text))

	comments, err := e.repo.Comment.ListByPost(ctx, postID)
	require.NoError(t, err)
	for _, c := range comments {
		if c.Description == text {
			return c
		}
	}
	t.Fatalf("comment %q was not created", text)
	return models.Comment{}
}

// passthroughTx runs fn directly against repo, for tests with mocked repositories.
type passthroughTx struct {
	repo *repository.Repository
}

func (p passthroughTx) WithinTx(_ context.Context, fn func(repo *repository.Repository) error) error {
	return fn(p.repo)
}
