package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

func TestPostUpdate_OwnerAndStranger(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	env.signup(t, "bob")
	channel := env.channel(t, "alice", "alice-channel")
	post := env.post(t, "alice", channel.ID, "draft")

	_, err := env.svc.Post.Update(ctx, "bob", post.ID, models.PostUpdate{Name: "hijacked", Description: "x"})
	assert.ErrorIs(t, err, ErrResourceNotFound)
	var detail *DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "You don't have such a post", detail.Detail)

	stored, err := env.repo.Post.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", stored.Name)
	assert.Nil(t, stored.Updated)

	updated, err := env.svc.Post.Update(ctx, "alice", post.ID, models.PostUpdate{Name: "final", Description: "done"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Name)
	assert.Equal(t, "done", updated.Description)
	require.NotNil(t, updated.Updated)
	assert.Equal(t, post.Created, updated.Created)
}

func TestPostCreate_RequiresOwnedChannel(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	env.signup(t, "bob")
	channel := env.channel(t, "alice", "c")

	err := env.svc.Post.Create(ctx, "bob", channel.ID, PostInput{Name: "spam", Description: "spam"})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	err = env.svc.Post.Create(ctx, "alice", uuid.New(), PostInput{Name: "p", Description: "d"})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	posts, err := env.repo.Post.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestChannel_CreateSanitizesAndReads(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	description := "  <script>x()</script>about <b>go</b> "
	require.NoError(t, env.svc.Channel.Create(ctx, "alice", ChannelInput{
		Name:        "<i>gophers</i>",
		Description: &description,
	}))

	channels, err := env.svc.Channel.List(ctx)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "gophers", channels[0].Name)
	require.NotNil(t, channels[0].Description)
	assert.Equal(t, "about go", *channels[0].Description)
	assert.Equal(t, alice.ID, channels[0].UserID)

	err = env.svc.Channel.Create(ctx, "alice", ChannelInput{Name: "   "})
	assert.ErrorIs(t, err, ErrValidationFailed)

	detail, err := env.svc.Channel.Get(ctx, channels[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Posts)
	assert.Empty(t, detail.Posts)

	_, err = env.svc.Channel.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestChannelUpdate_KeepsOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	alice := env.signup(t, "alice")
	env.signup(t, "bob")
	channel := env.channel(t, "alice", "c")

	_, err := env.svc.Channel.Update(ctx, "bob", channel.ID, models.ChannelUpdate{Name: "mine now"})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	updated, err := env.svc.Channel.Update(ctx, "alice", channel.ID, models.ChannelUpdate{Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, alice.ID, updated.UserID)
	assert.Nil(t, updated.Description)
}

func TestChannelDelete_Cascades(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	bob := env.signup(t, "bob")
	channel := env.channel(t, "alice", "c")
	post := env.post(t, "alice", channel.ID, "p")
	comment := env.comment(t, "bob", post.ID, "hi")

	_, err := env.svc.Channel.Follow(ctx, "bob", channel.ID)
	require.NoError(t, err)
	_, err = env.svc.Post.Like(ctx, "bob", post.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Channel.Delete(ctx, "bob", channel.ID), ErrResourceNotFound)
	require.NoError(t, env.svc.Channel.Delete(ctx, "alice", channel.ID))

	_, err = env.svc.Post.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	_, err = env.svc.Comment.Get(ctx, comment.ID)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	profile, err := env.svc.User.Profile(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, profile.ID)
	assert.Empty(t, profile.Following)
	assert.Empty(t, profile.Likes)
}

func TestPostDelete_RemovesComments(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	channel := env.channel(t, "alice", "c")
	post := env.post(t, "alice", channel.ID, "p")
	env.comment(t, "alice", post.ID, "one")
	env.comment(t, "alice", post.ID, "two")

	detail, err := env.svc.Post.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 2)

	require.NoError(t, env.svc.Post.Delete(ctx, "alice", post.ID))

	comments, err := env.svc.Comment.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestComment_Lifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.signup(t, "alice")
	env.signup(t, "bob")
	channel := env.channel(t, "alice", "c")
	post := env.post(t, "alice", channel.ID, "p")

	assert.ErrorIs(t, env.svc.Comment.Create(ctx, "bob", uuid.New(), "lost"), ErrResourceNotFound)

	comment := env.comment(t, "bob", post.ID, "first!")

	_, err := env.svc.Comment.Update(ctx, "alice", comment.ID, models.CommentUpdate{Description: "moderated"})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	updated, err := env.svc.Comment.Update(ctx, "bob", comment.ID, models.CommentUpdate{Description: "second!"})
	require.NoError(t, err)
	assert.Equal(t, "second!", updated.Description)
	assert.NotNil(t, updated.Updated)

	assert.ErrorIs(t, env.svc.Comment.Delete(ctx, "alice", comment.ID), ErrResourceNotFound)
	require.NoError(t, env.svc.Comment.Delete(ctx, "bob", comment.ID))

	_, err = env.svc.Comment.Get(ctx, comment.ID)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

type mockAvatarStorage struct {
	mock.Mock
}

func (m *mockAvatarStorage) Upload(ctx context.Context, channelID uuid.UUID, fileName, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(channelID, fileName, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *mockAvatarStorage) Delete(ctx context.Context, url string) error {
	return m.Called(url).Error(0)
}

func TestUploadAvatar(t *testing.T) {
	ctx := context.Background()
	upload := func(contentType string, size int64) AvatarUpload {
		return AvatarUpload{FileName: "me.png", ContentType: contentType, Size: size, Body: strings.NewReader("data")}
	}

	t.Run("replaces previous avatar", func(t *testing.T) {
		avatars := &mockAvatarStorage{}
		env := newTestEnv(t, avatars)
		env.signup(t, "alice")
		channel := env.channel(t, "alice", "c")

		avatars.On("Upload", channel.ID, "me.png", "image/png", int64(4)).Return("http://s3/avatars/one.png", nil).Once()
		avatars.On("Upload", channel.ID, "me.png", "image/png", int64(4)).Return("http://s3/avatars/two.png", nil).Once()
		avatars.On("Delete", "http://s3/avatars/one.png").Return(nil).Once()

		first, err := env.svc.Channel.UploadAvatar(ctx, "alice", channel.ID, upload("image/png", 4))
		require.NoError(t, err)
		require.NotNil(t, first.Avatar)
		assert.Equal(t, "http://s3/avatars/one.png", *first.Avatar)
		assert.NotNil(t, first.Updated)

		second, err := env.svc.Channel.UploadAvatar(ctx, "alice", channel.ID, upload("image/png", 4))
		require.NoError(t, err)
		assert.Equal(t, "http://s3/avatars/two.png", *second.Avatar)
		assert.Equal(t, channel.Name, second.Name)

		avatars.AssertExpectations(t)
	})

	t.Run("rejects before touching storage", func(t *testing.T) {
		avatars := &mockAvatarStorage{}
		env := newTestEnv(t, avatars)
		env.signup(t, "alice")
		env.signup(t, "bob")
		channel := env.channel(t, "alice", "c")

		_, err := env.svc.Channel.UploadAvatar(ctx, "alice", channel.ID, upload("application/pdf", 4))
		assert.ErrorIs(t, err, ErrValidationFailed)

		_, err = env.svc.Channel.UploadAvatar(ctx, "alice", channel.ID, upload("image/png", 4096))
		assert.ErrorIs(t, err, ErrValidationFailed)

		_, err = env.svc.Channel.UploadAvatar(ctx, "bob", channel.ID, upload("image/png", 4))
		assert.ErrorIs(t, err, ErrResourceNotFound)

		avatars.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure rolls back", func(t *testing.T) {
		avatars := &mockAvatarStorage{}
		env := newTestEnv(t, avatars)
		env.signup(t, "alice")
		channel := env.channel(t, "alice", "c")

		avatars.On("Upload", channel.ID, "me.png", "image/png", int64(4)).Return("", errors.New("s3 down"))

		_, err := env.svc.Channel.UploadAvatar(ctx, "alice", channel.ID, upload("image/png", 4))
		assert.ErrorContains(t, err, "s3 down")

		stored, err := env.repo.Channel.GetByID(ctx, channel.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Avatar)
	})

	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(t, nil)

		_, err := env.svc.Channel.UploadAvatar(ctx, "alice", uuid.New(), upload("image/png", 4))
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}

func TestInTx_CommitConflict(t *testing.T) {
	err := inTx(context.Background(), conflictingTx{}, func(*repository.Repository) error { return nil })

	assert.ErrorIs(t, err, ErrConflictDetected)
}

type conflictingTx struct{}

func (conflictingTx) WithinTx(context.Context, func(*repository.Repository) error) error {
	return errors.Join(repository.ErrConflictDetected, errors.New("could not serialize access"))
}
