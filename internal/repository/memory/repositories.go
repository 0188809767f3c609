package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *models.User) (err error) {
	r.s.write(func(d *dataset) {
		for _, u := range d.users {
			if u.Username == user.Username || u.Email == user.Email {
				err = fmt.Errorf("user %q: %w", user.Username, repository.ErrUniqueViolation)
				return
			}
		}
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		if user.Created.IsZero() {
			user.Created = time.Now().UTC()
		}
		d.users[user.ID] = *user
		d.track(user.ID)
	})
	return err
}

func (r *userRepository) GetByID(_ context.Context, userID uuid.UUID) (user *models.User, err error) {
	r.s.read(func(d *dataset) {
		u, ok := d.users[userID]
		if !ok {
			err = fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
			return
		}
		user = &u
	})
	return user, err
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (user *models.User, err error) {
	r.s.read(func(d *dataset) {
		for _, u := range d.users {
			if u.Username == username {
				user = &u
				return
			}
		}
		err = fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
	})
	return user, err
}

func (r *userRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (exists bool, err error) {
	r.s.read(func(d *dataset) {
		for _, u := range d.users {
			if u.Username == username || u.Email == email {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *userRepository) Delete(_ context.Context, userID uuid.UUID) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.users[userID]; !ok {
			err = fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
			return
		}
		for id, c := range d.channels {
			if c.UserID == userID {
				d.deleteChannel(id)
			}
		}
		for id, c := range d.comments {
			if c.UserID == userID {
				delete(d.comments, id)
				delete(d.order, id)
			}
		}
		for e := range d.follows {
			if e.userID == userID {
				delete(d.follows, e)
			}
		}
		for e := range d.likes {
			if e.userID == userID {
				delete(d.likes, e)
			}
		}
		delete(d.users, userID)
		delete(d.order, userID)
	})
	return err
}

type channelRepository struct {
	s *Store
}

func (r *channelRepository) Create(_ context.Context, channel *models.Channel) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.users[channel.UserID]; !ok {
			err = fmt.Errorf("channel owner %s: %w", channel.UserID, repository.ErrNotFound)
			return
		}
		if channel.ID == uuid.Nil {
			channel.ID = uuid.New()
		}
		channel.Created = time.Now().UTC()
		channel.Updated = nil

		d.channels[channel.ID] = *channel
		d.track(channel.ID)
	})
	return err
}

func (r *channelRepository) GetByID(_ context.Context, channelID uuid.UUID) (channel *models.Channel, err error) {
	r.s.read(func(d *dataset) {
		c, ok := d.channels[channelID]
		if !ok {
			err = fmt.Errorf("channel %s: %w", channelID, repository.ErrNotFound)
			return
		}
		channel = &c
	})
	return channel, err
}

func (r *channelRepository) List(_ context.Context) (channels []models.Channel, err error) {
	r.s.read(func(d *dataset) {
		ids := make([]uuid.UUID, 0, len(d.channels))
		for id := range d.channels {
			ids = append(ids, id)
		}
		d.sortIDs(ids)

		channels = make([]models.Channel, 0, len(ids))
		for _, id := range ids {
			channels = append(channels, d.channels[id])
		}
	})
	return channels, nil
}

func (r *channelRepository) Update(_ context.Context, channelID uuid.UUID, upd models.ChannelUpdate) (channel *models.Channel, err error) {
	r.s.write(func(d *dataset) {
		c, ok := d.channels[channelID]
		if !ok {
			err = fmt.Errorf("channel %s: %w", channelID, repository.ErrNotFound)
			return
		}
		now := time.Now().UTC()
		c.Name = upd.Name
		c.Avatar = upd.Avatar
		c.Description = upd.Description
		c.Updated = &now
		d.channels[channelID] = c
		channel = &c
	})
	return channel, err
}

func (r *channelRepository) Delete(_ context.Context, channelID uuid.UUID) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.channels[channelID]; !ok {
			err = fmt.Errorf("channel %s: %w", channelID, repository.ErrNotFound)
			return
		}
		d.deleteChannel(channelID)
	})
	return err
}

func (d *dataset) deleteChannel(channelID uuid.UUID) {
	for id, p := range d.posts {
		if p.ChannelID == channelID {
			d.deletePost(id)
		}
	}
	for e := range d.follows {
		if e.targetID == channelID {
			delete(d.follows, e)
		}
	}
	delete(d.channels, channelID)
	delete(d.order, channelID)
}

type postRepository struct {
	s *Store
}

func (r *postRepository) Create(_ context.Context, post *models.Post) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.channels[post.ChannelID]; !ok {
			err = fmt.Errorf("channel %s: %w", post.ChannelID, repository.ErrNotFound)
			return
		}
		if post.ID == uuid.Nil {
			post.ID = uuid.New()
		}
		post.Created = time.Now().UTC()
		post.Updated = nil

		d.posts[post.ID] = *post
		d.track(post.ID)
	})
	return err
}

func (r *postRepository) GetByID(_ context.Context, postID uuid.UUID) (post *models.Post, err error) {
	r.s.read(func(d *dataset) {
		p, ok := d.posts[postID]
		if !ok {
			err = fmt.Errorf("post %s: %w", postID, repository.ErrNotFound)
			return
		}
		post = &p
	})
	return post, err
}

func (r *postRepository) List(_ context.Context) ([]models.Post, error) {
	return r.list(func(models.Post) bool { return true }), nil
}

func (r *postRepository) ListByChannel(_ context.Context, channelID uuid.UUID) ([]models.Post, error) {
	return r.list(func(p models.Post) bool { return p.ChannelID == channelID }), nil
}

func (r *postRepository) list(keep func(models.Post) bool) (posts []models.Post) {
	r.s.read(func(d *dataset) {
		ids := make([]uuid.UUID, 0, len(d.posts))
		for id, p := range d.posts {
			if keep(p) {
				ids = append(ids, id)
			}
		}
		d.sortIDs(ids)

		posts = make([]models.Post, 0, len(ids))
		for _, id := range ids {
			posts = append(posts, d.posts[id])
		}
	})
	return posts
}

func (r *postRepository) Update(_ context.Context, postID uuid.UUID, upd models.PostUpdate) (post *models.Post, err error) {
	r.s.write(func(d *dataset) {
		p, ok := d.posts[postID]
		if !ok {
			err = fmt.Errorf("post %s: %w", postID, repository.ErrNotFound)
			return
		}
		now := time.Now().UTC()
		p.Name = upd.Name
		p.Description = upd.Description
		p.Updated = &now
		d.posts[postID] = p
		post = &p
	})
	return post, err
}

func (r *postRepository) Delete(_ context.Context, postID uuid.UUID) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.posts[postID]; !ok {
			err = fmt.Errorf("post %s: %w", postID, repository.ErrNotFound)
			return
		}
		d.deletePost(postID)
	})
	return err
}

func (d *dataset) deletePost(postID uuid.UUID) {
	for e := range d.likes {
		if e.targetID == postID {
			delete(d.likes, e)
		}
	}
	for id, c := range d.comments {
		if c.PostID == postID {
			delete(d.comments, id)
			delete(d.order, id)
		}
	}
	delete(d.posts, postID)
	delete(d.order, postID)
}

type commentRepository struct {
	s *Store
}

func (r *commentRepository) Create(_ context.Context, comment *models.Comment) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.posts[comment.PostID]; !ok {
			err = fmt.Errorf("post %s: %w", comment.PostID, repository.ErrNotFound)
			return
		}
		if _, ok := d.users[comment.UserID]; !ok {
			err = fmt.Errorf("user %s: %w", comment.UserID, repository.ErrNotFound)
			return
		}
		if comment.ID == uuid.Nil {
			comment.ID = uuid.New()
		}
		comment.Created = time.Now().UTC()
		comment.Updated = nil
		d.comments[comment.ID] = *comment
		d.track(comment.ID)
	})
	return err
}

func (r *commentRepository) GetByID(_ context.Context, commentID uuid.UUID) (comment *models.Comment, err error) {
	r.s.read(func(d *dataset) {
		c, ok := d.comments[commentID]
		if !ok {
			err = fmt.Errorf("comment %s: %w", commentID, repository.ErrNotFound)
			return
		}
		comment = &c
	})
	return comment, err
}

func (r *commentRepository) List(_ context.Context) ([]models.Comment, error) {
	return r.list(func(models.Comment) bool { return true }), nil
}

func (r *commentRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return r.list(func(c models.Comment) bool { return c.PostID == postID }), nil
}

func (r *commentRepository) list(keep func(models.Comment) bool) (comments []models.Comment) {
	r.s.read(func(d *dataset) {
		ids := make([]uuid.UUID, 0, len(d.comments))
		for id, c := range d.comments {
			if keep(c) {
				ids = append(ids, id)
			}
		}
		d.sortIDs(ids)

		comments = make([]models.Comment, 0, len(ids))
		for _, id := range ids {
			comments = append(comments, d.comments[id])
		}
	})
	return comments
}

func (r *commentRepository) Update(_ context.Context, commentID uuid.UUID, upd models.CommentUpdate) (comment *models.Comment, err error) {
	r.s.write(func(d *dataset) {
		c, ok := d.comments[commentID]
		if !ok {
			err = fmt.Errorf("comment %s: %w", commentID, repository.ErrNotFound)
			return
		}
		now := time.Now().UTC()
		c.Description = upd.Description
		c.Updated = &now
		d.comments[commentID] = c
		comment = &c
	})
	return comment, err
}

func (r *commentRepository) Delete(_ context.Context, commentID uuid.UUID) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.comments[commentID]; !ok {
			err = fmt.Errorf("comment %s: %w", commentID, repository.ErrNotFound)
			return
		}
		delete(d.comments, commentID)
		delete(d.order, commentID)
	})
	return err
}

type relationKind int

const (
	followKind relationKind = iota
	likeKind
)

type relationRepository struct {
	s    *Store
	kind relationKind
}

func (r *relationRepository) edges(d *dataset) map[edge]struct{} {
	if r.kind == followKind {
		return d.follows
	}
	return d.likes
}

func (r *relationRepository) targetExists(d *dataset, targetID uuid.UUID) bool {
	if r.kind == followKind {
		_, ok := d.channels[targetID]
		return ok
	}
	_, ok := d.posts[targetID]
	return ok
}

func (r *relationRepository) Exists(_ context.Context, userID, targetID uuid.UUID) (exists bool, err error) {
	r.s.read(func(d *dataset) {
		_, exists = r.edges(d)[edge{userID: userID, targetID: targetID}]
	})
	return exists, nil
}

func (r *relationRepository) Insert(_ context.Context, userID, targetID uuid.UUID) (err error) {
	r.s.write(func(d *dataset) {
		if _, ok := d.users[userID]; !ok || !r.targetExists(d, targetID) {
			err = fmt.Errorf("relation endpoint: %w", repository.ErrNotFound)
			return
		}
		e := edge{userID: userID, targetID: targetID}
		edges := r.edges(d)
		if _, ok := edges[e]; ok {
			err = fmt.Errorf("relation already present: %w", repository.ErrConflictDetected)
			return
		}
		edges[e] = struct{}{}
	})
	return err
}

func (r *relationRepository) Delete(_ context.Context, userID, targetID uuid.UUID) (err error) {
	r.s.write(func(d *dataset) {
		e := edge{userID: userID, targetID: targetID}
		edges := r.edges(d)
		if _, ok := edges[e]; !ok {
			err = fmt.Errorf("relation already gone: %w", repository.ErrConflictDetected)
			return
		}
		delete(edges, e)
	})
	return err
}

func (r *relationRepository) ListByUser(_ context.Context, userID uuid.UUID) (ids []uuid.UUID, err error) {
	r.s.read(func(d *dataset) {
		ids = []uuid.UUID{}
		for e := range r.edges(d) {
			if e.userID == userID {
				ids = append(ids, e.targetID)
			}
		}
	})
	sortUUIDs(ids)
	return ids, nil
}

func sortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
