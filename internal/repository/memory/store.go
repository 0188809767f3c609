// Package memory keeps the forum in process maps. It backs the service tests
// and runs the API without Postgres when STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type edge struct {
	userID   uuid.UUID
	targetID uuid.UUID
}

type dataset struct {
	users    map[uuid.UUID]models.User
	channels map[uuid.UUID]models.Channel
	posts    map[uuid.UUID]models.Post
	comments map[uuid.UUID]models.Comment
	follows  map[edge]struct{}
	likes    map[edge]struct{}

	// seq orders rows by insertion so listings are stable.
	seq   uint64
	order map[uuid.UUID]uint64
}

func newDataset() *dataset {
	return &dataset{
		users:    make(map[uuid.UUID]models.User),
		channels: make(map[uuid.UUID]models.Channel),
		posts:    make(map[uuid.UUID]models.Post),
		comments: make(map[uuid.UUID]models.Comment),
		follows:  make(map[edge]struct{}),
		likes:    make(map[edge]struct{}),
		order:    make(map[uuid.UUID]uint64),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.channels {
		c.channels[k] = v
	}
	for k, v := range d.posts {
		c.posts[k] = v
	}
	for k, v := range d.comments {
		c.comments[k] = v
	}
	for k := range d.follows {
		c.follows[k] = struct{}{}
	}
	for k := range d.likes {
		c.likes[k] = struct{}{}
	}
	for k, v := range d.order {
		c.order[k] = v
	}
	c.seq = d.seq
	return c
}

func (d *dataset) track(id uuid.UUID) {
	d.seq++
	d.order[id] = d.seq
}

func (d *dataset) sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return d.order[ids[i]] < d.order[ids[j]] })
}

// Store is safe for concurrent use. Transactions are serialized: WithinTx
// holds txMu for the whole callback and works on a private copy of the data,
// which replaces the shared state only when the callback succeeds. Readers
// never see uncommitted rows.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepository{s: s},
		Channel: &channelRepository{s: s},
		Post:    &postRepository{s: s},
		Comment: &commentRepository{s: s},
		Follow:  &relationRepository{s: s, kind: followKind},
		Like:    &relationRepository{s: s, kind: likeKind},
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(repo *repository.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tx := &Store{data: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(tx.Repository()); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = tx.data
	s.mu.Unlock()
	return nil
}

func (s *Store) read(fn func(d *dataset)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// write outside a transaction waits for any running one, so a commit cannot drop it.
func (s *Store) write(fn func(d *dataset)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}
