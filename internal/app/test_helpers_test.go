package app

import (
	"context"
	"sync"

	"taskkeeper/internal/model"
)

// memUserStore is an in-memory UserStore for service tests.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint]*model.User)}
}

func (s *memUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) UpdatePasswordHash(id uint, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

// memTodoStore is an in-memory TodoStore. IDs are monotonically
// increasing and never reused after a delete, matching the storage
// engine contract the service relies on.
type memTodoStore struct {
	mu     sync.Mutex
	nextID uint
	todos  map[uint]*model.Todo
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{todos: make(map[uint]*model.Todo)}
}

func (s *memTodoStore) Create(todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	todo.ID = s.nextID
	clone := *todo
	s.todos[todo.ID] = &clone
	return nil
}

func (s *memTodoStore) GetByID(id uint) (*model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (s *memTodoStore) ListByOwnerID(ownerID uint) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Todo
	for id := uint(1); id <= s.nextID; id++ {
		if t, ok := s.todos[id]; ok && t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *memTodoStore) ListAll() ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Todo
	for id := uint(1); id <= s.nextID; id++ {
		if t, ok := s.todos[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *memTodoStore) Update(todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *todo
	s.todos[todo.ID] = &clone
	return nil
}

func (s *memTodoStore) DeleteByID(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.todos, id)
	return nil
}

// memListCache is an in-memory TodoListCache tracking hits and writes.
type memListCache struct {
	mu    sync.Mutex
	lists map[uint][]model.Todo
	dirty map[uint]bool
	sets  int
	hits  int
}

func newMemListCache() *memListCache {
	return &memListCache{
		lists: make(map[uint][]model.Todo),
		dirty: make(map[uint]bool),
	}
}

func (c *memListCache) GetList(_ context.Context, ownerID uint) ([]model.Todo, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	todos, ok := c.lists[ownerID]
	if ok {
		c.hits++
	}
	return todos, ok, nil
}

func (c *memListCache) SetList(_ context.Context, ownerID uint, todos []model.Todo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[ownerID] = todos
	c.sets++
	return nil
}

func (c *memListCache) Invalidate(_ context.Context, ownerID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, ownerID)
	return nil
}

func (c *memListCache) MarkDirty(_ context.Context, ownerID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty[ownerID] = true
	return nil
}

func (c *memListCache) IsDirty(_ context.Context, ownerID uint) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty[ownerID], nil
}

func (c *memListCache) clearDirty(ownerID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.dirty, ownerID)
}

// recordingPublisher captures published audit events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []model.AuditEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event model.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}
