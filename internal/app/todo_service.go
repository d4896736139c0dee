package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskkeeper/internal/model"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrForbidden    = errors.New("insufficient role")
)

// TodoStore is the persistence surface TodoService needs.
type TodoStore interface {
	Create(todo *model.Todo) error
	GetByID(id uint) (*model.Todo, error)
	ListByOwnerID(ownerID uint) ([]model.Todo, error)
	ListAll() ([]model.Todo, error)
	Update(todo *model.Todo) error
	DeleteByID(id uint) error
}

// AuditPublisher enqueues audit events for asynchronous persistence.
type AuditPublisher interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

// TodoListCache caches a user's todo listing between writes.
type TodoListCache interface {
	GetList(ctx context.Context, ownerID uint) ([]model.Todo, bool, error)
	SetList(ctx context.Context, ownerID uint, todos []model.Todo) error
	Invalidate(ctx context.Context, ownerID uint) error
	MarkDirty(ctx context.Context, ownerID uint) error
	IsDirty(ctx context.Context, ownerID uint) (bool, error)
}

type TodoService struct {
	todoStore TodoStore
	publisher AuditPublisher
	listCache TodoListCache
}

type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

func NewTodoService(todoStore TodoStore, publisher AuditPublisher, listCache TodoListCache) *TodoService {
	return &TodoService{
		todoStore: todoStore,
		publisher: publisher,
		listCache: listCache,
	}
}

// List returns the caller's own rows. Admins go through AdminListAll for
// the unfiltered view; this path is always owner-scoped.
func (s *TodoService) List(ctx context.Context, caller Identity) ([]model.Todo, error) {
	if caller.ID == 0 {
		return nil, ErrInvalidInput
	}

	if s.listCache != nil {
		dirty, err := s.listCache.IsDirty(ctx, caller.ID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.listCache.GetList(ctx, caller.ID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	todos, err := s.todoStore.ListByOwnerID(caller.ID)
	if err != nil {
		return nil, err
	}
	if s.listCache != nil {
		if dirty, dirtyErr := s.listCache.IsDirty(ctx, caller.ID); dirtyErr == nil && !dirty {
			_ = s.listCache.SetList(ctx, caller.ID, todos)
		}
	}
	return todos, nil
}

// Get returns a single row. A row owned by someone else is reported as
// not found, indistinguishable from a row that does not exist.
func (s *TodoService) Get(caller Identity, id uint) (*model.Todo, error) {
	if caller.ID == 0 || id == 0 {
		return nil, ErrInvalidInput
	}

	todo, err := s.todoStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if todo == nil || !Allowed(caller, todo.OwnerID, ActionRead) {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Create inserts a row owned by the caller. The owner is never taken from
// client input, so nobody can create todos on another user's behalf.
func (s *TodoService) Create(ctx context.Context, caller Identity, input TodoInput) (*model.Todo, error) {
	if caller.ID == 0 {
		return nil, ErrInvalidInput
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	todo := &model.Todo{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    input.Priority,
		Complete:    input.Complete,
		OwnerID:     caller.ID,
	}
	if err := s.todoStore.Create(todo); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, caller.ID, "todo.create", todo.ID)
	return todo, nil
}

// Update replaces the mutable fields in place. ID and owner are immutable.
func (s *TodoService) Update(ctx context.Context, caller Identity, id uint, input TodoInput) error {
	if caller.ID == 0 || id == 0 {
		return ErrInvalidInput
	}

	todo, err := s.todoStore.GetByID(id)
	if err != nil {
		return err
	}
	if todo == nil || !Allowed(caller, todo.OwnerID, ActionUpdate) {
		return ErrTodoNotFound
	}

	todo.Title = strings.TrimSpace(input.Title)
	todo.Description = strings.TrimSpace(input.Description)
	todo.Priority = input.Priority
	todo.Complete = input.Complete
	if err := s.todoStore.Update(todo); err != nil {
		return err
	}

	s.afterWrite(ctx, caller.ID, "todo.update", todo.ID)
	return nil
}

// Delete removes a row the caller owns, or any row when the caller is an
// admin. The not-found conflation applies the same way as Get/Update.
func (s *TodoService) Delete(ctx context.Context, caller Identity, id uint) error {
	if caller.ID == 0 || id == 0 {
		return ErrInvalidInput
	}

	todo, err := s.todoStore.GetByID(id)
	if err != nil {
		return err
	}
	if todo == nil || !Allowed(caller, todo.OwnerID, ActionDelete) {
		return ErrTodoNotFound
	}

	if err := s.todoStore.DeleteByID(id); err != nil {
		return err
	}

	s.afterWrite(ctx, caller.ID, "todo.delete", id)
	if s.listCache != nil && todo.OwnerID != caller.ID {
		_ = s.listCache.MarkDirty(ctx, todo.OwnerID)
		_ = s.listCache.Invalidate(ctx, todo.OwnerID)
	}
	return nil
}

// AdminListAll returns every row regardless of owner.
func (s *TodoService) AdminListAll(caller Identity) ([]model.Todo, error) {
	if caller.ID == 0 {
		return nil, ErrInvalidInput
	}
	if !Allowed(caller, 0, ActionReadAll) {
		return nil, ErrForbidden
	}
	return s.todoStore.ListAll()
}

// AdminDelete removes any row by id. Unlike the resource path an absent
// row is reported honestly, since the endpoint itself is admin-gated.
func (s *TodoService) AdminDelete(ctx context.Context, caller Identity, id uint) error {
	if caller.ID == 0 || id == 0 {
		return ErrInvalidInput
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}

	todo, err := s.todoStore.GetByID(id)
	if err != nil {
		return err
	}
	if todo == nil {
		return ErrTodoNotFound
	}

	if err := s.todoStore.DeleteByID(id); err != nil {
		return err
	}

	s.afterWrite(ctx, caller.ID, "todo.admin_delete", id)
	if s.listCache != nil {
		_ = s.listCache.MarkDirty(ctx, todo.OwnerID)
		_ = s.listCache.Invalidate(ctx, todo.OwnerID)
	}
	return nil
}

// afterWrite invalidates the caller's cached listing and emits an audit
// event. Both are best effort; a cache or broker hiccup never fails the
// request that already committed.
func (s *TodoService) afterWrite(ctx context.Context, actorID uint, action string, entityID uint) {
	if s.listCache != nil {
		_ = s.listCache.MarkDirty(ctx, actorID)
		_ = s.listCache.Invalidate(ctx, actorID)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, model.AuditEvent{
			ActorID:   actorID,
			Action:    action,
			Entity:    "todo",
			EntityID:  entityID,
			CreatedAt: time.Now(),
		})
	}
}
