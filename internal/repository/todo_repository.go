package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskkeeper/internal/model"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(todo *model.Todo) error {
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("create todo failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) GetByID(id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query todo by id failed: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) ListByOwnerID(ownerID uint) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos by owner failed: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) ListAll() ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list all todos failed: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) Update(todo *model.Todo) error {
	if err := r.db.Save(todo).Error; err != nil {
		return fmt.Errorf("update todo failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&model.Todo{}, id).Error; err != nil {
		return fmt.Errorf("delete todo failed: %w", err)
	}
	return nil
}
