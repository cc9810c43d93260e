package service

import (
	"context"
	"fmt"

	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/database/model"
	"github.com/todoapp/todo-api/logger"

	"gorm.io/gorm"
)

const (
	MsgTodoCreateFailed = "Error creating todo"
	MsgTodoUpdateFailed = "Error updating todo"
	MsgTodoDeleteFailed = "Error deleting todo"
	msgTodoNotFound     = "Todo not found or user does not have permission"
	MsgTodoUpdated      = "Todo updated successfully"
	MsgTodoDeleted      = "Todo deleted successfully"
)

// TodoService manages todo items. Listing is scoped to the principal;
// renaming and deleting match on the todo name across all users.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

func (s *TodoService) List(ctx context.Context, userId int) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id ASC").
		Find(&todos).
		Error
	if err != nil {
		logger.Warning("list todos failed:", err)
		return nil, newError(KindInternal, msgInternal, err)
	}
	return todos, nil
}

// Create stores a todo for userId in the category named categoryName.
func (s *TodoService) Create(ctx context.Context, userId int, name, categoryName string) (*model.Todo, error) {
	db := s.db.WithContext(ctx)

	category := &model.Category{}
	if err := db.Where("name = ?", categoryName).First(category).Error; err != nil {
		if database.IsNotFound(err) {
			err = fmt.Errorf("category %q: %w", categoryName, err)
		}
		return nil, newError(KindBadRequest, MsgTodoCreateFailed, err)
	}

	if name == "" {
		return nil, newError(KindBadRequest, MsgTodoCreateFailed, errNameRequired)
	}

	todo := &model.Todo{
		Name:       name,
		CategoryId: category.Id,
		UserId:     userId,
	}
	if err := db.Create(todo).Error; err != nil {
		logger.Warning("create todo failed:", err)
		return nil, newError(KindBadRequest, MsgTodoCreateFailed, err)
	}
	return todo, nil
}

// Update renames the todo called todoName. Anything other than exactly one
// affected row is reported as not found.
func (s *TodoService) Update(ctx context.Context, todoName, newName string) error {
	if newName == "" {
		return newError(KindBadRequest, MsgTodoUpdateFailed, errNameRequired)
	}
	result := s.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("name = ?", todoName).
		Update("name", newName)
	if result.Error != nil {
		return newError(KindBadRequest, MsgTodoUpdateFailed, result.Error)
	}
	if result.RowsAffected != 1 {
		return newError(KindNotFound, msgTodoNotFound, nil)
	}
	return nil
}

func (s *TodoService) Delete(ctx context.Context, todoName string) error {
	result := s.db.WithContext(ctx).
		Where("name = ?", todoName).
		Delete(&model.Todo{})
	if result.Error != nil {
		return newError(KindBadRequest, MsgTodoDeleteFailed, result.Error)
	}
	if result.RowsAffected != 1 {
		return newError(KindNotFound, msgTodoNotFound, nil)
	}
	return nil
}
