package service

import (
	"context"

	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/database/model"
	"github.com/todoapp/todo-api/logger"

	"gorm.io/gorm"
)

const (
	msgCategoryExists       = "Category already existed!"
	MsgCategoryCreateFailed = "Error creating category"
	MsgCategoryUpdateFailed = "Error updating Category"
	MsgCategoryDeleteFailed = "Error deleting Category"
	msgCategoryNotFound     = "Category not found or user does not have permission"
	MsgCategoryCreated      = "Category created successfully"
	MsgCategoryUpdated      = "Category updated successfully"
	MsgCategoryDeleted      = "Category deleted successfully"
)

// CategoryService manages the global category list. Categories have no
// owner: any authenticated user may change any of them.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Create adds a category. Uniqueness is checked before the insert; the unique
// index on categories.name catches concurrent inserts that pass the check.
func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	db := s.db.WithContext(ctx)

	existing := &model.Category{}
	err := db.Where("name = ?", name).First(existing).Error
	switch {
	case err == nil:
		return nil, newError(KindConflict, msgCategoryExists, nil)
	case !database.IsNotFound(err):
		return nil, newError(KindBadRequest, MsgCategoryCreateFailed, err)
	}

	if name == "" {
		return nil, newError(KindBadRequest, MsgCategoryCreateFailed, errNameRequired)
	}

	category := &model.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		logger.Warning("create category failed:", err)
		return nil, newError(KindBadRequest, MsgCategoryCreateFailed, err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		logger.Warning("list categories failed:", err)
		return nil, newError(KindInternal, msgInternal, err)
	}
	return categories, nil
}

// Update renames the category called categoryName. Anything other than
// exactly one affected row is reported as not found. Renaming onto a name
// that is already taken fails on the unique index.
func (s *CategoryService) Update(ctx context.Context, categoryName, newName string) error {
	if newName == "" {
		return newError(KindBadRequest, MsgCategoryUpdateFailed, errNameRequired)
	}
	result := s.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("name = ?", categoryName).
		Update("name", newName)
	if result.Error != nil {
		return newError(KindBadRequest, MsgCategoryUpdateFailed, result.Error)
	}
	if result.RowsAffected != 1 {
		return newError(KindNotFound, msgCategoryNotFound, nil)
	}
	return nil
}

// Delete removes the category called categoryName. Todos pointing at it are
// left untouched.
func (s *CategoryService) Delete(ctx context.Context, categoryName string) error {
	result := s.db.WithContext(ctx).
		Where("name = ?", categoryName).
		Delete(&model.Category{})
	if result.Error != nil {
		return newError(KindBadRequest, MsgCategoryDeleteFailed, result.Error)
	}
	if result.RowsAffected != 1 {
		return newError(KindNotFound, msgCategoryNotFound, nil)
	}
	return nil
}
