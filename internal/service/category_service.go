package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/model"
	"github.com/mm-grybel/CS50-Study/internal/repository"
)

// CategoryService exposes category domain operations. Categories are
// read-only after creation.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddCategory(ctx context.Context, typeLabel string, authorID uint) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// AddCategory stores a new category with a globally unique type label.
func (s *categoryService) AddCategory(ctx context.Context, typeLabel string, authorID uint) (*model.Category, error) {
	if strings.TrimSpace(typeLabel) == "" {
		return nil, apperrors.ErrMissingField
	}

	if existing, err := s.categoryRepo.FindByType(ctx, typeLabel); err == nil && existing != nil {
		return nil, apperrors.ErrCategoryExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	category := &model.Category{
		Type:      typeLabel,
		Timestamp: time.Now().UTC(),
		AuthorID:  authorID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}
