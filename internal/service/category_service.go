package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/meetgrid/server/internal/model"
)

// CategoryService orchestrates category CRUD. Mutations are admin-only,
// enforced by the handlers via the guard.
type CategoryService struct {
	categories CategoryStore
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories CategoryStore, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		validate:   validator.New(),
		logger:     logger.With().Str("component", "categories").Logger(),
	}
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Update rewrites a category.
func (s *CategoryService) Update(ctx context.Context, id int64, req model.CategoryRequest) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}

	category := &model.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}
