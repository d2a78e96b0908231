package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resoluteAPI/internal/types/category"
	"resoluteAPI/store"
)

type CategoryService struct {
	categories store.CategoryStore
}

func NewCategoryService(categories store.CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]*category.Category, error) {
	categories, err := s.categories.List(ctx, userID, "name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []*category.Category{}
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req *category.CreateCategoryRequest) (*category.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	color := req.Color
	if color == "" {
		color = category.DefaultColor
	}
	if !category.ValidColor(color) {
		return nil, fmt.Errorf("%w: color %q is not in the palette", ErrInvalid, req.Color)
	}

	existing, err := s.categories.Filter(ctx, store.CategoryFilter{UserID: userID, Name: &req.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: category %q already exists", ErrInvalid, req.Name)
	}

	created, err := s.categories.Create(ctx, &category.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
		Color:  color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

// DeleteCategory removes the category only. Challenges keep referencing the
// deleted name; lookups by name simply stop resolving.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID string, id uuid.UUID) error {
	results, err := s.categories.Filter(ctx, store.CategoryFilter{UserID: userID, ID: &id})
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if len(results) == 0 {
		return store.ErrNotFound
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
