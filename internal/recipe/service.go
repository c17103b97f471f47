package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNameRequired      = errors.New("recipe name is required")
	ErrTitleRequired     = errors.New("title is required")
	ErrContentRequired   = errors.New("content is required")
	ErrInvalidSearchType = errors.New("searchType must be \"ingredient\" or \"name\"")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
)

// SavedStore defines the persistence operations the service depends on
type SavedStore interface {
	Save(ctx context.Context, ownerID uuid.UUID, title string, content json.RawMessage, searchType string, rating int) (*SavedRecipe, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]SavedRecipe, error)
	Update(ctx context.Context, ownerID, recipeID uuid.UUID, patch UpdatePatch) (*SavedRecipe, error)
	Delete(ctx context.Context, ownerID, recipeID uuid.UUID) error
}

// SaveParams carries the fields of a save request
type SaveParams struct {
	Title      string
	Content    json.RawMessage
	SearchType string
	Rating     int
}

// Service handles recipe search and saved-recipe business logic
type Service struct {
	provider Provider
	store    SavedStore
}

func NewService(provider Provider, store SavedStore) *Service {
	return &Service{provider: provider, store: store}
}

// SearchByIngredients returns recipe summaries matching the ingredient list.
// An empty list is a valid query with an empty result.
func (s *Service) SearchByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error) {
	recipes, err := s.provider.SearchByIngredients(ctx, ingredients)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchByName returns the best-matching recipe detail for a name
func (s *Service) SearchByName(ctx context.Context, name string) (*Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	return s.provider.SearchByName(ctx, name)
}

// Save persists a recipe for the owner after validating the request
func (s *Service) Save(ctx context.Context, ownerID uuid.UUID, params SaveParams) (*SavedRecipe, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if len(params.Content) == 0 || !json.Valid(params.Content) {
		return nil, ErrContentRequired
	}
	if params.SearchType != SearchTypeIngredient && params.SearchType != SearchTypeName {
		return nil, ErrInvalidSearchType
	}
	if params.Rating < 0 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}

	saved, err := s.store.Save(ctx, ownerID, params.Title, params.Content, params.SearchType, params.Rating)
	if err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	return saved, nil
}

// ListByOwner returns all recipes saved by the owner
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]SavedRecipe, error) {
	recipes, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Update applies a partial patch to one of the owner's saved recipes
func (s *Service) Update(ctx context.Context, ownerID, recipeID uuid.UUID, patch UpdatePatch) (*SavedRecipe, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrTitleRequired
	}
	if patch.Content != nil && !json.Valid(patch.Content) {
		return nil, ErrContentRequired
	}
	if patch.Rating != nil && (*patch.Rating < 0 || *patch.Rating > 5) {
		return nil, ErrInvalidRating
	}

	updated, err := s.store.Update(ctx, ownerID, recipeID, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update saved recipe: %w", err)
	}

	return updated, nil
}

// Delete removes one of the owner's saved recipes
func (s *Service) Delete(ctx context.Context, ownerID, recipeID uuid.UUID) error {
	err := s.store.Delete(ctx, ownerID, recipeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete saved recipe: %w", err)
	}
	return nil
}
