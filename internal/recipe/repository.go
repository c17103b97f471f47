package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/forkful/recipe-api/internal/database"
)

// UpdatePatch carries the fields of a partial saved-recipe update.
// Nil fields are left untouched.
type UpdatePatch struct {
	Title   *string
	Content json.RawMessage
	Rating  *int
}

// Repository handles saved-recipe persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Save persists a new saved recipe for the owner
func (r *Repository) Save(ctx context.Context, ownerID uuid.UUID, title string, content json.RawMessage, searchType string, rating int) (*SavedRecipe, error) {
	dbRecipe := &database.SavedRecipe{
		UserID:     ownerID,
		Title:      title,
		Content:    content,
		SearchType: searchType,
		Rating:     rating,
	}

	_, err := r.db.NewInsert().
		Model(dbRecipe).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	return mapDBSavedRecipeToModel(dbRecipe), nil
}

// ListByOwner returns the owner's saved recipes in insertion order
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]SavedRecipe, error) {
	var dbRecipes []database.SavedRecipe
	err := r.db.NewSelect().
		Model(&dbRecipes).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}

	recipes := make([]SavedRecipe, 0, len(dbRecipes))
	for i := range dbRecipes {
		recipes = append(recipes, *mapDBSavedRecipeToModel(&dbRecipes[i]))
	}

	return recipes, nil
}

// Update applies a partial patch to a saved recipe. A recipe owned by a
// different user is indistinguishable from a missing one: both are ErrNotFound.
func (r *Repository) Update(ctx context.Context, ownerID, recipeID uuid.UUID, patch UpdatePatch) (*SavedRecipe, error) {
	query := r.db.NewUpdate().
		Model((*database.SavedRecipe)(nil)).
		Set("updated_at = NOW()").
		Where("id = ?", recipeID).
		Where("user_id = ?", ownerID)

	if patch.Title != nil {
		query = query.Set("title = ?", *patch.Title)
	}
	if patch.Content != nil {
		query = query.Set("content = ?", patch.Content)
	}
	if patch.Rating != nil {
		query = query.Set("rating = ?", *patch.Rating)
	}

	result, err := query.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update saved recipe: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.getByOwner(ctx, ownerID, recipeID)
}

// Delete removes a saved recipe, with the same ownership semantics as Update
func (r *Repository) Delete(ctx context.Context, ownerID, recipeID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.SavedRecipe)(nil)).
		Where("id = ?", recipeID).
		Where("user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) getByOwner(ctx context.Context, ownerID, recipeID uuid.UUID) (*SavedRecipe, error) {
	dbRecipe := new(database.SavedRecipe)
	err := r.db.NewSelect().
		Model(dbRecipe).
		Where("id = ?", recipeID).
		Where("user_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get saved recipe: %w", err)
	}

	return mapDBSavedRecipeToModel(dbRecipe), nil
}

// mapDBSavedRecipeToModel converts database model to domain model.
// Stored content that is empty degrades to an empty JSON object so
// display never fails on a malformed blob.
func mapDBSavedRecipeToModel(dbr *database.SavedRecipe) *SavedRecipe {
	content := dbr.Content
	if len(content) == 0 || !json.Valid(content) {
		content = json.RawMessage("{}")
	}

	return &SavedRecipe{
		ID:         dbr.ID,
		UserID:     dbr.UserID,
		Title:      dbr.Title,
		Content:    content,
		SearchType: dbr.SearchType,
		Rating:     dbr.Rating,
		CreatedAt:  dbr.CreatedAt,
		UpdatedAt:  dbr.UpdatedAt,
	}
}
