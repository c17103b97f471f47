package recipe

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forkful/recipe-api/internal/auth"
	"github.com/forkful/recipe-api/internal/httputil"
	"github.com/forkful/recipe-api/internal/logging"
)

// Handler contains HTTP handlers for recipe endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ByIngredientsRequest represents the ingredient search request body
type ByIngredientsRequest struct {
	Ingredients []string `json:"ingredients"`
}

// ByNameRequest represents the name search request body
type ByNameRequest struct {
	Name string `json:"name"`
}

// SaveRequest represents the save request body.
// Content is kept opaque: whatever the provider returned is stored verbatim.
type SaveRequest struct {
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	SearchType string          `json:"searchType"`
	Rating     int             `json:"rating"`
}

// UpdateRequest represents a partial update of a saved recipe
type UpdateRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
	Rating  *int            `json:"rating"`
}

// ByIngredients searches recipes by ingredient list
// @Summary      Search by ingredients
// @Description  Find recipes matching an ingredient list
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Param        request body ByIngredientsRequest true "Ingredient list"
// @Success      200 {object} httputil.Envelope
// @Failure      502 {object} httputil.Envelope "Provider failure"
// @Router       /api/recipe/by-ingredients [post]
func (h *Handler) ByIngredients(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ByIngredientsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid ingredient search request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	recipes, err := h.service.SearchByIngredients(r.Context(), req.Ingredients)
	if err != nil {
		h.respondSearchError(w, logger, err)
		return
	}

	httputil.RespondData(w, "recipes fetched successfully", recipes, http.StatusOK)
}

// ByName searches a single recipe by name
// @Summary      Search by name
// @Description  Fetch the best-matching recipe detail for a name
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Param        request body ByNameRequest true "Recipe name"
// @Success      200 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope "No matching recipe"
// @Failure      502 {object} httputil.Envelope "Provider failure"
// @Router       /api/recipe/by-name [post]
func (h *Handler) ByName(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ByNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid name search request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.SearchByName(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.respondSearchError(w, logger, err)
		return
	}

	httputil.RespondData(w, "recipe fetched successfully", result, http.StatusOK)
}

// Save persists a recipe for the current user
// @Summary      Save a recipe
// @Description  Persist a previously fetched recipe with an optional rating
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Param        request body SaveRequest true "Recipe to save"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Validation error"
// @Router       /api/recipe/save [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid save request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.service.Save(r.Context(), userID, SaveParams{
		Title:      req.Title,
		Content:    req.Content,
		SearchType: req.SearchType,
		Rating:     req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleRequired),
			errors.Is(err, ErrContentRequired),
			errors.Is(err, ErrInvalidSearchType),
			errors.Is(err, ErrInvalidRating):
			logger.Warn("save failed: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error("save failed: internal error", "error", err.Error())
			httputil.RespondError(w, "failed to save recipe", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("recipe saved", "user_id", userID, "recipe_id", saved.ID)

	httputil.RespondData(w, "recipe saved successfully", saved, http.StatusOK)
}

// Saved lists the current user's saved recipes
// @Summary      List saved recipes
// @Tags         recipe
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Router       /api/recipe/saved [get]
func (h *Handler) Saved(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	recipes, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list saved recipes", "error", err.Error())
		httputil.RespondError(w, "failed to fetch saved recipes", http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, "saved recipes fetched successfully", recipes, http.StatusOK)
}

// Update applies a partial update to one of the current user's saved recipes
// @Summary      Update a saved recipe
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Param        id path string true "Saved recipe ID"
// @Param        request body UpdateRequest true "Fields to update"
// @Success      200 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope "Unknown recipe or wrong owner"
// @Router       /api/recipe/update/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "recipe not found", http.StatusNotFound)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid update request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), userID, recipeID, UpdatePatch{
		Title:   req.Title,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondError(w, "recipe not found", http.StatusNotFound)
		case errors.Is(err, ErrTitleRequired),
			errors.Is(err, ErrContentRequired),
			errors.Is(err, ErrInvalidRating):
			logger.Warn("update failed: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error("update failed: internal error", "error", err.Error())
			httputil.RespondError(w, "failed to update recipe", http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondData(w, "recipe updated successfully", updated, http.StatusOK)
}

// Delete removes one of the current user's saved recipes
// @Summary      Delete a saved recipe
// @Tags         recipe
// @Produce      json
// @Param        id path string true "Saved recipe ID"
// @Success      200 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope "Unknown recipe or wrong owner"
// @Router       /api/recipe/delete/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "recipe not found", http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), userID, recipeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "recipe not found", http.StatusNotFound)
			return
		}
		logger.Error("delete failed: internal error", "error", err.Error())
		httputil.RespondError(w, "failed to delete recipe", http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, "recipe deleted successfully", map[string]string{"id": recipeID.String()}, http.StatusOK)
}

// respondSearchError maps provider errors to the response envelope
func (h *Handler) respondSearchError(w http.ResponseWriter, logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondError(w, "no matching recipe found", http.StatusNotFound)
	case errors.Is(err, ErrUpstream):
		logger.Error("recipe provider failure", "error", err.Error())
		httputil.RespondError(w, "recipe provider is unavailable", http.StatusBadGateway)
	default:
		logger.Error("recipe search failed: internal error", "error", err.Error())
		httputil.RespondError(w, "failed to search recipes", http.StatusInternalServerError)
	}
}
