package recipe

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Search origin tags for saved recipes
const (
	SearchTypeIngredient = "ingredient"
	SearchTypeName       = "name"
)

// Ingredient is a normalized ingredient line from the provider
type Ingredient struct {
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}

// Recipe is the normalized shape of a provider recipe.
// Summaries from an ingredient search and full details from a name
// search share this shape; summaries may leave Instructions empty.
type Recipe struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Image        string       `json:"image,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Summary      string       `json:"summary,omitempty"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
}

// SavedRecipe is a user-owned persisted recipe with an optional rating.
// Content is the opaque provider payload as saved by the client.
type SavedRecipe struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	SearchType string          `json:"searchType"`
	Rating     int             `json:"rating"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
