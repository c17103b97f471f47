package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/forkful/recipe-api/internal/config"
)

var (
	ErrNotFound = errors.New("recipe not found")
	ErrUpstream = errors.New("recipe provider request failed")
)

// Provider defines the external recipe lookup operations
type Provider interface {
	SearchByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error)
	SearchByName(ctx context.Context, name string) (*Recipe, error)
}

// searchResultLimit caps how many recipes an ingredient search returns
const searchResultLimit = 10

// SpoonacularClient calls the Spoonacular API and normalizes its responses
type SpoonacularClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSpoonacularClient(cfg config.SpoonacularConfig) *SpoonacularClient {
	return &SpoonacularClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// spoonIngredient mirrors Spoonacular's extended ingredient shape
type spoonIngredient struct {
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}

// spoonInformation mirrors the /recipes/{id}/information response
type spoonInformation struct {
	ID                  int64             `json:"id"`
	Title               string            `json:"title"`
	Image               string            `json:"image"`
	Summary             string            `json:"summary"`
	SourceURL           string            `json:"sourceUrl"`
	Instructions        string            `json:"instructions"`
	ExtendedIngredients []spoonIngredient `json:"extendedIngredients"`
}

func (info *spoonInformation) normalize() Recipe {
	ingredients := make([]Ingredient, 0, len(info.ExtendedIngredients))
	for _, ing := range info.ExtendedIngredients {
		ingredients = append(ingredients, Ingredient{
			Name:     ing.Name,
			Original: ing.Original,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
		})
	}

	return Recipe{
		ID:           info.ID,
		Title:        info.Title,
		Image:        info.Image,
		Ingredients:  ingredients,
		Summary:      info.Summary,
		SourceURL:    info.SourceURL,
		Instructions: info.Instructions,
	}
}

// SearchByIngredients finds recipes matching an ingredient list.
// An empty ingredient list yields an empty result, not an error.
func (c *SpoonacularClient) SearchByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error) {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return []Recipe{}, nil
	}

	var matches []struct {
		ID int64 `json:"id"`
	}
	params := url.Values{
		"ingredients":  {strings.Join(cleaned, ",")},
		"number":       {strconv.Itoa(searchResultLimit)},
		"ranking":      {"1"},
		"ignorePantry": {"true"},
	}
	if err := c.get(ctx, "/recipes/findByIngredients", params, &matches); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []Recipe{}, nil
	}

	// findByIngredients omits summary, source URL and instructions;
	// fetch full details for the matched ids in one bulk call
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strconv.FormatInt(m.ID, 10))
	}

	var details []spoonInformation
	bulkParams := url.Values{"ids": {strings.Join(ids, ",")}}
	if err := c.get(ctx, "/recipes/informationBulk", bulkParams, &details); err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(details))
	for i := range details {
		recipes = append(recipes, details[i].normalize())
	}

	return recipes, nil
}

// SearchByName finds the provider's best match for a recipe name.
// When the provider returns several candidates the first (provider-ranked)
// result is used, so repeated searches are deterministic.
func (c *SpoonacularClient) SearchByName(ctx context.Context, name string) (*Recipe, error) {
	var search struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	params := url.Values{
		"query":  {name},
		"number": {"1"},
	}
	if err := c.get(ctx, "/recipes/complexSearch", params, &search); err != nil {
		return nil, err
	}
	if len(search.Results) == 0 {
		return nil, ErrNotFound
	}

	var info spoonInformation
	path := fmt.Sprintf("/recipes/%d/information", search.Results[0].ID)
	detailParams := url.Values{"includeNutrition": {"false"}}
	if err := c.get(ctx, path, detailParams, &info); err != nil {
		return nil, err
	}

	recipe := info.normalize()
	return &recipe, nil
}

// get performs a provider GET request and decodes the JSON body into out
func (c *SpoonacularClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: provider returned status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed provider response: %v", ErrUpstream, err)
	}

	return nil
}
