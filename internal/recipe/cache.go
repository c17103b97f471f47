package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/recipe-api/internal/logging"
)

// CachedProvider wraps a Provider with a Redis cache-aside layer.
// Cache failures degrade to a direct provider call and never fail the request.
type CachedProvider struct {
	provider Provider
	client   *redis.Client
	ttl      time.Duration
	logger   *logging.Logger
}

func NewCachedProvider(provider Provider, client *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		client:   client,
		ttl:      ttl,
		logger:   logger,
	}
}

// ingredientsKey builds a cache key that is stable across ingredient order and casing
func ingredientsKey(ingredients []string) string {
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if trimmed := strings.TrimSpace(strings.ToLower(ing)); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	sort.Strings(normalized)
	return "spoonacular:ingredients:" + strings.Join(normalized, ",")
}

func nameKey(name string) string {
	return "spoonacular:name:" + strings.TrimSpace(strings.ToLower(name))
}

func (p *CachedProvider) SearchByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error) {
	key := ingredientsKey(ingredients)

	var cached []Recipe
	if p.lookup(ctx, key, &cached) {
		return cached, nil
	}

	recipes, err := p.provider.SearchByIngredients(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	p.store(ctx, key, recipes)

	return recipes, nil
}

func (p *CachedProvider) SearchByName(ctx context.Context, name string) (*Recipe, error) {
	key := nameKey(name)

	var cached Recipe
	if p.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := p.provider.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	p.store(ctx, key, result)

	return result, nil
}

// lookup reports whether the key was found and decoded into out
func (p *CachedProvider) lookup(ctx context.Context, key string, out any) bool {
	data, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.logger.Warn("recipe cache lookup failed", "key", key, "error", err.Error())
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		p.logger.Warn("recipe cache entry is malformed, ignoring", "key", key, "error", err.Error())
		return false
	}

	return true
}

func (p *CachedProvider) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		p.logger.Warn("failed to marshal recipe cache entry", "key", key, "error", err.Error())
		return
	}

	if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.logger.Warn("failed to store recipe cache entry", "key", key, "error", err.Error())
	}
}
