package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
)

const propertiesCacheKey = "properties:v1"

// PropertyService serves per-listing aggregates derived from the raw
// dataset. Summaries are recomputed from the file on demand and parked in
// the query cache until the dataset changes.
type PropertyService struct {
	store    domain.RawStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPropertyService(store domain.RawStore, cache domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{store: store, cache: cache, cacheTTL: ttl}
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]domain.PropertySummary, error) {
	if s.cache != nil {
		var cached []domain.PropertySummary
		if ok, _ := s.cache.Get(ctx, propertiesCacheKey, &cached); ok {
			return cached, nil
		}
	}

	raws, err := s.store.ReadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("property aggregation load failed")
		return nil, err
	}
	summaries := BuildPropertySummaries(raws)

	if s.cache != nil {
		_ = s.cache.Set(ctx, propertiesCacheKey, summaries, int(s.cacheTTL.Seconds()))
	}
	return summaries, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (domain.PropertySummary, error) {
	summaries, err := s.ListProperties(ctx)
	if err != nil {
		return domain.PropertySummary{}, err
	}
	for _, p := range summaries {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.PropertySummary{}, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
}

// Invalidate drops the cached summary list. Called after a dataset reload.
func (s *PropertyService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, propertiesCacheKey)
	}
}
