// Package google holds the Google Places review source. The integration is
// scaffolded but intentionally inert: it validates input and returns an
// empty set until the Places API wiring lands.
package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"flex_reviews/internal/domain"
)

type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// GetReviews returns the reviews for one place id. placeID is required;
// everything else about the real integration is still a stub.
func (c *Client) GetReviews(ctx context.Context, placeID string) ([]domain.Review, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, fmt.Errorf("placeId is required: %w", domain.ErrValidation)
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	// TODO: call the Places Details endpoint with c.hc once an API key is
	// provisioned and map the payload through a google normalizer.
	log.Debug().Str("place_id", placeID).Msg("google source stubbed; returning empty review set")
	return []domain.Review{}, nil
}
