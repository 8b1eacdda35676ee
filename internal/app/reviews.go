package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// ReviewService owns the canonical review set. The set is an explicit
// in-memory cache over the raw store: it is built on first use or on
// Reload, and approval updates land in it directly, so reads never need a
// file round-trip to observe a fresh approval.
type ReviewService struct {
	store  domain.RawStore
	google domain.ReviewSource

	sf singleflight.Group

	mu     sync.RWMutex
	byID   map[string]domain.Review
	order  []string
	loaded bool
}

func NewReviewService(store domain.RawStore, google domain.ReviewSource) *ReviewService {
	return &ReviewService{
		store:  store,
		google: google,
		byID:   map[string]domain.Review{},
	}
}

// load rebuilds the in-memory set from the raw store. Concurrent callers
// collapse onto a single read via singleflight.
func (s *ReviewService) load(ctx context.Context) error {
	_, err, _ := s.sf.Do("hostaway", func() (any, error) {
		raws, err := s.store.ReadAll(ctx)
		observability.ObserveSourceLoad(domain.SourceHostaway, len(raws), err)
		if err != nil {
			return nil, err
		}
		reviews := NormalizeReviews(raws)

		byID := make(map[string]domain.Review, len(reviews))
		order := make([]string, 0, len(reviews))
		for _, rv := range reviews {
			if _, dup := byID[rv.ID]; !dup {
				order = append(order, rv.ID)
			}
			byID[rv.ID] = rv
		}

		s.mu.Lock()
		s.byID = byID
		s.order = order
		s.loaded = true
		s.mu.Unlock()

		log.Info().Int("reviews", len(reviews)).Msg("hostaway dataset loaded")
		return nil, nil
	})
	return err
}

func (s *ReviewService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.load(ctx)
}

// Reload discards the in-memory set and rebuilds it from the backing file.
func (s *ReviewService) Reload(ctx context.Context) error {
	return s.load(ctx)
}

func (s *ReviewService) snapshot() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// GetHostawayReviews returns the full normalized Hostaway set.
func (s *ReviewService) GetHostawayReviews(ctx context.Context) (domain.ReviewsResponse, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		log.Error().Err(err).Msg("hostaway load failed")
		return domain.ReviewsResponse{}, err
	}
	reviews := s.snapshot()
	return domain.ReviewsResponse{
		Reviews: reviews,
		Meta:    domain.ReviewsMeta{Total: len(reviews), Source: domain.SourceHostaway},
	}, nil
}

// GetGoogleReviews delegates to the secondary source integration.
func (s *ReviewService) GetGoogleReviews(ctx context.Context, placeID string) (domain.ReviewsResponse, error) {
	reviews, err := s.google.GetReviews(ctx, placeID)
	if err != nil {
		return domain.ReviewsResponse{}, err
	}
	return domain.ReviewsResponse{
		Reviews: reviews,
		Meta:    domain.ReviewsMeta{Total: len(reviews), Source: domain.SourceGoogle},
	}, nil
}

// GetAllReviews is the union of every source. The google integration needs
// a place id per call, so today the union is the Hostaway set.
func (s *ReviewService) GetAllReviews(ctx context.Context) (domain.ReviewsResponse, error) {
	hostaway, err := s.GetHostawayReviews(ctx)
	if err != nil {
		return domain.ReviewsResponse{}, err
	}
	all := make([]domain.Review, 0, len(hostaway.Reviews))
	all = append(all, hostaway.Reviews...)
	return domain.ReviewsResponse{
		Reviews: all,
		Meta:    domain.ReviewsMeta{Total: len(all), Source: domain.SourceAll},
	}, nil
}

// Approve flips the approval flag on one review. The in-memory update is
// authoritative; persistence to the backing file is attempted afterwards
// and skipped silently when the file has no matching record.
func (s *ReviewService) Approve(ctx context.Context, id string, approved bool) (domain.Review, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Review{}, err
	}

	s.mu.Lock()
	rv, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return domain.Review{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	rv.Approved = approved
	s.byID[id] = rv
	s.mu.Unlock()

	found, err := s.store.UpdateApproval(ctx, id, approved)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("persist approval failed")
		return domain.Review{}, err
	}
	if !found {
		log.Debug().Str("id", id).Msg("no raw record for review; approval kept in memory only")
	}
	return rv, nil
}

// ApproveBulk applies Approve per id. A failed id is counted and skipped;
// it never aborts the rest of the batch.
func (s *ReviewService) ApproveBulk(ctx context.Context, ids []string, approved bool) (domain.BulkResult, error) {
	res := domain.BulkResult{TotalProcessed: len(ids)}
	for _, id := range ids {
		if _, err := s.Approve(ctx, id, approved); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("bulk approval item failed")
			res.Failed++
			continue
		}
		res.Updated++
	}
	return res, nil
}
