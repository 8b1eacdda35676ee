package app

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"flex_reviews/internal/domain"
)

// Ordered neighborhood -> city table; the first substring match on the
// listing name wins. Order matters ("Central London" must beat a later
// bare "London" entry if one is ever added).
var cityTable = []struct {
	Needle string
	City   string
}{
	{"Shoreditch", "London"},
	{"Central London", "London"},
	{"Camden Town", "London"},
	{"Manchester", "Manchester"},
	{"Edinburgh", "Edinburgh"},
}

// listingAccum carries the running sums for one listing so the whole
// dataset is summarized in a single pass.
type listingAccum struct {
	id   string
	name string

	reviewCount int
	ratingSum   float64
	ratingCount int

	catCounts map[string]int
	catRank   map[string]int
	nextRank  int

	firstScore float64
	lastScore  float64
	scoreSeen  int
}

// BuildPropertySummaries derives one summary per distinct listing id, in
// first-encountered dataset order. It reads raw records directly and
// mirrors the normalizer's defaulting rules without depending on it.
func BuildPropertySummaries(raws []map[string]any) []domain.PropertySummary {
	byID := make(map[string]*listingAccum)
	var order []string

	for _, raw := range raws {
		if raw == nil {
			continue
		}
		id := stringValue(raw["listingMapId"], "")
		if id == "" {
			// a record that names no listing cannot anchor a property
			continue
		}
		acc, ok := byID[id]
		if !ok {
			acc = &listingAccum{
				id:        id,
				name:      stringValue(raw["listingName"], ""),
				catCounts: map[string]int{},
				catRank:   map[string]int{},
			}
			byID[id] = acc
			order = append(order, id)
		}
		acc.observe(raw)
	}

	out := make([]domain.PropertySummary, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id].summary())
	}
	return out
}

// SummarizeProperty returns the summary for a single listing id, or
// ErrNotFound when the id never appears in the dataset.
func SummarizeProperty(raws []map[string]any, id string) (domain.PropertySummary, error) {
	for _, p := range BuildPropertySummaries(raws) {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.PropertySummary{}, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
}

func (a *listingAccum) observe(raw map[string]any) {
	a.reviewCount++

	score, ok := raw["score"].(map[string]any)
	if !ok {
		return
	}
	if g, ok := numValue(score["general"]); ok {
		a.ratingSum += g
		a.ratingCount++
		if a.scoreSeen == 0 {
			a.firstScore = g
		}
		a.lastScore = g
		a.scoreSeen++
	}

	// Category presence counts, not magnitudes. Ties later break on the
	// first-seen rank; new names within one record are ranked in sorted
	// order since JSON object order is lost on decode.
	var fresh []string
	for key, v := range score {
		if key == "general" {
			continue
		}
		if _, ok := numValue(v); !ok {
			continue
		}
		a.catCounts[key]++
		if _, seen := a.catRank[key]; !seen {
			fresh = append(fresh, key)
		}
	}
	sort.Strings(fresh)
	for _, key := range fresh {
		a.catRank[key] = a.nextRank
		a.nextRank++
	}
}

func (a *listingAccum) summary() domain.PropertySummary {
	avg := 0.0
	if a.ratingCount > 0 {
		avg = math.Round(a.ratingSum/float64(a.ratingCount)*10) / 10
	}

	top := "N/A"
	best := 0
	for key, n := range a.catCounts {
		switch {
		case n > best:
			top, best = key, n
		case n == best && top != "N/A" && a.catRank[key] < a.catRank[top]:
			top = key
		}
	}

	trend := domain.TrendStable
	if a.scoreSeen >= 2 {
		switch d := a.lastScore - a.firstScore; {
		case d > 1:
			trend = domain.TrendUp
		case d < -1:
			trend = domain.TrendDown
		}
	}

	return domain.PropertySummary{
		ID:            a.id,
		Name:          a.name,
		City:          cityFor(a.name),
		Thumbnail:     thumbnailFor(a.id),
		AverageRating: avg,
		ReviewCount:   a.reviewCount,
		TopCategory:   top,
		Trending:      trend,
	}
}

func cityFor(name string) string {
	for _, e := range cityTable {
		if strings.Contains(name, e.Needle) {
			return e.City
		}
	}
	return "Unknown"
}

// thumbnailFor derives a stable placeholder image keyed by the last
// character of the listing id.
func thumbnailFor(id string) string {
	seed := id
	if r := []rune(id); len(r) > 0 {
		seed = string(r[len(r)-1])
	}
	return fmt.Sprintf("https://picsum.photos/seed/prop%s/400/300", seed)
}
