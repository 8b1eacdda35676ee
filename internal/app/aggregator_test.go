package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flex_reviews/internal/domain"
)

func rawReview(listingID, name string, score map[string]any) map[string]any {
	return map[string]any{
		"id":           "r",
		"listingMapId": listingID,
		"listingName":  name,
		"score":        score,
	}
}

func TestBuildPropertySummaries_GroupsByListingInFirstSeenOrder(t *testing.T) {
	raws := []map[string]any{
		rawReview("200", "Cozy Studio in Camden Town", map[string]any{"general": 7.0}),
		rawReview("100", "2B N1 A - 29 Shoreditch Heights", map[string]any{"general": 9.0}),
		rawReview("200", "Cozy Studio in Camden Town", nil),
		nil,
		{"listingName": "No listing id on this one"},
	}

	out := BuildPropertySummaries(raws)
	require.Len(t, out, 2)
	assert.Equal(t, "200", out[0].ID)
	assert.Equal(t, "100", out[1].ID)
	assert.Equal(t, 2, out[0].ReviewCount)
	assert.Equal(t, 1, out[1].ReviewCount)
}

func TestBuildPropertySummaries_CityTable(t *testing.T) {
	cases := map[string]string{
		"2B N1 A - 29 Shoreditch Heights":    "London",
		"Luxury Apartment in Central London": "London",
		"Cozy Studio in Camden Town":         "London",
		"Victorian Townhouse in Manchester":  "Manchester",
		"Old Town Flat in Edinburgh":         "Edinburgh",
		"Beach House in Brighton":            "Unknown",
	}
	for name, city := range cases {
		out := BuildPropertySummaries([]map[string]any{rawReview("1", name, nil)})
		require.Len(t, out, 1)
		assert.Equal(t, city, out[0].City, "name=%q", name)
	}
}

func TestBuildPropertySummaries_AverageRating(t *testing.T) {
	out := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"general": 9.5}),
		rawReview("1", "X", map[string]any{"general": 10.0}),
		rawReview("1", "X", map[string]any{"general": "8"}), // non-numeric, excluded
		rawReview("1", "X", nil),                            // no score, excluded
	})
	require.Len(t, out, 1)
	assert.Equal(t, 9.8, out[0].AverageRating) // mean of 9.5 and 10, one decimal
	assert.Equal(t, 4, out[0].ReviewCount)     // count includes unusable scores
}

func TestBuildPropertySummaries_Trending(t *testing.T) {
	down := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"general": 9.5}),
		rawReview("1", "X", map[string]any{"general": 7.0}),
	})
	require.Len(t, down, 1)
	assert.Equal(t, domain.TrendDown, down[0].Trending)

	up := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"general": 7.0}),
		rawReview("1", "X", map[string]any{"general": 9.5}),
	})
	assert.Equal(t, domain.TrendUp, up[0].Trending)

	stable := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"general": 8.0}),
		rawReview("1", "X", map[string]any{"general": 8.9}),
	})
	assert.Equal(t, domain.TrendStable, stable[0].Trending)

	// intermediate scores are ignored, only first vs last matters
	dip := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"general": 8.0}),
		rawReview("1", "X", map[string]any{"general": 2.0}),
		rawReview("1", "X", map[string]any{"general": 8.5}),
	})
	assert.Equal(t, domain.TrendStable, dip[0].Trending)
}

func TestBuildPropertySummaries_NoValidScores(t *testing.T) {
	out := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", nil),
		rawReview("1", "X", map[string]any{"general": "n/a"}),
	})
	require.Len(t, out, 1)
	assert.Zero(t, out[0].AverageRating)
	assert.Equal(t, domain.TrendStable, out[0].Trending)
	assert.Equal(t, "N/A", out[0].TopCategory)
}

func TestBuildPropertySummaries_TopCategory(t *testing.T) {
	out := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"general": 9.0, "cleanliness": 10.0}),
		rawReview("1", "X", map[string]any{"communication": 8.0, "cleanliness": 9.0}),
		rawReview("1", "X", map[string]any{"vibe": "great"}), // non-numeric, no presence
	})
	require.Len(t, out, 1)
	assert.Equal(t, "cleanliness", out[0].TopCategory)

	// tie broken by first-encountered category
	tie := BuildPropertySummaries([]map[string]any{
		rawReview("1", "X", map[string]any{"location": 10.0}),
		rawReview("1", "X", map[string]any{"value": 10.0}),
	})
	assert.Equal(t, "location", tie[0].TopCategory)
}

func TestBuildPropertySummaries_Thumbnail(t *testing.T) {
	out := BuildPropertySummaries([]map[string]any{rawReview("394872", "X", nil)})
	require.Len(t, out, 1)
	assert.Equal(t, "https://picsum.photos/seed/prop2/400/300", out[0].Thumbnail)
}

func TestSummarizeProperty(t *testing.T) {
	raws := []map[string]any{rawReview("100", "X", map[string]any{"general": 9.0})}

	p, err := SummarizeProperty(raws, "100")
	require.NoError(t, err)
	assert.Equal(t, "100", p.ID)

	_, err = SummarizeProperty(raws, "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
