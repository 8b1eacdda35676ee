package domain

// Trend compares the last general score against the first, in dataset order.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// PropertySummary is derived from the raw dataset on demand and never persisted.
type PropertySummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	City          string  `json:"city"`
	Thumbnail     string  `json:"thumbnail"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
	TopCategory   string  `json:"topCategory"`
	Trending      Trend   `json:"trending"`
}
