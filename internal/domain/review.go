package domain

// ReviewType says who wrote the review about whom.
type ReviewType string

const (
	TypeHostToGuest ReviewType = "host-to-guest"
	TypeGuestToHost ReviewType = "guest-to-host"
	TypeUnknown     ReviewType = "unknown"
)

// ReviewStatus is the moderation state carried over from the source.
type ReviewStatus string

const (
	StatusPublished ReviewStatus = "published"
	// StatusPending is part of the dashboard contract; no Hostaway status
	// code currently maps to it.
	StatusPending ReviewStatus = "pending"
	StatusDraft   ReviewStatus = "draft"
	StatusDeleted ReviewStatus = "deleted"
	StatusUnknown ReviewStatus = "unknown"
)

const (
	SourceHostaway = "hostaway"
	SourceGoogle   = "google"
	SourceAll      = "all"
)

// Review is the canonical, source-agnostic review shape served to the
// dashboard. Raw keeps the untouched source record for traceability.
type Review struct {
	ID          string             `json:"id"`
	ListingID   string             `json:"listingId"`
	ListingName string             `json:"listingName"`
	Reviewer    string             `json:"reviewer"`
	Type        ReviewType         `json:"type"`
	Status      ReviewStatus       `json:"status"`
	Rating      float64            `json:"rating"`
	Categories  map[string]float64 `json:"categories"`
	Text        string             `json:"text"`
	SubmittedAt string             `json:"submittedAt"`
	Channel     string             `json:"channel"`
	Approved    bool               `json:"approved"`
	Source      string             `json:"source"`
	Raw         map[string]any     `json:"raw"`
}

type ReviewsMeta struct {
	Total  int    `json:"total"`
	Source string `json:"source"`
}

// ReviewsResponse is the envelope every review listing returns.
type ReviewsResponse struct {
	Reviews []Review    `json:"reviews"`
	Meta    ReviewsMeta `json:"meta"`
}

// BulkResult summarizes a bulk approval run. TotalProcessed always equals
// the number of ids submitted, regardless of per-item failures.
type BulkResult struct {
	Updated        int `json:"updated"`
	Failed         int `json:"failed"`
	TotalProcessed int `json:"totalProcessed"`
}
