package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

/********** category alias registry (single source of truth) **********/

// Known Hostaway score categories. Every entry maps to itself today; the
// table documents the expected names and gives renames a single home.
var categoryAliases = map[string]string{
	"cleanliness":         "cleanliness",
	"communication":       "communication",
	"check_in":            "check_in",
	"accuracy":            "accuracy",
	"location":            "location",
	"value":               "value",
	"respect_house_rules": "respect_house_rules",
}

// Hostaway reviewerType -> canonical review type. Matched case-insensitively.
var reviewerTypeTable = map[string]domain.ReviewType{
	"host":  domain.TypeHostToGuest,
	"guest": domain.TypeGuestToHost,
}

// Hostaway status code -> canonical status. Matched exactly; Hostaway emits
// these upper-cased.
var statusTable = map[string]domain.ReviewStatus{
	"VISIBLE": domain.StatusPublished,
	"HIDDEN":  domain.StatusDeleted,
	"DRAFT":   domain.StatusDraft,
}

/********** tiny helpers **********/

// stringValue renders a raw JSON value as a string, substituting def when
// the value is absent. Explicit empty strings pass through unchanged.
func stringValue(v any, def string) string {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// numValue accepts only number-typed values; strings that look numeric are
// deliberately rejected, matching the source contract.
func numValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// submittedAt re-emits the raw creation time as ISO-8601 with millisecond
// precision. Absent or unparseable input falls back to the current instant
// rather than failing the record.
func submittedAt(v any) string {
	s := stringValue(v, "")
	if s != "" {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC().Format(isoMillis)
			}
		}
	}
	return time.Now().UTC().Format(isoMillis)
}

func reviewerName(v any) string {
	reviewer, ok := v.(map[string]any)
	if !ok {
		return "Unknown Reviewer"
	}
	if name := stringValue(reviewer["name"], ""); name != "" {
		return name
	}
	return "Unknown Reviewer"
}

func reviewType(v any) domain.ReviewType {
	s := stringValue(v, "")
	if s == "" {
		return domain.TypeUnknown
	}
	if t, ok := reviewerTypeTable[strings.ToLower(s)]; ok {
		return t
	}
	return domain.TypeUnknown
}

func reviewStatus(v any) domain.ReviewStatus {
	s := stringValue(v, "")
	if st, ok := statusTable[s]; ok {
		return st
	}
	return domain.StatusUnknown
}

// scoreFields splits the raw score object into the general rating and the
// per-category map. Non-numeric values are dropped; unknown category names
// are preserved verbatim.
func scoreFields(v any) (float64, map[string]float64) {
	categories := map[string]float64{}
	score, ok := v.(map[string]any)
	if !ok {
		return 0, categories
	}
	rating := 0.0
	if g, ok := numValue(score["general"]); ok {
		rating = g
	}
	for key, sv := range score {
		if key == "general" {
			continue
		}
		n, ok := numValue(sv)
		if !ok {
			continue
		}
		if alias, known := categoryAliases[key]; known {
			key = alias
		}
		categories[key] = n
	}
	return rating, categories
}

/********** normalizer **********/

// NormalizeReview maps one raw Hostaway record onto the canonical Review.
// It is total for any non-nil record: missing fields default, they never
// fail. Only a nil record is an error.
func NormalizeReview(raw map[string]any) (domain.Review, error) {
	if raw == nil {
		return domain.Review{}, domain.ErrNilReview
	}
	rv := domain.Review{
		ID:          stringValue(raw["id"], ""),
		ListingID:   stringValue(raw["listingMapId"], ""),
		ListingName: stringValue(raw["listingName"], ""),
		Reviewer:    reviewerName(raw["reviewer"]),
		Type:        reviewType(raw["reviewerType"]),
		Status:      reviewStatus(raw["status"]),
		Text:        stringValue(raw["comment"], ""),
		SubmittedAt: submittedAt(raw["createdTime"]),
		Channel:     stringValue(raw["channel"], domain.SourceHostaway),
		// approval is granted through the dashboard; a record carries the
		// flag only after an approval has been persisted to it
		Approved: raw["approved"] == true,
		Source:   domain.SourceHostaway,
		Raw:      raw,
	}
	rv.Rating, rv.Categories = scoreFields(raw["score"])
	return rv, nil
}

// NormalizeReviews normalizes a whole raw dataset, filtering out nil entries
// and preserving order. A nil or empty input yields an empty slice — unlike
// NormalizeReview, it never errors.
func NormalizeReviews(raws []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		rv, err := NormalizeReview(raw)
		if err != nil {
			continue
		}
		out = append(out, rv)
	}
	return out
}
