package catalog

import (
	"fmt"

	"github.com/user/anicatalog-go/internal/config"
	"github.com/user/anicatalog-go/internal/model"
	"github.com/user/anicatalog-go/internal/store"
)

// Pagination carries the raw page/limit arguments as the client sent them.
// Zero values mean "not supplied" and fall back to the configured defaults.
type Pagination struct {
	Page  int
	Limit int
}

// Window is a validated limit/offset pair ready for the store.
type Window struct {
	Limit  int
	Offset int
}

// Filter is the optional criteria a client may combine on a listing. Absent
// fields are omitted from the predicate. MinRating is a floor (match >=),
// the date range is inclusive, and Query is a case-sensitive substring
// matched against title or original title.
type Filter struct {
	Type         model.ContentType
	Status       model.ReleaseStatus
	MinRating    *float64
	Year         *int
	ReleasedFrom *int64
	ReleasedTo   *int64
	Query        string
}

// Criteria assembles the store predicate from the set fields.
func (f Filter) Criteria() store.ContentCriteria {
	return store.ContentCriteria{
		Type:         f.Type,
		Status:       f.Status,
		MinRating:    f.MinRating,
		Year:         f.Year,
		ReleasedFrom: f.ReleasedFrom,
		ReleasedTo:   f.ReleasedTo,
		TitleQuery:   f.Query,
	}
}

// Normalizer converts raw pagination input into a bounded window according
// to the configured policy.
type Normalizer struct {
	defaultLimit int
	maxLimit     int
	strict       bool
	clampPage    bool
}

// NewNormalizer creates a normalizer from the query configuration
func NewNormalizer(cfg config.QueryConfig) Normalizer {
	return Normalizer{
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
		strict:       cfg.StrictPagination,
		clampPage:    cfg.ClampPage,
	}
}

// Normalize validates a page/limit pair and computes the window.
//
// The limit is clamped to [1, maxLimit]; values outside the range are
// corrected silently unless strict pagination is configured, in which case
// they are rejected. The page is NOT clamped by default: a page <= 0 yields
// a zero or negative offset, which the store passes through unchanged. This
// is long-standing defined behavior, opt into clamping with ClampPage.
func (n Normalizer) Normalize(p Pagination) (Window, error) {
	page := p.Page
	if page == 0 {
		page = 1
	}
	if n.clampPage && page < 1 {
		page = 1
	}

	limit := p.Limit
	if limit == 0 {
		limit = n.defaultLimit
	}
	if n.strict && (limit < 1 || limit > n.maxLimit) {
		return Window{}, fmt.Errorf("limit %d out of range [1, %d]", limit, n.maxLimit)
	}
	limit = clamp(limit, 1, n.maxLimit)

	return Window{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, nil
}

// NormalizeOffset validates a limit/offset pair for the schedule listings,
// which paginate by raw offset rather than by page. The offset is clamped
// to >= 0, the limit to [1, maxLimit].
func (n Normalizer) NormalizeOffset(limit, offset int) (Window, error) {
	if limit == 0 {
		limit = n.defaultLimit
	}
	if n.strict && (limit < 1 || limit > n.maxLimit) {
		return Window{}, fmt.Errorf("limit %d out of range [1, %d]", limit, n.maxLimit)
	}
	return Window{
		Limit:  clamp(limit, 1, n.maxLimit),
		Offset: max(offset, 0),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
