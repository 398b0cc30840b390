package store

import (
	"context"

	"github.com/user/anicatalog-go/internal/model"
)

// OrderKey selects the ordering applied to a content listing.
type OrderKey string

const (
	// OrderDefault leaves ordering to the database (used by search).
	OrderDefault        OrderKey = ""
	OrderReleaseDesc    OrderKey = "release_date DESC"
	OrderUpdatedDesc    OrderKey = "updated_at DESC"
	OrderNextEpisodeAsc OrderKey = "next_episode ASC"
	OrderNextEpisodeDsc OrderKey = "next_episode DESC"
)

// ContentCriteria is the assembled filter predicate for a content query.
// Zero-valued fields are omitted from the predicate entirely, so an empty
// criteria set matches every row.
type ContentCriteria struct {
	Type      model.ContentType
	Status    model.ReleaseStatus
	MinRating *float64
	Year      *int

	// Release-date range on the raw stored epoch value. Either bound may be
	// set alone; both set means an inclusive range.
	ReleasedFrom *int64
	ReleasedTo   *int64

	// TitleQuery matches as a case-sensitive substring against title OR
	// original_title.
	TitleQuery string

	// HasNextEpisode restricts to rows with a non-null next_episode; the
	// window bounds below apply inclusively to the raw stored value.
	HasNextEpisode  bool
	NextEpisodeFrom *int64
	NextEpisodeTo   *int64
}

// Store defines the interface for catalog read operations
type Store interface {
	// Genre operations
	ListGenres(ctx context.Context) ([]*model.Genre, error)

	// Content operations. ListContent attaches genres, studios, external ids
	// and episodes to every returned row; a limit <= 0 disables pagination.
	ListContent(ctx context.Context, crit ContentCriteria, order OrderKey, limit, offset int) ([]*model.Content, error)
	GetContentByID(ctx context.Context, id int64) (*model.Content, error)
	CountContent(ctx context.Context, crit ContentCriteria) (int64, error)
	ListContentIDs(ctx context.Context) ([]int64, error)

	// Health check
	Ping(ctx context.Context) error
	Close() error
}
