package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/user/anicatalog-go/internal/config"
	"github.com/user/anicatalog-go/internal/model"
	"github.com/user/anicatalog-go/internal/schedule"
	"github.com/user/anicatalog-go/internal/store"
)

// Service resolves catalog queries and schedule views over the store. It
// holds no mutable state between calls; every operation is an independent
// read.
type Service struct {
	store store.Store
	norm  Normalizer
	now   func() time.Time
}

// NewService creates a catalog service over the given store
func NewService(st store.Store, cfg config.QueryConfig) *Service {
	return &Service{
		store: st,
		norm:  NewNormalizer(cfg),
		now:   time.Now,
	}
}

// Genres returns all genres, unfiltered and unpaginated
func (s *Service) Genres(ctx context.Context) ([]*model.Genre, error) {
	return s.store.ListGenres(ctx)
}

// Movies lists movie entries with an optional rating floor, ordered by
// release date descending
func (s *Service) Movies(ctx context.Context, p Pagination, minRating *float64) ([]*model.Content, error) {
	return s.listByType(ctx, p, model.TypeMovie, minRating)
}

// ContentByType lists entries of the given type with an optional rating
// floor, ordered by release date descending
func (s *Service) ContentByType(ctx context.Context, p Pagination, typ model.ContentType, minRating *float64) ([]*model.Content, error) {
	return s.listByType(ctx, p, typ, minRating)
}

func (s *Service) listByType(ctx context.Context, p Pagination, typ model.ContentType, minRating *float64) ([]*model.Content, error) {
	w, err := s.norm.Normalize(p)
	if err != nil {
		return nil, err
	}
	crit := Filter{Type: typ, MinRating: minRating}.Criteria()
	return s.store.ListContent(ctx, crit, store.OrderReleaseDesc, w.Limit, w.Offset)
}

// ContentByID looks up a single entry. A missing id yields (nil, nil), not
// an error.
func (s *Service) ContentByID(ctx context.Context, id int64) (*model.Content, error) {
	return s.store.GetContentByID(ctx, id)
}

// RecentlyUpdated lists entries by last mutation time, newest first, with an
// optional type filter. This is the one listing not ordered by release date.
func (s *Service) RecentlyUpdated(ctx context.Context, p Pagination, typ model.ContentType) ([]*model.Content, error) {
	w, err := s.norm.Normalize(p)
	if err != nil {
		return nil, err
	}
	crit := Filter{Type: typ}.Criteria()
	return s.store.ListContent(ctx, crit, store.OrderUpdatedDesc, w.Limit, w.Offset)
}

// Search matches the query as a case-sensitive substring against the title
// or the original title. No explicit ordering is applied.
func (s *Service) Search(ctx context.Context, p Pagination, query string) ([]*model.Content, error) {
	w, err := s.norm.Normalize(p)
	if err != nil {
		return nil, err
	}
	crit := Filter{Query: query}.Criteria()
	return s.store.ListContent(ctx, crit, store.OrderDefault, w.Limit, w.Offset)
}

// Filtered is the general listing: any combination of year, rating floor,
// type, release-date range and release status, ordered by release date
// descending.
func (s *Service) Filtered(ctx context.Context, p Pagination, f Filter) ([]*model.Content, error) {
	w, err := s.norm.Normalize(p)
	if err != nil {
		return nil, err
	}
	return s.store.ListContent(ctx, f.Criteria(), store.OrderReleaseDesc, w.Limit, w.Offset)
}

// CountByType returns the number of entries of the given type
func (s *Service) CountByType(ctx context.Context, typ model.ContentType) (int64, error) {
	return s.store.CountContent(ctx, store.ContentCriteria{Type: typ})
}

// AllContentIDs returns every content identifier, unpaginated and without
// relation hydration
func (s *Service) AllContentIDs(ctx context.Context) ([]int64, error) {
	return s.store.ListContentIDs(ctx)
}

// ScheduleOptions selects the variable parts of a schedule listing. The
// fixed parts — eligibility (in production, non-null next episode), unit
// normalization and timezone adjustment — apply to every variant.
type ScheduleOptions struct {
	Type           model.ContentType
	Ascending      bool
	Limit          int
	Offset         int
	Weekly         bool
	TimezoneOffset int
	// Unpaginated disables limit/offset entirely (the weekly view).
	Unpaginated bool
}

// UpcomingEpisodes lists in-production entries that have a next episode
// scheduled, ordered by air time
func (s *Service) UpcomingEpisodes(ctx context.Context, opts ScheduleOptions) ([]*model.Content, error) {
	opts.Weekly = false
	return s.scheduled(ctx, opts)
}

// WeeklySchedule lists this week's airings, earliest first, adjusted to the
// given timezone offset
func (s *Service) WeeklySchedule(ctx context.Context, timezoneOffset int) ([]*model.Content, error) {
	return s.scheduled(ctx, ScheduleOptions{
		Weekly:         true,
		Ascending:      true,
		Unpaginated:    true,
		TimezoneOffset: timezoneOffset,
	})
}

// ScheduledContent is the general schedule listing: optional type filter,
// optional weekly windowing, explicit pagination
func (s *Service) ScheduledContent(ctx context.Context, opts ScheduleOptions) ([]*model.Content, error) {
	return s.scheduled(ctx, opts)
}

// scheduled is the single shared routine behind the three schedule
// operations. Window filtering happens on the raw stored value; the
// normalization and timezone adjustment happen after the rows come back.
func (s *Service) scheduled(ctx context.Context, opts ScheduleOptions) ([]*model.Content, error) {
	crit := store.ContentCriteria{
		Type:           opts.Type,
		Status:         model.StatusInProduction,
		HasNextEpisode: true,
	}

	if opts.Weekly {
		start, end := schedule.WeekWindow(s.now())
		crit.NextEpisodeFrom = &start
		crit.NextEpisodeTo = &end
		log.Debug().
			Int64("windowStart", start).
			Int64("windowEnd", end).
			Msg("Applying weekly schedule window")
	}

	order := store.OrderNextEpisodeDsc
	if opts.Ascending {
		order = store.OrderNextEpisodeAsc
	}

	var w Window
	if !opts.Unpaginated {
		var err error
		w, err = s.norm.NormalizeOffset(opts.Limit, opts.Offset)
		if err != nil {
			return nil, err
		}
	}

	contents, err := s.store.ListContent(ctx, crit, order, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}

	schedule.Adjust(contents, opts.TimezoneOffset)
	return contents, nil
}
