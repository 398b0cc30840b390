package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/user/anicatalog-go/internal/catalog"
	"github.com/user/anicatalog-go/internal/model"
)

// The handlers are the request-dispatch boundary: they decode and validate
// the typed arguments (including enum membership, which the catalog service
// itself never checks) and serialize results back as JSON.

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	errorsTotal.WithLabelValues("bad_request").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf(format, args...)})
}

func serverError(w http.ResponseWriter, err error) {
	errorsTotal.WithLabelValues("query_failed").Inc()
	log.Error().Err(err).Msg("Query failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "operation failed"})
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func optionalFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

func optionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

// pagination reads the page/limit arguments; zero values let the normalizer
// apply its defaults.
func pagination(r *http.Request) (catalog.Pagination, error) {
	page, err := intParam(r, "page", 0)
	if err != nil {
		return catalog.Pagination{}, err
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		return catalog.Pagination{}, err
	}
	return catalog.Pagination{Page: page, Limit: limit}, nil
}

// contentType parses the type argument. required controls whether an absent
// value is an error; an invalid value always is.
func contentType(r *http.Request, required bool) (model.ContentType, error) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		if required {
			return "", fmt.Errorf("type is required")
		}
		return "", nil
	}
	typ, ok := model.ParseContentType(raw)
	if !ok {
		return "", fmt.Errorf("unknown content type %q", raw)
	}
	return typ, nil
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.catalog.Genres(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, genres)
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	p, err := pagination(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	rating, err := optionalFloat(r, "rating")
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.Movies(r.Context(), p, rating)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleContentByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}

	content, err := s.catalog.ContentByID(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	// A missing id serializes as null, mirroring the nullable lookup
	// contract rather than a 404.
	writeJSON(w, content)
}

func (s *Server) handleContentByType(w http.ResponseWriter, r *http.Request) {
	typ, err := contentType(r, true)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	p, err := pagination(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	rating, err := optionalFloat(r, "rating")
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.ContentByType(r.Context(), p, typ, rating)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleRecentlyUpdated(w http.ResponseWriter, r *http.Request) {
	typ, err := contentType(r, false)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	p, err := pagination(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.RecentlyUpdated(r.Context(), p, typ)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		badRequest(w, "q is required")
		return
	}
	p, err := pagination(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.Search(r.Context(), p, query)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleFiltered(w http.ResponseWriter, r *http.Request) {
	p, err := pagination(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	typ, err := contentType(r, false)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	var status model.ReleaseStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := model.ParseReleaseStatus(raw)
		if !ok {
			badRequest(w, "unknown release status %q", raw)
			return
		}
		status = parsed
	}

	rating, err := optionalFloat(r, "rating")
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	year, err := optionalInt(r, "year")
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	from, err := optionalInt64(r, "released_from")
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	to, err := optionalInt64(r, "released_to")
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.Filtered(r.Context(), p, catalog.Filter{
		Type:         typ,
		Status:       status,
		MinRating:    rating,
		Year:         year,
		ReleasedFrom: from,
		ReleasedTo:   to,
	})
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleCountByType(w http.ResponseWriter, r *http.Request) {
	typ, err := contentType(r, true)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	count, err := s.catalog.CountByType(r.Context(), typ)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, map[string]int64{"count": count})
}

func (s *Server) handleContentIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.catalog.AllContentIDs(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, map[string][]int64{"ids": ids})
}

// scheduleOptions reads the arguments shared by the schedule listings.
// Anything other than sort=ASC keeps the descending default.
func scheduleOptions(r *http.Request) (catalog.ScheduleOptions, error) {
	typ, err := contentType(r, false)
	if err != nil {
		return catalog.ScheduleOptions{}, err
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		return catalog.ScheduleOptions{}, err
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		return catalog.ScheduleOptions{}, err
	}
	tz, err := intParam(r, "tz", 0)
	if err != nil {
		return catalog.ScheduleOptions{}, err
	}

	return catalog.ScheduleOptions{
		Type:           typ,
		Ascending:      strings.EqualFold(r.URL.Query().Get("sort"), "ASC"),
		Limit:          limit,
		Offset:         offset,
		TimezoneOffset: tz,
	}, nil
}

func (s *Server) handleUpcomingEpisodes(w http.ResponseWriter, r *http.Request) {
	opts, err := scheduleOptions(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.UpcomingEpisodes(r.Context(), opts)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	tz, err := intParam(r, "tz", 0)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}

	contents, err := s.catalog.WeeklySchedule(r.Context(), tz)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}

func (s *Server) handleScheduledContent(w http.ResponseWriter, r *http.Request) {
	opts, err := scheduleOptions(r)
	if err != nil {
		badRequest(w, "%v", err)
		return
	}
	if raw := r.URL.Query().Get("weekly"); raw != "" {
		weekly, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "weekly must be a boolean")
			return
		}
		opts.Weekly = weekly
	}

	contents, err := s.catalog.ScheduledContent(r.Context(), opts)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, contents)
}
