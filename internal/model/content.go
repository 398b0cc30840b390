package model

import (
	"time"
)

// ContentType defines the kind of catalog entry
type ContentType string

const (
	TypeMovie         ContentType = "movie"
	TypeSeries        ContentType = "series"
	TypeONA           ContentType = "ona"
	TypeOVA           ContentType = "ova"
	TypeSpecial       ContentType = "special"
	TypeSeriesSpecial ContentType = "series_special"
)

// ParseContentType maps a wire value to a ContentType.
// Returns false for anything outside the enum domain.
func ParseContentType(s string) (ContentType, bool) {
	switch ContentType(s) {
	case TypeMovie, TypeSeries, TypeONA, TypeOVA, TypeSpecial, TypeSeriesSpecial:
		return ContentType(s), true
	}
	return "", false
}

// ReleaseStatus defines the release lifecycle state of a content entry.
// "ongoing" is the stored value for in-production titles.
type ReleaseStatus string

const (
	StatusAnnounced    ReleaseStatus = "announced"
	StatusInProduction ReleaseStatus = "ongoing"
	StatusReleased     ReleaseStatus = "released"
	StatusPostponed    ReleaseStatus = "postponed"
	StatusCanceled     ReleaseStatus = "canceled"
)

// ParseReleaseStatus maps a wire value to a ReleaseStatus.
func ParseReleaseStatus(s string) (ReleaseStatus, bool) {
	switch ReleaseStatus(s) {
	case StatusAnnounced, StatusInProduction, StatusReleased, StatusPostponed, StatusCanceled:
		return ReleaseStatus(s), true
	}
	return "", false
}

// Content represents a catalog title: a movie, a series (acting as a season),
// or one of the related variants. ReleaseDate and NextEpisode are epoch
// values whose unit is not guaranteed; see the schedule package for the
// normalization rules.
type Content struct {
	ID            int64         `gorm:"column:content_id;primaryKey" json:"content_id"`
	Title         string        `gorm:"uniqueIndex;size:255;not null" json:"title"`
	OriginalTitle string        `gorm:"column:original_title;uniqueIndex;size:255;not null" json:"original_title"`
	ReleaseDate   *int64        `gorm:"column:release_date" json:"release_date"`
	NextEpisode   *int64        `gorm:"column:next_episode" json:"next_episode"`
	Year          *int          `json:"year"`
	ReleaseStatus ReleaseStatus `gorm:"column:release_status;size:20;index" json:"release_status"`
	ContentType   ContentType   `gorm:"column:content_type;size:20;index" json:"content_type"`
	SeasonNumber  *int          `gorm:"column:season_number" json:"season_number"`
	AgeRating     int           `gorm:"column:age_rating" json:"age_rating"`
	MPAARating    string        `gorm:"column:mpaa_rating;size:20" json:"mpaa_rating,omitempty"`
	Rating        *float64      `json:"rating"`
	Summary       *string       `gorm:"type:text" json:"summary"`
	PosterURL     string        `gorm:"column:poster_url;size:500" json:"poster_url,omitempty"`
	Img           string        `gorm:"size:500" json:"img,omitempty"`
	TrailerURL    string        `gorm:"column:trailer_url;size:500" json:"trailer_url,omitempty"`
	Country       string        `gorm:"size:100" json:"country"`
	PlayerURL     string        `gorm:"column:player_url;size:500" json:"player_url,omitempty"`
	// SeriesID points at the parent series for seasons and series specials.
	// Advisory only: the schema carries no FK constraint for it.
	SeriesID  *int64    `gorm:"column:series_id" json:"series_id"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Genres      []*Genre      `gorm:"many2many:content_genres" json:"genres,omitempty"`
	Studios     []*Studio     `gorm:"many2many:content_studios" json:"studios,omitempty"`
	Episodes    []*Episode    `gorm:"foreignKey:SeasonID" json:"episodes,omitempty"`
	ExternalIDs []*ExternalID `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"content_ids,omitempty"`
}

// TableName returns the table name for Content
func (Content) TableName() string {
	return "content"
}
