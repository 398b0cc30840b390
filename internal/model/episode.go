package model

import (
	"time"
)

// Episode represents a single installment of a content entry acting as its
// season. Release date and time-of-day are stored separately; ReleaseTime is
// a free-form "HH:MM" string, never merged into ReleaseDate.
type Episode struct {
	ID            int64      `gorm:"column:episode_id;primaryKey" json:"episode_id"`
	SeasonID      int64      `gorm:"column:season_id;index;not null" json:"season_id"`
	EpisodeNumber int        `gorm:"column:episode_number;not null" json:"episode_number"`
	Title         string     `gorm:"size:255" json:"title,omitempty"`
	Summary       *string    `gorm:"type:text" json:"summary"`
	Duration      *int       `json:"duration"`
	ReleaseDate   *time.Time `gorm:"column:release_date;type:date" json:"release_date"`
	ReleaseTime   string     `gorm:"column:release_time;size:10" json:"release_time,omitempty"`
	// Episode statuses are free-form and independent from Content's enum.
	ReleaseStatus string `gorm:"column:release_status;size:50" json:"release_status,omitempty"`
	PlayerURL     string `gorm:"column:player_url;size:500" json:"player_url,omitempty"`
}

// TableName returns the table name for Episode
func (Episode) TableName() string {
	return "episode"
}
