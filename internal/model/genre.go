package model

// Genre is a lookup entity attached to content via a join table.
type Genre struct {
	ID      int64   `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"uniqueIndex;size:100;not null" json:"name"`
	EnName  string  `gorm:"column:en_name;uniqueIndex;size:100;not null" json:"en_name"`
	Summary *string `gorm:"type:text" json:"summary"`
}

// TableName returns the table name for Genre
func (Genre) TableName() string {
	return "genre"
}
