package model

// Studio is a lookup entity attached to content via a join table.
type Studio struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// TableName returns the table name for Studio
func (Studio) TableName() string {
	return "studio"
}
