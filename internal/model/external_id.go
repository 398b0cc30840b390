package model

// ExternalID maps a content entry to its identifier in an external catalog
// system (an id-type such as "shikimori" or "kinopoisk" plus the value).
// A given external id can only be claimed once per id-type; rows are removed
// together with their parent content.
type ExternalID struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	ContentID int64  `gorm:"column:content_id;index;not null" json:"content_id"`
	IDType    string `gorm:"column:id_type;size:50;uniqueIndex:unique_external_id_per_type;not null" json:"id_type"`
	Value     string `gorm:"column:external_id;size:100;uniqueIndex:unique_external_id_per_type;not null" json:"external_id"`
}

// TableName returns the table name for ExternalID
func (ExternalID) TableName() string {
	return "content_ids"
}
