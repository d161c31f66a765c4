package models

// TagColor is the display color reported for every tag. The original data
// model never stored a per-tag color.
const TagColor = "#E26C2D"

// Tag labels recipes; Slug is the filter key used by the recipe listing.
type Tag struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;index"`
	Slug string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
}
