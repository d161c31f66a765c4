package models

// User represents a registered account. Avatar holds the raw image bytes;
// the API layer exchanges it as a base64 data URI.
type User struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Username     string `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	FirstName    string `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName     string `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Avatar       []byte `json:"-" db:"avatar" gorm:"type:bytes"`

	Recipes []Recipe `json:"recipes,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}
