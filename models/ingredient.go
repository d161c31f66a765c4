package models

// Ingredient is immutable reference data shared by all recipes.
type Ingredient struct {
	ID              uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" db:"name" gorm:"type:text;not null;index"`
	MeasurementUnit string `json:"measurement_unit" db:"measurement_unit" gorm:"type:text;not null"`
}
