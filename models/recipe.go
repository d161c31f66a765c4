package models

// Recipe is a published recipe. Ingredients carries the join rows with
// per-recipe amounts; Tags is the many-to-many tag set.
type Recipe struct {
	ID          uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" db:"name" gorm:"type:text;not null;index"`
	Image       []byte `json:"-" db:"image" gorm:"type:bytes"`
	CookingTime int    `json:"cooking_time" db:"cooking_time" gorm:"not null"`
	Text        string `json:"text" db:"text" gorm:"type:text;not null"`
	AuthorID    uint   `json:"author_id" db:"author_id" gorm:"not null;index"`

	Author      User               `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;"`
}
