package models

// RecipeIngredient links a recipe to an ingredient with an amount. A recipe
// may carry the same ingredient more than once; the cart aggregation sums
// duplicates rather than deduplicating them.
type RecipeIngredient struct {
	ID           uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID     uint `json:"recipe_id" db:"recipe_id" gorm:"not null;index"`
	IngredientID uint `json:"ingredient_id" db:"ingredient_id" gorm:"not null;index"`
	Amount       int  `json:"amount" db:"amount" gorm:"not null"`

	Ingredient Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;references:ID"`
}
