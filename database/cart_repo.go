package database

import (
	"gorm.io/gorm"
)

// CartLine is one aggregated shopping-cart row: the total amount of a single
// ingredient across every recipe in the cart.
type CartLine struct {
	IngredientID    uint   `json:"ingredient_id"`
	Name            string `json:"name"`
	Amount          int    `json:"amount"`
	MeasurementUnit string `json:"measurement_unit"`
}

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db}
}

// Aggregate sums ingredient amounts across every recipe in the user's
// shopping cart, grouped by ingredient id, ordered by ingredient id. The
// user id is bound as a query parameter; an empty cart yields an empty
// slice.
func (r *CartRepo) Aggregate(userID uint) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Raw(`
		SELECT i.id AS ingredient_id, i.name AS name, SUM(ri.amount) AS amount, i.measurement_unit AS measurement_unit
		FROM shopping_cart sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = ?
		GROUP BY i.id, i.name, i.measurement_unit
		ORDER BY i.id`, userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
