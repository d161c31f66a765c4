package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/models"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// Search returns ingredients whose name contains the given fragment, in id
// order. An empty fragment matches everything.
func (r *IngredientRepo) Search(name string) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	err := r.db.
		Where("name LIKE ?", "%"+name+"%").
		Order("id").
		Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID, or nil when no such ingredient exists
func (r *IngredientRepo) FindByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Add inserts a new ingredient into the database
func (r *IngredientRepo) Add(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}
