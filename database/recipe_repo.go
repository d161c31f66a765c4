package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/models"
)

// ErrTagNotFound is returned when a recipe references a tag id that does not
// resolve. The surrounding transaction is rolled back, so no partial tag-set
// replacement ever commits.
var ErrTagNotFound = errors.New("tag not found")

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// RecipeFilter narrows the recipe listing. All set fields combine with
// logical AND. FavoritedBy and InCartOf are viewer ids for the two
// membership filters.
type RecipeFilter struct {
	AuthorID    *uint
	TagSlugs    []string
	FavoritedBy *uint
	InCartOf    *uint
	Offset      int
	Limit       int
}

// filtered builds a fresh query chain for the filter. A new chain per call
// keeps the count and page queries independent.
func (r *RecipeRepo) filtered(f RecipeFilter) *gorm.DB {
	query := r.db.Model(&models.Recipe{})
	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if f.FavoritedBy != nil {
		favourited := r.db.Model(&models.FavouriteRecipe{}).
			Select("recipe_id").
			Where("user_id = ?", *f.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favourited)
	}
	if f.InCartOf != nil {
		inCart := r.db.Model(&models.ShoppingCartItem{}).
			Select("recipe_id").
			Where("user_id = ?", *f.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}
	return query
}

// List returns the total number of recipes matching the filter plus one page
// of matches in id order, with author, tags and ingredient rows preloaded.
func (r *RecipeRepo) List(f RecipeFilter) (int, []*models.Recipe, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var recipes []*models.Recipe
	err := r.filtered(f).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&recipes).Error
	if err != nil {
		return 0, nil, err
	}
	return int(total), recipes, nil
}

// FindByID returns a recipe with its associations preloaded, or nil when no
// such recipe exists
func (r *RecipeRepo) FindByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create inserts the recipe together with its ingredient rows and tag set in
// one transaction. An unresolvable tag id aborts the whole insert with
// ErrTagNotFound.
func (r *RecipeRepo) Create(recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagIDs)
		if err != nil {
			return err
		}

		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		if len(ingredients) > 0 {
			for i := range ingredients {
				ingredients[i].ID = 0
				ingredients[i].RecipeID = recipe.ID
			}
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		if len(tags) > 0 {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update saves the recipe's scalar fields and replaces its ingredient rows
// and tag set, all in one transaction.
func (r *RecipeRepo) Update(recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagIDs)
		if err != nil {
			return err
		}

		err = tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Select("name", "text", "cooking_time", "image").
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			for i := range ingredients {
				ingredients[i].ID = 0
				ingredients[i].RecipeID = recipe.ID
			}
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// resolveTags loads every referenced tag, failing when any id is unknown
func resolveTags(tx *gorm.DB, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}
	for _, id := range tagIDs {
		if !found[id] {
			return nil, ErrTagNotFound
		}
	}
	return tags, nil
}
