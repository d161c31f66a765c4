package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram-project/backend/models"
)

type Database struct {
	userRepo       *UserRepo
	recipeRepo     *RecipeRepo
	ingredientRepo *IngredientRepo
	tagRepo        *TagRepo
	membershipRepo *MembershipRepo
	cartRepo       *CartRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:       NewUserRepo(db),
		recipeRepo:     NewRecipeRepo(db),
		ingredientRepo: NewIngredientRepo(db),
		tagRepo:        NewTagRepo(db),
		membershipRepo: NewMembershipRepo(db),
		cartRepo:       NewCartRepo(db),
	}
}

// Open connects to the store named by databaseURL and returns the repository
// aggregate over it. URLs with a postgres scheme get the postgres driver;
// anything else is treated as a sqlite file path. Both stores expose the
// identical repository surface.
func Open(databaseURL string, gormLogger logger.Interface) (Database, *gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		})
	} else {
		if databaseURL == "" {
			databaseURL = "foodgram.db"
		}
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return Database{}, nil, err
	}

	return New(db), db, nil
}

// AutoMigrate creates or updates the schema for every entity and membership
// relation, including the composite unique indexes on membership pairs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Subscription{},
		&models.FavouriteRecipe{},
		&models.ShoppingCartItem{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) RecipeRepo() *RecipeRepo {
	return d.recipeRepo
}

func (d Database) IngredientRepo() *IngredientRepo {
	return d.ingredientRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) MembershipRepo() *MembershipRepo {
	return d.membershipRepo
}

func (d Database) CartRepo() *CartRepo {
	return d.cartRepo
}
