package database

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram-project/backend/models"
)

func openTestDB(t *testing.T) Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func createUser(t *testing.T, d Database, email, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "irrelevant",
	}
	if err := d.UserRepo().Add(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTag(t *testing.T, d Database, name, slug string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name, Slug: slug}
	if err := d.TagRepo().Add(tag); err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	return tag
}

func createIngredient(t *testing.T, d Database, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := d.IngredientRepo().Add(ingredient); err != nil {
		t.Fatalf("failed to create ingredient: %v", err)
	}
	return ingredient
}

func createRecipe(t *testing.T, d Database, authorID uint, name string, tagIDs []uint, ingredients []models.RecipeIngredient) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:        name,
		Text:        "prepare and serve",
		CookingTime: 20,
		AuthorID:    authorID,
	}
	if err := d.RecipeRepo().Create(recipe, ingredients, tagIDs); err != nil {
		t.Fatalf("failed to create recipe %q: %v", name, err)
	}
	return recipe
}
