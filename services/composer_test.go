package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/models"
)

func openTestDatabase(t *testing.T) (database.Database, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database.New(db), db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "irrelevant",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedRecipe(t *testing.T, db *gorm.DB, authorID uint, name string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:        name,
		CookingTime: 30,
		Text:        "stir and simmer",
		AuthorID:    authorID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return recipe
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}
	return ingredient
}

func TestComposeRecipeFlags(t *testing.T) {
	repos, db := openTestDatabase(t)

	author := seedUser(t, db, "author@example.com", "author")
	viewer := seedUser(t, db, "viewer@example.com", "viewer")
	recipe := seedRecipe(t, db, author.ID, "Borscht")

	flour := seedIngredient(t, db, "flour", "kg")
	if err := db.Create(&models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 2}).Error; err != nil {
		t.Fatalf("failed to seed recipe ingredient: %v", err)
	}

	if err := db.Create(&models.Subscription{UserID: viewer.ID, AuthorID: author.ID}).Error; err != nil {
		t.Fatalf("failed to seed subscription: %v", err)
	}
	if err := db.Create(&models.FavouriteRecipe{UserID: viewer.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("failed to seed favourite: %v", err)
	}
	if err := db.Create(&models.ShoppingCartItem{UserID: viewer.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("failed to seed cart item: %v", err)
	}

	composer := NewComposer(NewResolver(repos.MembershipRepo()))

	loaded, err := repos.RecipeRepo().FindByID(recipe.ID)
	if err != nil {
		t.Fatalf("failed to load recipe: %v", err)
	}

	view, err := composer.ComposeRecipe(loaded, viewer)
	if err != nil {
		t.Fatalf("ComposeRecipe failed: %v", err)
	}
	if !view.IsFavorited {
		t.Error("IsFavorited = false for favorited recipe")
	}
	if !view.IsInShoppingCart {
		t.Error("IsInShoppingCart = false for carted recipe")
	}
	if !view.Author.IsSubscribed {
		t.Error("Author.IsSubscribed = false for followed author")
	}
	if len(view.Ingredients) != 1 {
		t.Fatalf("Ingredients count = %d, want 1", len(view.Ingredients))
	}
	if view.Ingredients[0].Amount != 2 || view.Ingredients[0].Name != "flour" || view.Ingredients[0].MeasurementUnit != "kg" {
		t.Errorf("unexpected ingredient view: %+v", view.Ingredients[0])
	}

	anonymousView, err := composer.ComposeRecipe(loaded, nil)
	if err != nil {
		t.Fatalf("ComposeRecipe for anonymous viewer failed: %v", err)
	}
	if anonymousView.IsFavorited || anonymousView.IsInShoppingCart || anonymousView.Author.IsSubscribed {
		t.Error("anonymous viewer must see every relationship flag as false")
	}
}

func TestResolverIsIdempotent(t *testing.T) {
	repos, db := openTestDatabase(t)

	author := seedUser(t, db, "author@example.com", "author")
	viewer := seedUser(t, db, "viewer@example.com", "viewer")
	recipe := seedRecipe(t, db, author.ID, "Pelmeni")

	if err := db.Create(&models.FavouriteRecipe{UserID: viewer.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("failed to seed favourite: %v", err)
	}

	resolver := NewResolver(repos.MembershipRepo())

	first, err := resolver.IsFavorited(viewer, recipe.ID)
	if err != nil {
		t.Fatalf("IsFavorited failed: %v", err)
	}
	second, err := resolver.IsFavorited(viewer, recipe.ID)
	if err != nil {
		t.Fatalf("IsFavorited failed: %v", err)
	}
	if first != second || !first {
		t.Errorf("IsFavorited not idempotent: first=%v second=%v", first, second)
	}
}

func TestComposeSubscriptionTruncatesRecipes(t *testing.T) {
	repos, db := openTestDatabase(t)

	author := seedUser(t, db, "author@example.com", "author")
	for i := 0; i < 5; i++ {
		seedRecipe(t, db, author.ID, fmt.Sprintf("Recipe %d", i+1))
	}

	composer := NewComposer(NewResolver(repos.MembershipRepo()))

	loaded, err := repos.UserRepo().FindByIDWithRecipes(author.ID)
	if err != nil {
		t.Fatalf("failed to load author: %v", err)
	}

	view, err := composer.ComposeSubscription(loaded, nil, 2)
	if err != nil {
		t.Fatalf("ComposeSubscription failed: %v", err)
	}
	if len(view.Recipes) != 2 {
		t.Errorf("Recipes count = %d, want 2", len(view.Recipes))
	}
	if view.RecipesCount != 2 {
		t.Errorf("RecipesCount = %d, want 2 (length of truncated list)", view.RecipesCount)
	}
	if view.Recipes[0].Name != "Recipe 1" || view.Recipes[1].Name != "Recipe 2" {
		t.Errorf("recipes not in id order: %+v", view.Recipes)
	}

	// A limit beyond the author's recipes returns everything
	view, err = composer.ComposeSubscription(loaded, nil, 10)
	if err != nil {
		t.Fatalf("ComposeSubscription failed: %v", err)
	}
	if len(view.Recipes) != 5 || view.RecipesCount != 5 {
		t.Errorf("Recipes = %d, RecipesCount = %d, want 5 and 5", len(view.Recipes), view.RecipesCount)
	}
}
