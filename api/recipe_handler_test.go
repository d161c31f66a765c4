package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/models"
	"github.com/foodgram-project/backend/services"
)

func openTestHandlers(t *testing.T) (*routeHandlers, *gorm.DB) {
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

	auth := services.NewAuth("test-secret", 0)
	return initializeHandlers(database.New(db), auth), db
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
		Text:        "combine and bake",
		CookingTime: 15,
		AuthorID:    authorID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return recipe
}

// newRequest builds a request with an optional authenticated viewer and an
// optional {id} route parameter.
func newRequest(method, target string, viewer *models.User, id string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if viewer != nil {
		req = req.WithContext(ctxWithViewer(req.Context(), viewer))
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

func TestAddFavouriteDuplicateConflicts(t *testing.T) {
	handlers, db := openTestHandlers(t)

	author := seedUser(t, db, "author@example.com", "author")
	viewer := seedUser(t, db, "viewer@example.com", "viewer")
	recipe := seedRecipe(t, db, author.ID, "Blini")
	recipeID := fmt.Sprintf("%d", recipe.ID)

	handler := handlers.recipeHandler.addFavourite()

	recorder := httptest.NewRecorder()
	handler(recorder, newRequest(http.MethodPost, "/api/recipes/1/favorite/", viewer, recipeID))
	if recorder.Code != http.StatusOK {
		t.Fatalf("first add status = %d, want %d: %s", recorder.Code, http.StatusOK, recorder.Body.String())
	}

	recorder = httptest.NewRecorder()
	handler(recorder, newRequest(http.MethodPost, "/api/recipes/1/favorite/", viewer, recipeID))
	if recorder.Code != http.StatusConflict {
		t.Fatalf("duplicate add status = %d, want %d", recorder.Code, http.StatusConflict)
	}

	var count int64
	if err := db.Model(&models.FavouriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", viewer.ID, recipe.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("favourite rows = %d, want 1 after duplicate add", count)
	}
}

func TestAddFavouriteUnknownRecipe(t *testing.T) {
	handlers, db := openTestHandlers(t)

	viewer := seedUser(t, db, "viewer@example.com", "viewer")

	recorder := httptest.NewRecorder()
	handlers.recipeHandler.addFavourite()(recorder,
		newRequest(http.MethodPost, "/api/recipes/99/favorite/", viewer, "99"))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
}

func TestGetRecipesMembershipFiltersRequireAuth(t *testing.T) {
	handlers, _ := openTestHandlers(t)

	recorder := httptest.NewRecorder()
	handlers.recipeHandler.getRecipes()(recorder,
		newRequest(http.MethodGet, "/api/recipes/?is_favorited=1", nil, ""))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous membership filter status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestGetRecipesPaginationLinks(t *testing.T) {
	handlers, db := openTestHandlers(t)

	author := seedUser(t, db, "author@example.com", "author")
	for i := 0; i < 8; i++ {
		seedRecipe(t, db, author.ID, fmt.Sprintf("Recipe %d", i+1))
	}

	recorder := httptest.NewRecorder()
	handlers.recipeHandler.getRecipes()(recorder,
		newRequest(http.MethodGet, "http://api.test/api/recipes/?page=2&limit=3", nil, ""))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}

	body := recorder.Body.String()
	if !strings.Contains(body, `"count":8`) {
		t.Errorf("count missing from response: %s", body)
	}
	if !strings.Contains(body, "page=3") {
		t.Errorf("next link missing: %s", body)
	}
	if !strings.Contains(body, "page=1") {
		t.Errorf("previous link missing: %s", body)
	}
	if !strings.Contains(body, `"Recipe 4"`) || strings.Contains(body, `"Recipe 3"`) {
		t.Errorf("window not offset to the second page: %s", body)
	}
}

func TestShoppingCartRoundTrip(t *testing.T) {
	handlers, db := openTestHandlers(t)

	author := seedUser(t, db, "author@example.com", "author")
	viewer := seedUser(t, db, "viewer@example.com", "viewer")
	recipe := seedRecipe(t, db, author.ID, "Syrniki")

	flour := &models.Ingredient{Name: "flour", MeasurementUnit: "kg"}
	if err := db.Create(flour).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}
	row := &models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 2}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to seed recipe ingredient: %v", err)
	}

	recipeID := fmt.Sprintf("%d", recipe.ID)

	recorder := httptest.NewRecorder()
	handlers.recipeHandler.addToShoppingCart()(recorder,
		newRequest(http.MethodPost, "/api/recipes/1/shopping_cart/", viewer, recipeID))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("add to cart status = %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = httptest.NewRecorder()
	handlers.recipeHandler.downloadShoppingCart()(recorder,
		newRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", viewer, ""))
	if recorder.Code != http.StatusOK {
		t.Fatalf("download status = %d: %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Content-Disposition"); !strings.Contains(got, services.ShoppingCartFilename) {
		t.Errorf("Content-Disposition = %q, want it to name %q", got, services.ShoppingCartFilename)
	}
	if body := recorder.Body.String(); !strings.Contains(body, "flour,2,kg") {
		t.Errorf("cart export missing aggregated line: %q", body)
	}

	recorder = httptest.NewRecorder()
	handlers.recipeHandler.removeFromShoppingCart()(recorder,
		newRequest(http.MethodDelete, "/api/recipes/1/shopping_cart/", viewer, recipeID))
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handlers.recipeHandler.removeFromShoppingCart()(recorder,
		newRequest(http.MethodDelete, "/api/recipes/1/shopping_cart/", viewer, recipeID))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("second remove status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
}
