package api

import (
	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, auth services.Auth) *routeHandlers {
	resolver := services.NewResolver(db.MembershipRepo())
	composer := services.NewComposer(resolver)
	aggregator := services.NewAggregator(db.CartRepo())

	return &routeHandlers{
		authHandler:       newAuthHandler(auth, db.UserRepo()),
		userHandler:       newUserHandler(db.UserRepo(), db.MembershipRepo(), composer),
		recipeHandler:     newRecipeHandler(db.RecipeRepo(), db.MembershipRepo(), composer, aggregator),
		tagHandler:        newTagHandler(db.TagRepo()),
		ingredientHandler: newIngredientHandler(db.IngredientRepo()),
	}
}
