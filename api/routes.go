package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public and authenticated route groups. Listing and
// detail reads allow anonymous viewers; every mutation and viewer-scoped
// read requires a bearer token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		// Public routes; the viewer is resolved when a token is present
		r.Group(func(r chi.Router) {
			r.Use(ColoredHTTPLoggingMiddleware)
			r.Use(authMiddleware.maybeAuthenticate)

			r.Post("/auth/token/login/", handlers.authHandler.login())
			r.Post("/auth/token/logout/", handlers.authHandler.logout())

			r.Post("/users/", handlers.userHandler.signup())
			r.Post("/users/reset_password/", handlers.userHandler.resetPassword())
			r.Get("/users/", handlers.userHandler.getUsers())
			r.Get("/users/{id}/", handlers.userHandler.getUser())

			r.Get("/tags/", handlers.tagHandler.getTags())
			r.Get("/tags/{id}/", handlers.tagHandler.getTag())

			r.Get("/ingredients/", handlers.ingredientHandler.getIngredients())
			r.Get("/ingredients/{id}/", handlers.ingredientHandler.getIngredient())

			r.Get("/recipes/", handlers.recipeHandler.getRecipes())
			r.Get("/recipes/{id}/", handlers.recipeHandler.getRecipe())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(ColoredHTTPLoggingMiddleware)
			r.Use(authMiddleware.authenticate)

			r.Get("/users/me/", handlers.userHandler.getProfile())
			r.Post("/users/set_password/", handlers.userHandler.changePassword())
			r.Put("/users/me/avatar/", handlers.userHandler.updateAvatar())
			r.Delete("/users/me/avatar/", handlers.userHandler.deleteAvatar())

			r.Get("/users/subscriptions/", handlers.userHandler.getSubscriptions())
			r.Post("/users/{id}/subscribe/", handlers.userHandler.subscribe())
			r.Delete("/users/{id}/subscribe/", handlers.userHandler.unsubscribe())

			r.Post("/recipes/", handlers.recipeHandler.createRecipe())
			r.Patch("/recipes/{id}/", handlers.recipeHandler.updateRecipe())

			r.Post("/recipes/{id}/favorite/", handlers.recipeHandler.addFavourite())
			r.Delete("/recipes/{id}/favorite/", handlers.recipeHandler.removeFavourite())

			r.Post("/recipes/{id}/shopping_cart/", handlers.recipeHandler.addToShoppingCart())
			r.Delete("/recipes/{id}/shopping_cart/", handlers.recipeHandler.removeFromShoppingCart())
			r.Get("/recipes/download_shopping_cart/", handlers.recipeHandler.downloadShoppingCart())
		})
	})
}
