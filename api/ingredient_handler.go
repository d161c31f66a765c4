package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/errs"
)

type ingredientHandler struct {
	responder      Responder
	logger         zerolog.Logger
	ingredientRepo *database.IngredientRepo
}

func newIngredientHandler(ingredientRepo *database.IngredientRepo) ingredientHandler {
	logger := log.With().Str("handlerName", "ingredientHandler").Logger()

	return ingredientHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		ingredientRepo: ingredientRepo,
	}
}

// getIngredients lists ingredients whose name contains the name query fragment
func (h ingredientHandler) getIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")

		ingredients, err := h.ingredientRepo.Search(name)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "ingredients", err))
			return
		}
		h.responder.WriteJSON(w, ingredients)
	}
}

// getIngredient returns one ingredient
func (h ingredientHandler) getIngredient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ingredient, err := h.ingredientRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "ingredient", err))
			return
		}
		if ingredient == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("ingredient not found"))
			return
		}

		h.responder.WriteJSON(w, ingredient)
	}
}
