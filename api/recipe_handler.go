package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/errs"
	"github.com/foodgram-project/backend/models"
	"github.com/foodgram-project/backend/services"
)

type recipeHandler struct {
	responder      Responder
	logger         zerolog.Logger
	recipeRepo     *database.RecipeRepo
	membershipRepo *database.MembershipRepo
	composer       services.Composer
	aggregator     services.Aggregator
}

func newRecipeHandler(recipeRepo *database.RecipeRepo, membershipRepo *database.MembershipRepo, composer services.Composer, aggregator services.Aggregator) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		recipeRepo:     recipeRepo,
		membershipRepo: membershipRepo,
		composer:       composer,
		aggregator:     aggregator,
	}
}

type recipeIngredientRequest struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

type recipeRequest struct {
	Ingredients []recipeIngredientRequest `json:"ingredients"`
	Tags        []uint                    `json:"tags"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
}

type recipeListResponse struct {
	services.Page
	Results []services.RecipeView `json:"results"`
}

// validate checks the invariants shared by create and update
func (req recipeRequest) validate() error {
	if req.Name == "" {
		return errs.NewBadRequestErrorWithField("invalid recipe", "name", "name is required")
	}
	if req.CookingTime <= 0 {
		return errs.NewBadRequestErrorWithField("invalid recipe", "cooking_time", "cooking time must be positive")
	}
	for _, ingredient := range req.Ingredients {
		if ingredient.Amount <= 0 {
			return errs.NewBadRequestErrorWithField("invalid recipe", "ingredients", "ingredient amount must be positive")
		}
	}
	return nil
}

func (req recipeRequest) ingredientRows() []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(req.Ingredients))
	for _, ingredient := range req.Ingredients {
		rows = append(rows, models.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       ingredient.Amount,
		})
	}
	return rows
}

// getRecipes lists recipes with conjunctive filters: author, tag slugs and
// the two viewer-membership flags
func (h recipeHandler) getRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		page, limit := pageParams(r)

		filter := database.RecipeFilter{
			TagSlugs: r.URL.Query()["tags"],
			Offset:   (page - 1) * limit,
			Limit:    limit,
		}
		if author := queryInt(r, "author", 0); author > 0 {
			authorID := uint(author)
			filter.AuthorID = &authorID
		}
		favoritedOnly := queryInt(r, "is_favorited", 0) == 1
		inCartOnly := queryInt(r, "is_in_shopping_cart", 0) == 1
		if (favoritedOnly || inCartOnly) && viewer == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("membership filters require authentication"))
			return
		}
		if favoritedOnly {
			filter.FavoritedBy = &viewer.ID
		}
		if inCartOnly {
			filter.InCartOf = &viewer.ID
		}

		total, recipes, err := h.recipeRepo.List(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
			return
		}

		results := make([]services.RecipeView, 0, len(recipes))
		for _, recipe := range recipes {
			view, err := h.composer.ComposeRecipe(recipe, viewer)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("compose", "recipe", err))
				return
			}
			results = append(results, view)
		}

		h.responder.WriteJSON(w, recipeListResponse{
			Page:    services.Paginate(total, page, limit, requestURL(r)),
			Results: results,
		})
	}
}

// getRecipe returns one recipe with per-viewer flags
func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}
		if recipe == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("no recipe with this id"))
			return
		}

		view, err := h.composer.ComposeRecipe(recipe, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "recipe", err))
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// createRecipe publishes a new recipe owned by the viewer
func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		var request recipeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := request.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var image []byte
		if request.Image != "" {
			decoded, err := services.DecodeImage(request.Image)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			image = decoded
		}

		recipe := models.Recipe{
			Name:        request.Name,
			Image:       image,
			CookingTime: request.CookingTime,
			Text:        request.Text,
			AuthorID:    viewer.ID,
		}

		if err := h.recipeRepo.Create(&recipe, request.ingredientRows(), request.Tags); err != nil {
			if errors.Is(err, database.ErrTagNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "recipe", err))
			return
		}

		// Reload to pick up preloaded associations for the response
		created, err := h.recipeRepo.FindByID(recipe.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "recipe", err))
			return
		}

		view, err := h.composer.ComposeRecipe(created, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "recipe", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// updateRecipe rewrites an owned recipe, replacing its ingredient rows and
// tag set
func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.recipeRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
			return
		}
		if existing.AuthorID != viewer.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("recipe belongs to another user"))
			return
		}

		var request recipeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := request.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var image []byte
		if request.Image != "" {
			decoded, err := services.DecodeImage(request.Image)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			image = decoded
		}

		updated := models.Recipe{
			ID:          id,
			Name:        request.Name,
			Image:       image,
			CookingTime: request.CookingTime,
			Text:        request.Text,
			AuthorID:    existing.AuthorID,
		}

		if err := h.recipeRepo.Update(&updated, request.ingredientRows(), request.Tags); err != nil {
			if errors.Is(err, database.ErrTagNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "recipe", err))
			return
		}

		reloaded, err := h.recipeRepo.FindByID(id)
		if err != nil || reloaded == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "recipe", err))
			return
		}

		view, err := h.composer.ComposeRecipe(reloaded, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "recipe", err))
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// addFavourite marks a recipe as favorited by the viewer; a duplicate add
// is a conflict
func (h recipeHandler) addFavourite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}
		if recipe == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
			return
		}

		favorited, err := h.membershipRepo.IsFavorited(viewer.ID, id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "favourite", err))
			return
		}
		if favorited {
			h.responder.WriteError(w, errs.NewConflictError("recipe already in favourites"))
			return
		}

		if err := h.membershipRepo.AddFavourite(viewer.ID, id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "favourite", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Recipe added to favourites"})
	}
}

// removeFavourite unmarks a favorited recipe; removing an absent pair is a no-op
func (h recipeHandler) removeFavourite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.membershipRepo.RemoveFavourite(viewer.ID, id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "favourite", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Recipe removed from favourites"})
	}
}

// addToShoppingCart puts a recipe in the viewer's cart; a duplicate add is
// a conflict
func (h recipeHandler) addToShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}
		if recipe == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
			return
		}

		inCart, err := h.membershipRepo.IsInCart(viewer.ID, id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "shopping cart", err))
			return
		}
		if inCart {
			h.responder.WriteError(w, errs.NewConflictError(fmt.Sprintf("recipe %d already in shopping cart", id)))
			return
		}

		if err := h.membershipRepo.AddToCart(viewer.ID, id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "shopping cart item", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, h.composer.ComposeRecipeShort(recipe))
	}
}

// removeFromShoppingCart takes a recipe out of the viewer's cart
func (h recipeHandler) removeFromShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		removed, err := h.membershipRepo.RemoveFromCart(viewer.ID, id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "shopping cart item", err))
			return
		}
		if !removed {
			h.responder.WriteError(w, errs.NewBadRequestError(fmt.Sprintf("no recipe %d in shopping cart", id)))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// downloadShoppingCart streams the aggregated cart as a CSV attachment
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		lines, err := h.aggregator.Aggregate(viewer.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "shopping cart", err))
			return
		}

		data, err := services.RenderCSV(lines)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("rendering shopping cart", err))
			return
		}

		w.Header().Set("Content-Type", services.ShoppingCartMIMEType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ShoppingCartFilename))
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing shopping cart export")
		}
	}
}
