package services

import (
	"github.com/foodgram-project/backend/models"
)

// Response views assembled by the Composer. Field order and naming follow
// the public API contract; Next/Previous style nullables use pointer fields
// so absent values serialize as null.

type TagView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type AuthorView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type IngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeView struct {
	ID               uint             `json:"id"`
	Tags             []TagView        `json:"tags"`
	Author           AuthorView       `json:"author"`
	Ingredients      []IngredientView `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
}

type RecipeShortView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type UserView struct {
	Email        string `json:"email"`
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

type SubscriptionView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int               `json:"recipes_count"`
}

// Composer assembles response views from stored entities plus the
// per-viewer flags supplied by the Resolver. It never mutates the store.
type Composer struct {
	resolver Resolver
}

func NewComposer(resolver Resolver) Composer {
	return Composer{resolver: resolver}
}

// ComposeRecipe builds the full recipe view. The recipe must arrive with
// Author, Tags and Ingredients (with their Ingredient rows) populated.
func (c Composer) ComposeRecipe(recipe *models.Recipe, viewer *models.User) (RecipeView, error) {
	tags := make([]TagView, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, TagView{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: models.TagColor,
			Slug:  tag.Slug,
		})
	}

	isSubscribed, err := c.resolver.IsSubscribed(viewer, recipe.AuthorID)
	if err != nil {
		return RecipeView{}, err
	}

	ingredients := make([]IngredientView, 0, len(recipe.Ingredients))
	for _, row := range recipe.Ingredients {
		ingredients = append(ingredients, IngredientView{
			ID:              row.Ingredient.ID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	isFavorited, err := c.resolver.IsFavorited(viewer, recipe.ID)
	if err != nil {
		return RecipeView{}, err
	}
	isInCart, err := c.resolver.IsInCart(viewer, recipe.ID)
	if err != nil {
		return RecipeView{}, err
	}

	return RecipeView{
		ID:   recipe.ID,
		Tags: tags,
		Author: AuthorView{
			ID:           recipe.Author.ID,
			Email:        recipe.Author.Email,
			Username:     recipe.Author.Username,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		},
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            EncodeImage(recipe.Image),
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}, nil
}

// ComposeRecipeShort builds the reduced recipe view used by cart additions
// and subscription listings.
func (c Composer) ComposeRecipeShort(recipe *models.Recipe) RecipeShortView {
	return RecipeShortView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       EncodeImage(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}

// ComposeUser builds the user view with the viewer's subscription flag.
func (c Composer) ComposeUser(user *models.User, viewer *models.User) (UserView, error) {
	isSubscribed, err := c.resolver.IsSubscribed(viewer, user.ID)
	if err != nil {
		return UserView{}, err
	}
	return UserView{
		Email:        user.Email,
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       EncodeImage(user.Avatar),
	}, nil
}

// ComposeSubscription builds the subscription view: the author plus a
// truncated list of the author's recipes in id order. RecipesCount is the
// length of the truncated list, not the author's total recipe count; the
// source system behaved this way and the contract keeps it. The author must
// arrive with Recipes populated.
func (c Composer) ComposeSubscription(author *models.User, viewer *models.User, recipesLimit int) (SubscriptionView, error) {
	userView, err := c.ComposeUser(author, viewer)
	if err != nil {
		return SubscriptionView{}, err
	}

	limit := recipesLimit
	if limit > len(author.Recipes) {
		limit = len(author.Recipes)
	}
	if limit < 0 {
		limit = 0
	}

	recipes := make([]RecipeShortView, 0, limit)
	for i := 0; i < limit; i++ {
		recipe := author.Recipes[i]
		recipes = append(recipes, c.ComposeRecipeShort(&recipe))
	}

	return SubscriptionView{
		UserView:     userView,
		Recipes:      recipes,
		RecipesCount: len(recipes),
	}, nil
}
