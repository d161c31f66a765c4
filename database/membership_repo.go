package database

import (
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/models"
)

// MembershipRepo owns the three payload-free membership relations:
// favourites, shopping cart and subscriptions. Existence checks are indexed
// point lookups on the pair, never relation scans.
type MembershipRepo struct {
	db *gorm.DB
}

func NewMembershipRepo(db *gorm.DB) *MembershipRepo {
	return &MembershipRepo{db}
}

// IsFavorited reports whether the user has favorited the recipe
func (r *MembershipRepo) IsFavorited(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FavouriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// IsInCart reports whether the recipe is in the user's shopping cart
func (r *MembershipRepo) IsInCart(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ShoppingCartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// IsSubscribed reports whether the user is subscribed to the author
func (r *MembershipRepo) IsSubscribed(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// AddFavourite inserts a favourite pair
func (r *MembershipRepo) AddFavourite(userID, recipeID uint) error {
	return r.db.Create(&models.FavouriteRecipe{UserID: userID, RecipeID: recipeID}).Error
}

// RemoveFavourite deletes a favourite pair if present
func (r *MembershipRepo) RemoveFavourite(userID, recipeID uint) error {
	return r.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.FavouriteRecipe{}).Error
}

// AddToCart inserts a shopping-cart pair
func (r *MembershipRepo) AddToCart(userID, recipeID uint) error {
	return r.db.Create(&models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}).Error
}

// RemoveFromCart deletes a shopping-cart pair, reporting whether a row was removed
func (r *MembershipRepo) RemoveFromCart(userID, recipeID uint) (bool, error) {
	result := r.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCartItem{})
	return result.RowsAffected > 0, result.Error
}

// AddSubscription inserts a subscription pair
func (r *MembershipRepo) AddSubscription(userID, authorID uint) error {
	return r.db.Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error
}

// RemoveSubscription deletes a subscription pair, reporting whether a row was removed
func (r *MembershipRepo) RemoveSubscription(userID, authorID uint) (bool, error) {
	result := r.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	return result.RowsAffected > 0, result.Error
}

// Subscriptions lists the authors the user follows, with each author's
// recipes preloaded in id order. Total is the full subscription count;
// offset/limit select one page in author insertion order.
func (r *MembershipRepo) Subscriptions(userID uint, offset, limit int) (int, []*models.User, error) {
	var total int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, nil, err
	}

	followed := r.db.Model(&models.Subscription{}).
		Select("author_id").
		Where("user_id = ?", userID)

	var authors []*models.User
	err = r.db.Model(&models.User{}).
		Where("id IN (?)", followed).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.id")
		}).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return 0, nil, err
	}
	return int(total), authors, nil
}
