package models

// Membership relations: payload-free many-to-many pairs. Each pair carries a
// composite unique index so a concurrent duplicate insert fails at the store
// even when two requests pass the check-then-act guard simultaneously.

// Subscription is a directed edge: UserID follows AuthorID.
type Subscription struct {
	ID       uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	UserID   uint `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_subscription_pair"`
	AuthorID uint `json:"author_id" db:"author_id" gorm:"not null;uniqueIndex:idx_subscription_pair;index"`
}

// FavouriteRecipe marks RecipeID as favorited by UserID.
type FavouriteRecipe struct {
	ID       uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	UserID   uint `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_favourite_pair"`
	RecipeID uint `json:"recipe_id" db:"recipe_id" gorm:"not null;uniqueIndex:idx_favourite_pair;index"`
}

// ShoppingCartItem marks RecipeID as present in UserID's shopping cart.
type ShoppingCartItem struct {
	ID       uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	UserID   uint `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_cart_pair"`
	RecipeID uint `json:"recipe_id" db:"recipe_id" gorm:"not null;uniqueIndex:idx_cart_pair;index"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart"
}
