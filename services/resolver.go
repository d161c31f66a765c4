package services

import (
	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/models"
)

// Resolver answers per-viewer relationship questions. The viewer is a
// nullable *models.User threaded through every composition call: a nil
// viewer is the anonymous viewer, and every answer for it is false without
// touching the store.
type Resolver struct {
	memberships *database.MembershipRepo
}

func NewResolver(memberships *database.MembershipRepo) Resolver {
	return Resolver{memberships: memberships}
}

// IsFavorited reports whether the viewer has favorited the recipe
func (r Resolver) IsFavorited(viewer *models.User, recipeID uint) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	return r.memberships.IsFavorited(viewer.ID, recipeID)
}

// IsInCart reports whether the recipe is in the viewer's shopping cart
func (r Resolver) IsInCart(viewer *models.User, recipeID uint) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	return r.memberships.IsInCart(viewer.ID, recipeID)
}

// IsSubscribed reports whether the viewer follows the author
func (r Resolver) IsSubscribed(viewer *models.User, authorID uint) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	return r.memberships.IsSubscribed(viewer.ID, authorID)
}
