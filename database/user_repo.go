package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by its ID, or nil when no such user exists
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithRecipes returns a user with its recipes preloaded in id order
func (r *UserRepo) FindByIDWithRecipes(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Recipes", func(db *gorm.DB) *gorm.DB {
		return db.Order("recipes.id")
	}).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, or nil when no such user exists
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailOrUsername reports whether any user holds either value
func (r *UserRepo) ExistsByEmailOrUsername(email, username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Update updates an existing user in the database
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Count returns the total number of users
func (r *UserRepo) Count() (int, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return int(count), err
}

// FindPage returns one page of users in id order
func (r *UserRepo) FindPage(offset, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("id").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}
