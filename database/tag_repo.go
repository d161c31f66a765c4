package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags in id order
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("id").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID, or nil when no such tag exists
func (r *TagRepo) FindByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}
