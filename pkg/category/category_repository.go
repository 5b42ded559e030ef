package category

import (
	"context"

	"foodloss-backend/entities"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		ListActive(ctx context.Context) ([]entities.Category, error)
		GetByID(ctx context.Context, id string) (*entities.Category, error)
		ExistsByName(ctx context.Context, name string) (bool, error)
		Create(ctx context.Context, category *entities.Category) error
		Save(ctx context.Context, category *entities.Category) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]entities.Category, error) {
	var categories []entities.Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order asc").
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Save(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}
