package store

import (
	"context"

	"foodloss-backend/domain"
	"foodloss-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	StoreRepository interface {
		Create(ctx context.Context, store *entities.Store) error
		GetByID(ctx context.Context, id string) (*entities.Store, error)
		GetByUserID(ctx context.Context, userID string) (*entities.Store, error)
		ExistsByUserID(ctx context.Context, userID string) (bool, error)
		ListActive(ctx context.Context, p domain.Pagination) ([]entities.Store, int64, error)
		Save(ctx context.Context, store *entities.Store) error
		Delete(ctx context.Context, id string) error
	}

	storeRepository struct {
		db *gorm.DB
	}
)

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *entities.Store) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*entities.Store, error) {
	var store entities.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetByUserID(ctx context.Context, userID string) (*entities.Store, error) {
	var store entities.Store
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Store{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *storeRepository) ListActive(ctx context.Context, p domain.Pagination) ([]entities.Store, int64, error) {
	var (
		stores []entities.Store
		count  int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Store{}).Where("is_active = ?", true)

	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Session(&gorm.Session{}).
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&stores).Error; err != nil {
		return nil, 0, err
	}

	return stores, count, nil
}

func (r *storeRepository) Save(ctx context.Context, store *entities.Store) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(store).Error
}

// Delete removes the store row; its foods and their tags go with it through the FK cascade.
func (r *storeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Store{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
