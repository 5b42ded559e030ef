package cart

import (
	"context"

	"foodloss-backend/entities"

	"gorm.io/gorm"
)

type (
	CartRepository interface {
		ListItems(ctx context.Context, userID string) ([]entities.CartItem, error)
		FindItemByName(ctx context.Context, userID, itemName string) (*entities.CartItem, error)
		CreateItem(ctx context.Context, item *entities.CartItem) error
		SaveItem(ctx context.Context, item *entities.CartItem) error
		DeleteItem(ctx context.Context, userID, id string) error
		Clear(ctx context.Context, userID string) (int64, error)

		ListOrders(ctx context.Context, userID string) ([]entities.Order, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListItems(ctx context.Context, userID string) ([]entities.CartItem, error) {
	var items []entities.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindItemByName(ctx context.Context, userID, itemName string) (*entities.CartItem, error) {
	var item entities.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_name = ?", userID, itemName).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(ctx context.Context, item *entities.CartItem) error {
	return r.db.WithContext(ctx).Omit("User").Create(item).Error
}

func (r *cartRepository) SaveItem(ctx context.Context, item *entities.CartItem) error {
	return r.db.WithContext(ctx).Omit("User").Save(item).Error
}

// DeleteItem only removes rows owned by userID.
func (r *cartRepository) DeleteItem(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *cartRepository) ListOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	var orders []entities.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
