package food

import (
	"context"
	"time"

	"foodloss-backend/domain"
	"foodloss-backend/entities"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FoodRepository interface {
		FindByStore(ctx context.Context, storeID string, p domain.Pagination) ([]entities.Food, int64, error)
		FindByCategory(ctx context.Context, categoryID string, p domain.Pagination) ([]entities.Food, int64, error)
		FindByStatus(ctx context.Context, status entities.FoodStatus, p domain.Pagination) ([]entities.Food, int64, error)
		FindByPriceRange(ctx context.Context, min, max decimal.Decimal, p domain.Pagination) ([]entities.Food, int64, error)
		FindByTag(ctx context.Context, tag string, p domain.Pagination) ([]entities.Food, int64, error)
		FindExpired(ctx context.Context, now time.Time, p domain.Pagination) ([]entities.Food, int64, error)
		CountActiveByStore(ctx context.Context, storeID string) (int64, error)
		Search(ctx context.Context, filter domain.FoodFilter, p domain.Pagination) ([]entities.Food, int64, error)

		Create(ctx context.Context, food *entities.Food) error
		GetByID(ctx context.Context, id string) (*entities.Food, error)
		Update(ctx context.Context, food *entities.Food) error
		Delete(ctx context.Context, id string) error
		MarkExpired(ctx context.Context, now time.Time) (int64, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func sortedTags(db *gorm.DB) *gorm.DB {
	return db.Order("tag")
}

func (r *foodRepository) page(ctx context.Context, query string, args []any, p domain.Pagination) ([]entities.Food, int64, error) {
	var (
		foods []entities.Food
		count int64
	)

	base := r.db.WithContext(ctx).Model(&entities.Food{}).Where(query, args...)

	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Session(&gorm.Session{}).
		Preload("Tags", sortedTags).
		Order("posted_at desc").
		Order("id").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&foods).Error; err != nil {
		return nil, 0, err
	}

	return foods, count, nil
}

func (r *foodRepository) Search(ctx context.Context, filter domain.FoodFilter, p domain.Pagination) ([]entities.Food, int64, error) {
	query, args, err := BuildCondition(filter)
	if err != nil {
		return nil, 0, err
	}
	return r.page(ctx, query, args, p)
}

func (r *foodRepository) FindByStore(ctx context.Context, storeID string, p domain.Pagination) ([]entities.Food, int64, error) {
	return r.Search(ctx, domain.FoodFilter{StoreID: storeID}, p)
}

func (r *foodRepository) FindByCategory(ctx context.Context, categoryID string, p domain.Pagination) ([]entities.Food, int64, error) {
	return r.Search(ctx, domain.FoodFilter{CategoryID: categoryID}, p)
}

func (r *foodRepository) FindByStatus(ctx context.Context, status entities.FoodStatus, p domain.Pagination) ([]entities.Food, int64, error) {
	return r.Search(ctx, domain.FoodFilter{Status: string(status)}, p)
}

// FindByPriceRange matches current_price within [min, max], both ends inclusive.
func (r *foodRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal, p domain.Pagination) ([]entities.Food, int64, error) {
	return r.Search(ctx, domain.FoodFilter{MinPrice: &min, MaxPrice: &max}, p)
}

func (r *foodRepository) FindByTag(ctx context.Context, tag string, p domain.Pagination) ([]entities.Food, int64, error) {
	return r.Search(ctx, domain.FoodFilter{Tag: tag}, p)
}

// FindExpired returns active foods whose expiry is at or before now, whatever their status.
func (r *foodRepository) FindExpired(ctx context.Context, now time.Time, p domain.Pagination) ([]entities.Food, int64, error) {
	return r.page(ctx, "is_active = ? AND expiry_date <= ?", []any{true, now.UTC()}, p)
}

func (r *foodRepository) CountActiveByStore(ctx context.Context, storeID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Food{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *foodRepository) Create(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(food).Error; err != nil {
			return err
		}
		return replaceTags(tx, food)
	})
}

func (r *foodRepository) GetByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).Preload("Tags", sortedTags).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// Update saves the row and rewrites its tag set from food.Tags.
func (r *foodRepository) Update(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(food).Error; err != nil {
			return err
		}
		return replaceTags(tx, food)
	})
}

func replaceTags(tx *gorm.DB, food *entities.Food) error {
	if err := tx.Where("food_id = ?", food.ID).Delete(&entities.FoodTag{}).Error; err != nil {
		return err
	}
	if len(food.Tags) == 0 {
		return nil
	}
	for i := range food.Tags {
		food.Tags[i].FoodID = food.ID
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&food.Tags).Error
}

func (r *foodRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Food{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkExpired moves every active listing still on offer past its expiry to EXPIRED.
func (r *foodRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.Food{}).
		Where("is_active = ? AND expiry_date <= ?", true, now.UTC()).
		Where("status IN ?", []entities.FoodStatus{entities.FoodAvailable, entities.FoodReserved}).
		Updates(map[string]any{
			"status":     entities.FoodExpired,
			"updated_at": now.UTC(),
		})
	return res.RowsAffected, res.Error
}
