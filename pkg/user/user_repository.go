package user

import (
	"context"
	"time"

	"foodloss-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	UserRepository interface {
		FindActiveByEmail(ctx context.Context, email string) (*entities.User, error)
		FindByID(ctx context.Context, id string) (*entities.User, error)
		FindByEmail(ctx context.Context, email string) (*entities.User, error)
		ExistsByEmail(ctx context.Context, email string) (bool, error)
		Create(ctx context.Context, user *entities.User) error
		Save(ctx context.Context, user *entities.User) error

		RevokeToken(ctx context.Context, token *entities.RevokedToken) error
		IsTokenRevoked(ctx context.Context, jti string) (bool, error)
		PurgeRevokedTokens(ctx context.Context, before time.Time) (int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Save is the single write path for an existing account.
func (r *userRepository) Save(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) RevokeToken(ctx context.Context, token *entities.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(token).Error
}

func (r *userRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) PurgeRevokedTokens(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&entities.RevokedToken{})
	return res.RowsAffected, res.Error
}
