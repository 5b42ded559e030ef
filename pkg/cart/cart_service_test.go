package cart

import (
	"context"
	"testing"

	"foodloss-backend/domain"
	"foodloss-backend/entities"
	"foodloss-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) (*entities.User, domain.Identity) {
	t.Helper()
	u := &entities.User{Email: email, Password: "x", Name: "Taro", Role: entities.RoleUser, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u, domain.Identity{UserID: u.ID.String(), Email: email, Role: domain.RoleUser}
}

func TestCartMergesAndScopesItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCartService(NewCartRepository(db))
	ctx := context.Background()
	_, taro := seedUser(t, db, "taro@example.com")
	_, hanako := seedUser(t, db, "hanako@example.com")

	first, err := svc.AddItem(ctx, taro, domain.AddCartItemRequest{ItemName: "Bagel", Quantity: 1})
	require.NoError(t, err)
	merged, err := svc.AddItem(ctx, taro, domain.AddCartItemRequest{ItemName: " Bagel ", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)

	_, err = svc.AddItem(ctx, hanako, domain.AddCartItemRequest{ItemName: "Bagel", Quantity: 1})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, taro)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.ErrorIs(t, svc.RemoveItem(ctx, hanako, first.ID), domain.ErrCartItemNotFound)
	require.NoError(t, svc.RemoveItem(ctx, taro, first.ID))
	assert.ErrorIs(t, svc.RemoveItem(ctx, taro, uuid.NewString()), domain.ErrCartItemNotFound)

	require.NoError(t, svc.Clear(ctx, hanako))
	items, err = svc.ListItems(ctx, hanako)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.AddItem(ctx, taro, domain.AddCartItemRequest{ItemName: "Bagel", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestDeletingUserRemovesCartAndOrders(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCartService(NewCartRepository(db))
	ctx := context.Background()
	user, identity := seedUser(t, db, "taro@example.com")

	_, err := svc.AddItem(ctx, identity, domain.AddCartItemRequest{ItemName: "Bagel", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, db.Omit("User").Create(&entities.Order{UserID: user.ID}).Error)

	orders, err := svc.ListOrders(ctx, identity)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, string(entities.OrderPending), orders[0].Status)

	require.NoError(t, db.Where("id = ?", user.ID).Delete(&entities.User{}).Error)

	var items, remaining int64
	require.NoError(t, db.Model(&entities.CartItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&entities.Order{}).Count(&remaining).Error)
	assert.Zero(t, items)
	assert.Zero(t, remaining)
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := entities.ParseOrderStatus("PENDING")
	assert.True(t, ok)
	assert.Equal(t, entities.OrderPending, status)

	_, ok = entities.ParseOrderStatus("SHIPPED")
	assert.False(t, ok)
}
