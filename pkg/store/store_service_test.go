package store

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

func seedUser(t *testing.T, db *gorm.DB, email string, role entities.UserRole) domain.Identity {
	t.Helper()
	u := &entities.User{Email: email, Password: "x", Name: "Owner", Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return domain.Identity{UserID: u.ID.String(), Email: email, Role: string(role)}
}

func registerReq() domain.RegisterStoreRequest {
	return domain.RegisterStoreRequest{
		Name:    "  Corner Bakery ",
		Address: "1-2-3 Shibuya",
		BusinessHours: map[string]domain.DayHours{
			"Monday": {OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
		},
		Categories: []string{"bakery"},
	}
}

func TestRegisterStore(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewStoreService(NewStoreRepository(db), testutil.NewFakeS3())
	ctx := context.Background()
	owner := seedUser(t, db, "s@example.com", entities.RoleStore)

	res, err := svc.RegisterStore(ctx, owner, registerReq())
	require.NoError(t, err)
	assert.Equal(t, "Corner Bakery", res.Name)
	assert.Equal(t, owner.UserID, res.UserID)
	assert.True(t, res.IsActive)
	assert.False(t, res.IsVerified)

	got, err := svc.GetStore(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DayHours{OpenTime: "09:00", CloseTime: "18:00", IsOpen: true}, got.BusinessHours["monday"])
	assert.Equal(t, []string{"bakery"}, got.Categories)

	_, err = svc.RegisterStore(ctx, owner, registerReq())
	assert.ErrorIs(t, err, domain.ErrStoreAlreadyExists)

	consumer := seedUser(t, db, "u@example.com", entities.RoleUser)
	_, err = svc.RegisterStore(ctx, consumer, registerReq())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStoreOwnerOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewStoreService(NewStoreRepository(db), testutil.NewFakeS3())
	ctx := context.Background()
	owner := seedUser(t, db, "s@example.com", entities.RoleStore)
	other := seedUser(t, db, "o@example.com", entities.RoleStore)

	created, err := svc.RegisterStore(ctx, owner, registerReq())
	require.NoError(t, err)

	updated, err := svc.UpdateStore(ctx, owner, created.ID, domain.UpdateStoreRequest{
		Website: domain.Some("https://bakery.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://bakery.example.com", updated.Website)
	assert.Equal(t, "Corner Bakery", updated.Name)
	assert.Equal(t, "1-2-3 Shibuya", updated.Address)

	_, err = svc.UpdateStore(ctx, other, created.ID, domain.UpdateStoreRequest{Name: domain.Some("Mine")})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedStoreAccess)

	_, err = svc.UpdateStore(ctx, owner, uuid.NewString(), domain.UpdateStoreRequest{})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestListStoresActiveOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewStoreService(NewStoreRepository(db), testutil.NewFakeS3())
	ctx := context.Background()

	a := seedUser(t, db, "a@example.com", entities.RoleStore)
	b := seedUser(t, db, "b@example.com", entities.RoleStore)
	_, err := svc.RegisterStore(ctx, a, registerReq())
	require.NoError(t, err)
	closed, err := svc.RegisterStore(ctx, b, registerReq())
	require.NoError(t, err)
	_, err = svc.UpdateStore(ctx, b, closed.ID, domain.UpdateStoreRequest{IsActive: domain.Some(false)})
	require.NoError(t, err)

	list, err := svc.ListStores(ctx, domain.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.UserID, list.Items[0].UserID)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestUploadAndDeleteStore(t *testing.T) {
	db := testutil.NewTestDB(t)
	s3 := testutil.NewFakeS3()
	svc := NewStoreService(NewStoreRepository(db), s3)
	ctx := context.Background()
	owner := seedUser(t, db, "s@example.com", entities.RoleStore)

	created, err := svc.RegisterStore(ctx, owner, registerReq())
	require.NoError(t, err)

	res, err := svc.UploadStoreImage(ctx, owner, created.ID, domain.UploadStoreImageRequest{Image: testutil.FileHeader("front.png")})
	require.NoError(t, err)
	key := "stores/store-" + created.ID
	assert.Equal(t, testutil.FakeBucketURL+key, res.ImageURL)

	stranger := seedUser(t, db, "x@example.com", entities.RoleUser)
	assert.ErrorIs(t, svc.DeleteStore(ctx, stranger, created.ID), domain.ErrUnauthorizedStoreAccess)

	require.NoError(t, svc.DeleteStore(ctx, owner, created.ID))
	assert.Equal(t, []string{key}, s3.Deleted)

	_, err = svc.GetStore(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	// the owner may open a new store afterwards
	_, err = svc.RegisterStore(ctx, owner, registerReq())
	require.NoError(t, err)
}
