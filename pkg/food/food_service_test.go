package food

import (
	"context"
	"testing"
	"time"

	"foodloss-backend/domain"
	"foodloss-backend/entities"
	"foodloss-backend/internal/testutil"
	"foodloss-backend/pkg/category"
	"foodloss-backend/pkg/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db      *gorm.DB
	repo    FoodRepository
	s3      *testutil.FakeS3
	service FoodService
	owner   domain.Identity
	store   *entities.Store
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &serviceFixture{
		db:   db,
		repo: NewFoodRepository(db),
		s3:   testutil.NewFakeS3(),
	}
	f.service = NewFoodService(f.repo, store.NewStoreRepository(db), category.NewCategoryRepository(db), f.s3)

	user, st := seedStore(t, db, "owner@example.com")
	f.store = st
	f.owner = domain.Identity{UserID: user.ID.String(), Email: user.Email, Role: domain.RoleStore}
	return f
}

func createReq(name string) domain.CreateFoodRequest {
	return domain.CreateFoodRequest{
		Name:          name,
		OriginalPrice: decimal.RequireFromString("10.00"),
		CurrentPrice:  decimal.RequireFromString("4.50"),
		Quantity:      3,
		ExpiryDate:    now.Add(24 * time.Hour),
		Tags:          []string{" vegan ", "bread", "vegan", ""},
	}
}

func TestCreateFood(t *testing.T) {
	f := newServiceFixture(t)

	res, err := f.service.CreateFood(context.Background(), f.owner, createReq("Bagel"))
	require.NoError(t, err)
	assert.Equal(t, f.store.ID.String(), res.StoreID)
	assert.Equal(t, "10.00", res.OriginalPrice)
	assert.Equal(t, "4.50", res.CurrentPrice)
	assert.Equal(t, string(entities.FoodAvailable), res.Status)
	assert.True(t, res.IsActive)
	assert.Equal(t, []string{"bread", "vegan"}, res.Tags)
	assert.Nil(t, res.CategoryID)
}

func TestCreateFoodRejections(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		identity domain.Identity
		mutate   func(*domain.CreateFoodRequest)
		want     error
	}{
		{
			name:     "consumer cannot list food",
			identity: domain.Identity{UserID: uuid.NewString(), Role: domain.RoleUser},
			want:     domain.ErrForbidden,
		},
		{
			name:     "store role without a store",
			identity: domain.Identity{UserID: uuid.NewString(), Role: domain.RoleStore},
			want:     domain.ErrStoreNotFound,
		},
		{
			name:   "current above original",
			mutate: func(r *domain.CreateFoodRequest) { r.CurrentPrice = decimal.RequireFromString("10.01") },
			want:   domain.ErrPriceAboveOriginal,
		},
		{
			name:   "negative price",
			mutate: func(r *domain.CreateFoodRequest) { r.CurrentPrice = decimal.RequireFromString("-1") },
			want:   domain.ErrInvalidPrice,
		},
		{
			name:   "negative quantity",
			mutate: func(r *domain.CreateFoodRequest) { r.Quantity = -1 },
			want:   domain.ErrInvalidQuantity,
		},
		{
			name:   "unknown category",
			mutate: func(r *domain.CreateFoodRequest) { r.CategoryID = uuid.NewString() },
			want:   domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := tt.identity
			if identity.UserID == "" {
				identity = f.owner
			}
			req := createReq("Bagel")
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			_, err := f.service.CreateFood(ctx, identity, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateFoodPartial(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateFood(ctx, f.owner, createReq("Bagel"))
	require.NoError(t, err)

	updated, err := f.service.UpdateFood(ctx, f.owner, created.ID, domain.UpdateFoodRequest{
		CurrentPrice: domain.Some(decimal.RequireFromString("3.00")),
	})
	require.NoError(t, err)
	assert.Equal(t, "3.00", updated.CurrentPrice)
	assert.Equal(t, "Bagel", updated.Name)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, []string{"bread", "vegan"}, updated.Tags)

	_, err = f.service.UpdateFood(ctx, f.owner, created.ID, domain.UpdateFoodRequest{
		OriginalPrice: domain.Some(decimal.RequireFromString("2.00")),
	})
	assert.ErrorIs(t, err, domain.ErrPriceAboveOriginal)

	stranger := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleStore}
	_, err = f.service.UpdateFood(ctx, stranger, created.ID, domain.UpdateFoodRequest{Name: domain.Some("x")})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedFoodAccess)
}

func TestChangeStatus(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateFood(ctx, f.owner, createReq("Bagel"))
	require.NoError(t, err)

	steps := []struct {
		to   string
		want error
	}{
		{"RESERVED", nil},
		{"AVAILABLE", nil},
		{"SOLD_OUT", nil},
		{"RESERVED", domain.ErrInvalidStatusChange},
		{"AVAILABLE", nil},
		{"expired", nil},
		{"EXPIRED", nil},
		{"AVAILABLE", domain.ErrInvalidStatusChange},
		{"GONE", domain.ErrInvalidFoodStatus},
	}
	for _, step := range steps {
		_, err := f.service.ChangeStatus(ctx, f.owner, created.ID, step.to)
		if step.want == nil {
			require.NoError(t, err, step.to)
		} else {
			assert.ErrorIs(t, err, step.want, step.to)
		}
	}

	got, err := f.service.GetFood(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.FoodExpired), got.Status)
}

func TestGetFoodHidesInactive(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateFood(ctx, f.owner, createReq("Bagel"))
	require.NoError(t, err)

	_, err = f.service.UpdateFood(ctx, f.owner, created.ID, domain.UpdateFoodRequest{IsActive: domain.Some(false)})
	require.NoError(t, err)

	_, err = f.service.GetFood(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)

	_, err = f.service.GetFood(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestUploadAndDeleteFoodImage(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateFood(ctx, f.owner, createReq("Bagel"))
	require.NoError(t, err)

	res, err := f.service.UploadFoodImage(ctx, f.owner, created.ID, domain.UploadFoodImageRequest{Image: testutil.FileHeader("bagel.jpg")})
	require.NoError(t, err)
	key := "foods/food-" + created.ID
	assert.Equal(t, testutil.FakeBucketURL+key, res.ImageURL)
	assert.Equal(t, "bagel.jpg", f.s3.Objects[key])

	require.NoError(t, f.service.DeleteFood(ctx, f.owner, created.ID))
	assert.Equal(t, []string{key}, f.s3.Deleted)

	_, err = f.service.GetFood(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestAdminMayDeleteAnyFood(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateFood(ctx, f.owner, createReq("Bagel"))
	require.NoError(t, err)

	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	require.NoError(t, f.service.DeleteFood(ctx, admin, created.ID))
}

func TestListByPriceRangeNeedsBothBounds(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	p := domain.NewPagination(1, 10)

	lo := decimal.RequireFromString("5")
	hi := decimal.RequireFromString("1")

	_, err := f.service.ListByPriceRange(ctx, &lo, nil, p)
	assert.ErrorIs(t, err, domain.ErrInvalidPriceRange)

	_, err = f.service.ListByPriceRange(ctx, &lo, &hi, p)
	assert.ErrorIs(t, err, domain.ErrInvalidPriceRange)

	_, err = f.service.ListByStatus(ctx, "unknown", p)
	assert.ErrorIs(t, err, domain.ErrInvalidFoodStatus)
}

func TestCountByStoreAndSweep(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateFood(ctx, f.owner, createReq("Bagel"))
	require.NoError(t, err)
	stale := createReq("Old bread")
	stale.ExpiryDate = now.Add(-time.Hour)
	_, err = f.service.CreateFood(ctx, f.owner, stale)
	require.NoError(t, err)

	count, err := f.service.CountByStore(ctx, f.store.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Count)

	_, err = f.service.CountByStore(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	result, err := f.service.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Expired)

	expired, err := f.service.ListByStatus(ctx, "EXPIRED", domain.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, expired.Items, 1)
	assert.Equal(t, "Old bread", expired.Items[0].Name)
	assert.Equal(t, int64(1), expired.Pagination.Total)
}
