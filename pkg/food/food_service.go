package food

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"foodloss-backend/domain"
	"foodloss-backend/entities"
	"foodloss-backend/internal/utils/storage"
	"foodloss-backend/pkg/category"
	"foodloss-backend/pkg/store"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		CreateFood(ctx context.Context, identity domain.Identity, req domain.CreateFoodRequest) (domain.FoodResponse, error)
		UpdateFood(ctx context.Context, identity domain.Identity, id string, req domain.UpdateFoodRequest) (domain.FoodResponse, error)
		DeleteFood(ctx context.Context, identity domain.Identity, id string) error
		GetFood(ctx context.Context, id string) (domain.FoodResponse, error)
		UploadFoodImage(ctx context.Context, identity domain.Identity, id string, req domain.UploadFoodImageRequest) (domain.FoodResponse, error)
		ChangeStatus(ctx context.Context, identity domain.Identity, id string, status string) (domain.FoodResponse, error)

		ListByStore(ctx context.Context, storeID string, p domain.Pagination) (domain.FoodListResponse, error)
		ListByCategory(ctx context.Context, categoryID string, p domain.Pagination) (domain.FoodListResponse, error)
		ListByStatus(ctx context.Context, status string, p domain.Pagination) (domain.FoodListResponse, error)
		ListByPriceRange(ctx context.Context, min, max *decimal.Decimal, p domain.Pagination) (domain.FoodListResponse, error)
		ListByTag(ctx context.Context, tag string, p domain.Pagination) (domain.FoodListResponse, error)
		ListExpired(ctx context.Context, now time.Time, p domain.Pagination) (domain.FoodListResponse, error)
		Search(ctx context.Context, filter domain.FoodFilter, p domain.Pagination) (domain.FoodListResponse, error)
		CountByStore(ctx context.Context, storeID string) (domain.FoodCountResponse, error)

		SweepExpired(ctx context.Context, now time.Time) (domain.SweepResult, error)
	}

	foodService struct {
		foodRepository     FoodRepository
		storeRepository    store.StoreRepository
		categoryRepository category.CategoryRepository
		s3                 storage.AwsS3
	}
)

func NewFoodService(
	foodRepository FoodRepository,
	storeRepository store.StoreRepository,
	categoryRepository category.CategoryRepository,
	s3 storage.AwsS3,
) FoodService {
	return &foodService{
		foodRepository:     foodRepository,
		storeRepository:    storeRepository,
		categoryRepository: categoryRepository,
		s3:                 s3,
	}
}

func ToFoodResponse(f *entities.Food) domain.FoodResponse {
	res := domain.FoodResponse{
		ID:            f.ID.String(),
		StoreID:       f.StoreID.String(),
		Name:          f.Name,
		Description:   f.Description,
		OriginalPrice: f.OriginalPrice.StringFixed(2),
		CurrentPrice:  f.CurrentPrice.StringFixed(2),
		Quantity:      f.Quantity,
		ExpiryDate:    f.ExpiryDate,
		ImageURL:      f.ImageURL,
		Status:        string(f.Status),
		Tags:          f.TagNames(),
		PostedAt:      f.PostedAt,
		IsActive:      f.IsActive,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	if f.CategoryID != nil {
		id := f.CategoryID.String()
		res.CategoryID = &id
	}
	return res
}

func toFoodList(foods []entities.Food, total int64, p domain.Pagination) domain.FoodListResponse {
	items := make([]domain.FoodResponse, 0, len(foods))
	for i := range foods {
		items = append(items, ToFoodResponse(&foods[i]))
	}
	return domain.FoodListResponse{Items: items, Pagination: p.Response(total)}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrFoodNotFound
	}
	return err
}

// normalizeTags trims, drops blanks and removes duplicates. Tags are a set and come back sorted.
func normalizeTags(tags []string) []entities.FoodTag {
	seen := make(map[string]struct{}, len(tags))
	out := make([]entities.FoodTag, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, entities.FoodTag{Tag: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

func validatePrices(original, current decimal.Decimal) error {
	if original.IsNegative() || current.IsNegative() {
		return domain.ErrInvalidPrice
	}
	if current.GreaterThan(original) {
		return domain.ErrPriceAboveOriginal
	}
	return nil
}

func (s *foodService) resolveCategory(ctx context.Context, id string) (*uuid.UUID, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	if _, err := s.categoryRepository.GetByID(ctx, categoryID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &categoryID, nil
}

func (s *foodService) callerStore(ctx context.Context, identity domain.Identity) (*entities.Store, error) {
	st, err := s.storeRepository.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	return st, nil
}

// owned loads a listing that belongs to the caller's store. Admins pass when allowAdmin is set.
func (s *foodService) owned(ctx context.Context, identity domain.Identity, id string, allowAdmin bool) (*entities.Food, error) {
	food, err := s.foodRepository.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if allowAdmin && identity.HasRole(domain.RoleAdmin) {
		return food, nil
	}
	if !identity.HasRole(domain.RoleStore) {
		return nil, domain.ErrUnauthorizedFoodAccess
	}
	st, err := s.callerStore(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, domain.ErrUnauthorizedFoodAccess
		}
		return nil, err
	}
	if st.ID != food.StoreID {
		return nil, domain.ErrUnauthorizedFoodAccess
	}
	return food, nil
}

func (s *foodService) CreateFood(ctx context.Context, identity domain.Identity, req domain.CreateFoodRequest) (domain.FoodResponse, error) {
	if !identity.HasRole(domain.RoleStore) {
		return domain.FoodResponse{}, domain.ErrForbidden
	}
	st, err := s.callerStore(ctx, identity)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FoodResponse{}, domain.ErrNameRequired
	}
	if err := validatePrices(req.OriginalPrice, req.CurrentPrice); err != nil {
		return domain.FoodResponse{}, err
	}
	if req.Quantity < 0 {
		return domain.FoodResponse{}, domain.ErrInvalidQuantity
	}
	if req.ExpiryDate.IsZero() {
		return domain.FoodResponse{}, domain.ErrInvalidExpiryDate
	}

	food := &entities.Food{
		StoreID:       st.ID,
		Name:          name,
		Description:   req.Description,
		OriginalPrice: req.OriginalPrice.Round(2),
		CurrentPrice:  req.CurrentPrice.Round(2),
		Quantity:      req.Quantity,
		ExpiryDate:    req.ExpiryDate.UTC(),
		Status:        entities.FoodAvailable,
		IsActive:      true,
		Tags:          normalizeTags(req.Tags),
	}
	if req.CategoryID != "" {
		if food.CategoryID, err = s.resolveCategory(ctx, req.CategoryID); err != nil {
			return domain.FoodResponse{}, err
		}
	}

	if err := s.foodRepository.Create(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}
	return ToFoodResponse(food), nil
}

func (s *foodService) UpdateFood(ctx context.Context, identity domain.Identity, id string, req domain.UpdateFoodRequest) (domain.FoodResponse, error) {
	food, err := s.owned(ctx, identity, id, false)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	if req.Name.Present {
		name := strings.TrimSpace(req.Name.Value)
		if req.Name.Null || name == "" {
			return domain.FoodResponse{}, domain.ErrNameRequired
		}
		food.Name = name
	}
	if req.Description.Present {
		food.Description = req.Description.Value
	}
	if req.CategoryID.Present {
		if req.CategoryID.Null || req.CategoryID.Value == "" {
			food.CategoryID = nil
		} else if food.CategoryID, err = s.resolveCategory(ctx, req.CategoryID.Value); err != nil {
			return domain.FoodResponse{}, err
		}
	}
	if req.OriginalPrice.Set() {
		food.OriginalPrice = req.OriginalPrice.Value.Round(2)
	}
	if req.CurrentPrice.Set() {
		food.CurrentPrice = req.CurrentPrice.Value.Round(2)
	}
	if err := validatePrices(food.OriginalPrice, food.CurrentPrice); err != nil {
		return domain.FoodResponse{}, err
	}
	if req.Quantity.Set() {
		if req.Quantity.Value < 0 {
			return domain.FoodResponse{}, domain.ErrInvalidQuantity
		}
		food.Quantity = req.Quantity.Value
	}
	if req.ExpiryDate.Present {
		if req.ExpiryDate.Null || req.ExpiryDate.Value.IsZero() {
			return domain.FoodResponse{}, domain.ErrInvalidExpiryDate
		}
		food.ExpiryDate = req.ExpiryDate.Value.UTC()
	}
	if req.Tags.Present {
		food.Tags = normalizeTags(req.Tags.Value)
	}
	if req.IsActive.Set() {
		food.IsActive = req.IsActive.Value
	}

	if err := s.foodRepository.Update(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}
	return ToFoodResponse(food), nil
}

func (s *foodService) DeleteFood(ctx context.Context, identity domain.Identity, id string) error {
	food, err := s.owned(ctx, identity, id, true)
	if err != nil {
		return err
	}
	if err := s.foodRepository.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	if food.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(food.ImageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				log.Warnf("food image %s not removed: %v", key, err)
			}
		}
	}
	return nil
}

func (s *foodService) GetFood(ctx context.Context, id string) (domain.FoodResponse, error) {
	food, err := s.foodRepository.GetByID(ctx, id)
	if err != nil {
		return domain.FoodResponse{}, notFound(err)
	}
	if !food.IsActive {
		return domain.FoodResponse{}, domain.ErrFoodNotFound
	}
	return ToFoodResponse(food), nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, identity domain.Identity, id string, req domain.UploadFoodImageRequest) (domain.FoodResponse, error) {
	food, err := s.owned(ctx, identity, id, false)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	var objectKey string
	if food.ImageURL != "" {
		objectKey = s.s3.GetObjectKeyFromLink(food.ImageURL)
	}
	if objectKey != "" {
		objectKey, err = s.s3.UpdateFile(ctx, objectKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, "food-"+food.ID.String(), req.Image, "foods", storage.AllowImage...)
	}
	if err != nil {
		return domain.FoodResponse{}, err
	}

	food.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.foodRepository.Update(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}
	return ToFoodResponse(food), nil
}

func (s *foodService) ChangeStatus(ctx context.Context, identity domain.Identity, id string, status string) (domain.FoodResponse, error) {
	next, ok := entities.ParseFoodStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !ok {
		return domain.FoodResponse{}, domain.ErrInvalidFoodStatus
	}

	food, err := s.owned(ctx, identity, id, true)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	if food.Status == next {
		return ToFoodResponse(food), nil
	}
	if !food.Status.CanTransitionTo(next) {
		return domain.FoodResponse{}, domain.ErrInvalidStatusChange
	}

	food.Status = next
	if err := s.foodRepository.Update(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}
	return ToFoodResponse(food), nil
}

func (s *foodService) ListByStore(ctx context.Context, storeID string, p domain.Pagination) (domain.FoodListResponse, error) {
	foods, total, err := s.foodRepository.FindByStore(ctx, storeID, p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

func (s *foodService) ListByCategory(ctx context.Context, categoryID string, p domain.Pagination) (domain.FoodListResponse, error) {
	foods, total, err := s.foodRepository.FindByCategory(ctx, categoryID, p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

func (s *foodService) ListByStatus(ctx context.Context, status string, p domain.Pagination) (domain.FoodListResponse, error) {
	parsed, ok := entities.ParseFoodStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !ok {
		return domain.FoodListResponse{}, domain.ErrInvalidFoodStatus
	}
	foods, total, err := s.foodRepository.FindByStatus(ctx, parsed, p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

// ListByPriceRange needs both bounds, min not above max.
func (s *foodService) ListByPriceRange(ctx context.Context, min, max *decimal.Decimal, p domain.Pagination) (domain.FoodListResponse, error) {
	if min == nil || max == nil || min.GreaterThan(*max) {
		return domain.FoodListResponse{}, domain.ErrInvalidPriceRange
	}
	foods, total, err := s.foodRepository.FindByPriceRange(ctx, *min, *max, p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

func (s *foodService) ListByTag(ctx context.Context, tag string, p domain.Pagination) (domain.FoodListResponse, error) {
	foods, total, err := s.foodRepository.FindByTag(ctx, strings.TrimSpace(tag), p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

func (s *foodService) ListExpired(ctx context.Context, now time.Time, p domain.Pagination) (domain.FoodListResponse, error) {
	foods, total, err := s.foodRepository.FindExpired(ctx, now, p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

func (s *foodService) Search(ctx context.Context, filter domain.FoodFilter, p domain.Pagination) (domain.FoodListResponse, error) {
	if filter.Status != "" {
		parsed, ok := entities.ParseFoodStatus(strings.ToUpper(strings.TrimSpace(filter.Status)))
		if !ok {
			return domain.FoodListResponse{}, domain.ErrInvalidFoodStatus
		}
		filter.Status = string(parsed)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return domain.FoodListResponse{}, domain.ErrInvalidPriceRange
	}
	foods, total, err := s.foodRepository.Search(ctx, filter, p)
	if err != nil {
		return domain.FoodListResponse{}, err
	}
	return toFoodList(foods, total, p), nil
}

func (s *foodService) CountByStore(ctx context.Context, storeID string) (domain.FoodCountResponse, error) {
	if _, err := s.storeRepository.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodCountResponse{}, domain.ErrStoreNotFound
		}
		return domain.FoodCountResponse{}, err
	}
	count, err := s.foodRepository.CountActiveByStore(ctx, storeID)
	if err != nil {
		return domain.FoodCountResponse{}, err
	}
	return domain.FoodCountResponse{StoreID: storeID, Count: count}, nil
}

func (s *foodService) SweepExpired(ctx context.Context, now time.Time) (domain.SweepResult, error) {
	n, err := s.foodRepository.MarkExpired(ctx, now)
	if err != nil {
		return domain.SweepResult{}, err
	}
	if n > 0 {
		log.Infof("marked %d food listings as expired", n)
	}
	return domain.SweepResult{Expired: n, At: now.UTC()}, nil
}
