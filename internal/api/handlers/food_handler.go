package handlers

import (
	"time"

	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/pkg/food"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	FoodHandler interface {
		ListFoods(c *fiber.Ctx) error
		SearchFoods(c *fiber.Ctx) error
		ListExpiredFoods(c *fiber.Ctx) error
		GetFood(c *fiber.Ctx) error
		CreateFood(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		ChangeFoodStatus(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		CountStoreFoods(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.ErrInvalidPriceRange
	}
	return &d, nil
}

func foodFilter(c *fiber.Ctx) (domain.FoodFilter, error) {
	filter := domain.FoodFilter{
		StoreID:    c.Query("store_id"),
		CategoryID: c.Query("category_id"),
		Status:     c.Query("status"),
		Tag:        c.Query("tag"),
		Keyword:    c.Query("q"),
	}
	for _, id := range []*string{&filter.StoreID, &filter.CategoryID} {
		if *id == "" {
			continue
		}
		parsed, err := uuid.Parse(*id)
		if err != nil {
			return filter, domain.ErrParseUUID
		}
		*id = parsed.String()
	}

	var err error
	if filter.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListFoods serves the single-condition catalog queries. A request naming more
// than one condition falls through to the composite search.
func (h *foodHandler) ListFoods(c *fiber.Ctx) error {
	filter, err := foodFilter(c)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}
	p := pagination(c)

	conditions := 0
	for _, set := range []bool{
		filter.StoreID != "",
		filter.CategoryID != "",
		filter.Status != "",
		filter.MinPrice != nil || filter.MaxPrice != nil,
		filter.Tag != "",
		filter.Keyword != "",
	} {
		if set {
			conditions++
		}
	}

	var res domain.FoodListResponse
	switch {
	case conditions > 1 || filter.Keyword != "":
		res, err = h.foodService.Search(c.Context(), filter, p)
	case filter.StoreID != "":
		res, err = h.foodService.ListByStore(c.Context(), filter.StoreID, p)
	case filter.CategoryID != "":
		res, err = h.foodService.ListByCategory(c.Context(), filter.CategoryID, p)
	case filter.Status != "":
		res, err = h.foodService.ListByStatus(c.Context(), filter.Status, p)
	case filter.MinPrice != nil || filter.MaxPrice != nil:
		res, err = h.foodService.ListByPriceRange(c.Context(), filter.MinPrice, filter.MaxPrice, p)
	case filter.Tag != "":
		res, err = h.foodService.ListByTag(c.Context(), filter.Tag, p)
	default:
		res, err = h.foodService.Search(c.Context(), filter, p)
	}
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) SearchFoods(c *fiber.Ctx) error {
	filter, err := foodFilter(c)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}

	res, err := h.foodService.Search(c.Context(), filter, pagination(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) ListExpiredFoods(c *fiber.Ctx) error {
	before := time.Now()
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoods, domain.ErrInvalidExpiryDate)
		}
		before = t
	}

	res, err := h.foodService.ListExpired(c.Context(), before, pagination(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetFood(c *fiber.Ctx) error {
	foodID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}

	res, err := h.foodService.GetFood(c.Context(), foodID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFoods, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) CreateFood(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	req := new(domain.CreateFoodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFood, err)
	}

	res, err := h.foodService.CreateFood(c.Context(), id, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAddFood, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFood)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	foodID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateFood, err)
	}

	req := new(domain.UpdateFoodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.foodService.UpdateFood(c.Context(), id, foodID, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateFood, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFood)
}

func (h *foodHandler) ChangeFoodStatus(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	foodID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedChangeFoodStatus, err)
	}

	req := new(domain.ChangeFoodStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChangeFoodStatus, err)
	}

	res, err := h.foodService.ChangeStatus(c.Context(), id, foodID, req.Status)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedChangeFoodStatus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessChangeFoodStatus)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	foodID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadFoodImage, err)
	}

	file, err := imageUpload(c)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadFoodImage, err)
	}

	res, err := h.foodService.UploadFoodImage(c.Context(), id, foodID, domain.UploadFoodImageRequest{Image: file})
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadFoodImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	foodID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteFood, err)
	}

	if err := h.foodService.DeleteFood(c.Context(), id, foodID); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteFood, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFood)
}

func (h *foodHandler) CountStoreFoods(c *fiber.Ctx) error {
	storeID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCountFoods, err)
	}

	res, err := h.foodService.CountByStore(c.Context(), storeID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCountFoods, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCountFoods)
}
