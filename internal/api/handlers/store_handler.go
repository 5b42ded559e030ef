package handlers

import (
	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/pkg/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StoreHandler interface {
		ListStores(c *fiber.Ctx) error
		GetStore(c *fiber.Ctx) error
		RegisterStore(c *fiber.Ctx) error
		UpdateStore(c *fiber.Ctx) error
		UploadStoreImage(c *fiber.Ctx) error
		DeleteStore(c *fiber.Ctx) error
	}

	storeHandler struct {
		storeService store.StoreService
		validator    *validator.Validate
	}
)

func NewStoreHandler(storeService store.StoreService, validator *validator.Validate) StoreHandler {
	return &storeHandler{
		storeService: storeService,
		validator:    validator,
	}
}

func (h *storeHandler) ListStores(c *fiber.Ctx) error {
	res, err := h.storeService.ListStores(c.Context(), pagination(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetStores, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStores)
}

func (h *storeHandler) GetStore(c *fiber.Ctx) error {
	storeID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetStores, err)
	}

	res, err := h.storeService.GetStore(c.Context(), storeID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetStores, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStores)
}

func (h *storeHandler) RegisterStore(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	req := new(domain.RegisterStoreRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterStore, err)
	}

	res, err := h.storeService.RegisterStore(c.Context(), id, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedRegisterStore, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegisterStore)
}

func (h *storeHandler) UpdateStore(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	storeID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateStore, err)
	}

	req := new(domain.UpdateStoreRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.storeService.UpdateStore(c.Context(), id, storeID, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateStore, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStore)
}

func (h *storeHandler) UploadStoreImage(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	storeID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadStoreImage, err)
	}

	file, err := imageUpload(c)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadStoreImage, err)
	}

	res, err := h.storeService.UploadStoreImage(c.Context(), id, storeID, domain.UploadStoreImageRequest{Image: file})
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadStoreImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadStoreImage)
}

func (h *storeHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	storeID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteStore, err)
	}

	if err := h.storeService.DeleteStore(c.Context(), id, storeID); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteStore, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteStore)
}
