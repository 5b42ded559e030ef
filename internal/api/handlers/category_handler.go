package handlers

import (
	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/pkg/category"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CategoryHandler interface {
		ListCategories(c *fiber.Ctx) error
		CreateCategory(c *fiber.Ctx) error
		UpdateCategory(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
		validator       *validator.Validate
	}
)

func NewCategoryHandler(categoryService category.CategoryService, validator *validator.Validate) CategoryHandler {
	return &categoryHandler{
		categoryService: categoryService,
		validator:       validator,
	}
}

func (h *categoryHandler) ListCategories(c *fiber.Ctx) error {
	res, err := h.categoryService.ListCategories(c.Context())
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetCategories, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *categoryHandler) CreateCategory(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	req := new(domain.CreateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCategory, err)
	}

	res, err := h.categoryService.CreateCategory(c.Context(), id, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCategory)
}

func (h *categoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	categoryID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateCategory, err)
	}

	req := new(domain.UpdateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.categoryService.UpdateCategory(c.Context(), id, categoryID, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCategory)
}
