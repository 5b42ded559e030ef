package handlers

import (
	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/pkg/cart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CartHandler interface {
		ListItems(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		RemoveItem(c *fiber.Ctx) error
		Clear(c *fiber.Ctx) error
		ListOrders(c *fiber.Ctx) error
	}

	cartHandler struct {
		cartService cart.CartService
		validator   *validator.Validate
	}
)

func NewCartHandler(cartService cart.CartService, validator *validator.Validate) CartHandler {
	return &cartHandler{
		cartService: cartService,
		validator:   validator,
	}
}

func (h *cartHandler) ListItems(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	res, err := h.cartService.ListItems(c.Context(), id)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetCart, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCart)
}

func (h *cartHandler) AddItem(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	req := new(domain.AddCartItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddCartItem, err)
	}

	res, err := h.cartService.AddItem(c.Context(), id, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAddCartItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddCartItem)
}

func (h *cartHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	itemID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedRemoveCartItem, err)
	}

	if err := h.cartService.RemoveItem(c.Context(), id, itemID); err != nil {
		return presenters.Fail(c, domain.MessageFailedRemoveCartItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveCartItem)
}

func (h *cartHandler) Clear(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	if err := h.cartService.Clear(c.Context(), id); err != nil {
		return presenters.Fail(c, domain.MessageFailedClearCart, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearCart)
}

func (h *cartHandler) ListOrders(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	res, err := h.cartService.ListOrders(c.Context(), id)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}
