package handlers

import (
	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Login(c *fiber.Ctx) error
		Register(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		SendVerificationEmail(c *fiber.Ctx) error
		VerifyEmail(c *fiber.Ctx) error
		UploadAvatar(c *fiber.Ctx) error
		SetUserActive(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedLogin, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedRegister, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	res, err := h.userService.Me(c.Context(), id)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetUser, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *userHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	res, err := h.userService.UpdateProfile(c.Context(), id, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateProfile, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	if err := h.userService.Logout(c.Context(), id); err != nil {
		return presenters.Fail(c, domain.MessageFailedLogout, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *userHandler) SendVerificationEmail(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	if err := h.userService.SendVerificationEmail(c.Context(), id); err != nil {
		return presenters.Fail(c, domain.MessageFailedSendVerifyEmail, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendVerifyEmail)
}

func (h *userHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyEmail, domain.ErrTokenNotFound)
	}

	if err := h.userService.VerifyEmail(c.Context(), token); err != nil {
		return presenters.Fail(c, domain.MessageFailedVerifyEmail, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessVerifyEmail)
}

func (h *userHandler) UploadAvatar(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}

	file, err := imageUpload(c)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadAvatar, err)
	}

	res, err := h.userService.UploadAvatar(c.Context(), id, domain.UploadAvatarRequest{Image: file})
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadAvatar, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadAvatar)
}

func (h *userHandler) SetUserActive(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return unauthorized(c, err)
	}
	userID, err := idParam(c, "id")
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateUserActive, err)
	}

	req := new(domain.SetUserActiveRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateUserActive, err)
	}

	res, err := h.userService.SetActive(c.Context(), id, userID, *req.IsActive)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateUserActive, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUserActive)
}
