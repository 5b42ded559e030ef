package presenters

import (
	"errors"

	"foodloss-backend/domain"
	"foodloss-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the failure envelope. Validator errors are expanded into
// per-field messages; anything that reaches a 5xx is logged and hidden from the client.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{Status: false, Message: message}

	switch {
	case err == nil:
	case utils.ValidationMessages(err) != nil:
		res.Message = domain.MessageValidationFailed
		res.Error = utils.ValidationMessages(err)
	case code >= fiber.StatusInternalServerError:
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		res.Error = domain.MessageFailedProcessRequest
	default:
		res.Error = err.Error()
	}

	return c.Status(code).JSON(res)
}

var statusByError = []struct {
	err  error
	code int
}{
	{gorm.ErrRecordNotFound, fiber.StatusNotFound},
	{domain.ErrUserNotFound, fiber.StatusNotFound},
	{domain.ErrFoodNotFound, fiber.StatusNotFound},
	{domain.ErrStoreNotFound, fiber.StatusNotFound},
	{domain.ErrCategoryNotFound, fiber.StatusNotFound},
	{domain.ErrCartItemNotFound, fiber.StatusNotFound},

	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{domain.ErrTokenNotFound, fiber.StatusUnauthorized},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized},
	{domain.ErrTokenRevoked, fiber.StatusUnauthorized},

	{domain.ErrForbidden, fiber.StatusForbidden},
	{domain.ErrUserNotAllowed, fiber.StatusForbidden},
	{domain.ErrUnauthorizedFoodAccess, fiber.StatusForbidden},
	{domain.ErrUnauthorizedStoreAccess, fiber.StatusForbidden},

	{domain.ErrEmailAlreadyUsed, fiber.StatusConflict},
	{domain.ErrStoreAlreadyExists, fiber.StatusConflict},
	{domain.ErrCategoryAlreadyExists, fiber.StatusConflict},
	{domain.ErrEmailAlreadyVerified, fiber.StatusConflict},
	{domain.ErrInvalidStatusChange, fiber.StatusConflict},
	{gorm.ErrDuplicatedKey, fiber.StatusConflict},

	{domain.ErrParseUUID, fiber.StatusBadRequest},
	{domain.ErrInvalidRole, fiber.StatusBadRequest},
	{domain.ErrPasswordTooLong, fiber.StatusBadRequest},
	{domain.ErrNameRequired, fiber.StatusBadRequest},
	{domain.ErrInvalidNotification, fiber.StatusBadRequest},
	{domain.ErrInvalidFile, fiber.StatusBadRequest},
	{domain.ErrInvalidPrice, fiber.StatusBadRequest},
	{domain.ErrPriceAboveOriginal, fiber.StatusBadRequest},
	{domain.ErrInvalidPriceRange, fiber.StatusBadRequest},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest},
	{domain.ErrInvalidExpiryDate, fiber.StatusBadRequest},
	{domain.ErrInvalidFoodStatus, fiber.StatusBadRequest},
}

// StatusCode maps a service error to its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	if utils.ValidationMessages(err) != nil {
		return fiber.StatusBadRequest
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return fiber.StatusInternalServerError
}

// Fail is ErrorResponse with the status derived from err.
func Fail(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusCode(err), message, err)
}
