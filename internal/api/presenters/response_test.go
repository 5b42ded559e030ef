package presenters

import (
	"errors"
	"fmt"
	"testing"

	"foodloss-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{domain.ErrTokenRevoked, fiber.StatusUnauthorized},
		{domain.ErrEmailAlreadyUsed, fiber.StatusConflict},
		{gorm.ErrDuplicatedKey, fiber.StatusConflict},
		{fmt.Errorf("%w: admin accounts cannot self-register", domain.ErrForbidden), fiber.StatusForbidden},
		{domain.ErrInvalidPriceRange, fiber.StatusBadRequest},
		{fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), fiber.StatusRequestEntityTooLarge},
		{errors.New("connection reset"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), tc.err.Error())
	}
}
