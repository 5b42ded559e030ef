package handlers

import (
	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/pkg/health"

	"github.com/gofiber/fiber/v2"
)

type (
	HealthHandler interface {
		Ping(c *fiber.Ctx) error
		Health(c *fiber.Ctx) error
	}

	healthHandler struct {
		healthService health.HealthService
	}
)

func NewHealthHandler(healthService health.HealthService) HealthHandler {
	return &healthHandler{healthService: healthService}
}

func (h *healthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}

func (h *healthHandler) Health(c *fiber.Ctx) error {
	res, err := h.healthService.Check(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedHealth, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessHealth)
}
