package handlers

import (
	"mime/multipart"

	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/internal/middleware"
	"foodloss-backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func pagination(c *fiber.Ctx) domain.Pagination {
	return domain.NewPagination(c.QueryInt("page", 1), c.QueryInt("limit", domain.DefaultPageLimit))
}

// idParam reads a UUID route parameter in canonical form.
func idParam(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", domain.ErrParseUUID
	}
	return id.String(), nil
}

func identity(c *fiber.Ctx) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrTokenNotFound
	}
	return id, nil
}

// unauthorized is returned when a protected handler runs without AuthMiddleware.
func unauthorized(c *fiber.Ctx, err error) error {
	return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, err)
}

func imageUpload(c *fiber.Ctx) (*multipart.FileHeader, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return nil, domain.ErrInvalidFile
	}
	if file.Size > storage.MaxUploadSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "画像は5MB以内にしてください")
	}
	return file, nil
}
