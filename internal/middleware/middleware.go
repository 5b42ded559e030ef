package middleware

import (
	"context"
	"errors"
	"strings"

	"foodloss-backend/domain"
	"foodloss-backend/internal/api/presenters"
	"foodloss-backend/internal/utils"
	"foodloss-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const identityKey = "identity"

type (
	// SessionChecker confirms a verified token still belongs to a live session:
	// not logged out and owned by an active account.
	SessionChecker interface {
		CheckSession(ctx context.Context, identity domain.Identity) error
	}

	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RequireRole(roles ...string) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct {
		sessions SessionChecker
	}
)

func NewMiddleware(sessions SessionChecker) Middleware {
	return &middleware{sessions: sessions}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		identity, err := jwtService.ParseIdentity(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		if m.sessions != nil {
			if err := m.sessions.CheckSession(c.UserContext(), identity); err != nil {
				if errors.Is(err, domain.ErrTokenRevoked) ||
					errors.Is(err, domain.ErrTokenInvalid) ||
					errors.Is(err, domain.ErrUserNotFound) {
					return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
				}
				return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
			}
		}

		c.Locals(identityKey, identity)
		c.Locals("user_id", identity.UserID)
		c.Locals("email", identity.Email)
		c.Locals("role", identity.Role)
		return c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func (m *middleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.HasRole(roles...) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: utils.GetConfig("CORS_ORIGINS"),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// IdentityFrom returns the caller resolved by AuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}
