package middleware

import (
	"strings"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "userID"
	LocalUser   = "user"
)

// AuthMiddleware reads the Authorization header, falling back to the
// access_token cookie.
func AuthMiddleware(identity services.IdentityService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Cookies("access_token"))
		}

		claims, err := identity.VerifyToken(ctx.UserContext(), tokenStr)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}

		ctx.Locals(LocalUserID, claims.SubjectID)
		ctx.Locals(LocalUser, claims)
		return ctx.Next()
	}
}

// SubjectID returns the subject placed in locals by AuthMiddleware.
func SubjectID(ctx *fiber.Ctx) (string, error) {
	id, ok := ctx.Locals(LocalUserID).(string)
	if !ok || id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

func AdminOnly(userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := SubjectID(ctx)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		if _, err := userSvc.AdminGate(ctx.UserContext(), id); err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		return ctx.Next()
	}
}

// SameSubject requires the path parameter param to name the caller.
func SameSubject(param string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := SubjectID(ctx)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		if ctx.Params(param) != id {
			return utils.ResponseFromError(ctx, domain.ErrForbidden.WithMessage("%s does not match the caller", param))
		}
		return ctx.Next()
	}
}

// PaidOnly lets through callers whose payment is confirmed. Admins pass.
func PaidOnly(userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := SubjectID(ctx)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		paid, err := userSvc.IsPaid(ctx.UserContext(), id)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}
		if !paid {
			return utils.ResponseFromError(ctx, domain.ErrPaymentRequired)
		}
		return ctx.Next()
	}
}
