package handlers

import (
	"github.com/SundayYogurt/league_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReferralHandler struct {
	svc      services.ReferralService
	identity services.IdentityService
}

func NewReferralHandler(svc services.ReferralService, identity services.IdentityService) *ReferralHandler {
	return &ReferralHandler{svc: svc, identity: identity}
}

func (h *ReferralHandler) SetupRoutes(app *fiber.App) {
	referral := app.Group("/api/referral")

	// registered before the code lookup so "rewards" is not read as a code
	referral.Get("/rewards", middleware.AuthMiddleware(h.identity), h.ListRewards)
	referral.Get("/:referralCode", h.Lookup)
}

// Lookup godoc
// @Summary Show who owns a referral code
// @Tags referral
// @Produce json
// @Param referralCode path string true "referral code"
// @Success 200 {object} map[string]dto.ReferralUserResponse
// @Failure 401 {object} dto.APIError
// @Router /api/referral/{referralCode} [get]
func (h *ReferralHandler) Lookup(ctx *fiber.Ctx) error {
	user, err := h.svc.Lookup(ctx.UserContext(), ctx.Params("referralCode"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"referralUser": user})
}

func (h *ReferralHandler) ListRewards(ctx *fiber.Ctx) error {
	uid, err := middleware.SubjectID(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	rewards, err := h.svc.ListRewards(ctx.UserContext(), uid)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"rewards": rewards})
}
