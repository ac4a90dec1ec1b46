package handlers

import (
	"github.com/SundayYogurt/league_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc      services.UserService
	identity services.IdentityService
}

func NewUserHandler(svc services.UserService, identity services.IdentityService) *UserHandler {
	return &UserHandler{svc: svc, identity: identity}
}

func (h *UserHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/register", h.Register)

	user := api.Group("/user", middleware.AuthMiddleware(h.identity))
	user.Get("/:uuid", middleware.PaidOnly(h.svc), h.GetUser)
	user.Patch("/:uuid", h.UpdateProfile)
}

// Register godoc
// @Summary Create the league profile for an identity account
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "profile"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.APIError
// @Failure 401 {object} dto.APIError "invalid referral code"
// @Router /api/register [post]
func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(ctx.UserContext(), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		UserID:       user.ID,
		ReferralCode: user.ReferralCode,
	})
}

// GetUser godoc
// @Summary Read a user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "user id"
// @Success 200 {object} dto.UserResponse
// @Failure 402 {object} dto.APIError
// @Router /api/user/{uuid} [get]
func (h *UserHandler) GetUser(ctx *fiber.Ctx) error {
	uid, err := middleware.SubjectID(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	user, err := h.svc.GetUser(ctx.UserContext(), uid, ctx.Params("uuid"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.UserResponse{User: user})
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	uid, err := middleware.SubjectID(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	var req dto.UpdateUserProfile
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.EditSelf(ctx.UserContext(), uid, ctx.Params("uuid"), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.UserResponse{User: user})
}
