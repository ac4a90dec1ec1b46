package handlers

import (
	"github.com/SundayYogurt/league_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	identity services.IdentityService
}

func NewAuthHandler(identity services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", h.CreateAccount)
	auth.Post("/login", h.Login)
	auth.Get("/verify-email", h.VerifyEmail)
	auth.Delete("/account", middleware.AuthMiddleware(h.identity), h.DeleteOrphan)
}

// CreateAccount godoc
// @Summary Create an identity account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.IdentitySignup true "credentials"
// @Success 201 {object} map[string]string
// @Failure 400 {object} dto.APIError
// @Router /api/auth/register [post]
func (h *AuthHandler) CreateAccount(ctx *fiber.Ctx) error {
	var req dto.IdentitySignup
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	uid, err := h.identity.CreateAccount(ctx.UserContext(), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"uid": uid})
}

// Login godoc
// @Summary Sign in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.UserLogin true "credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 403 {object} dto.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var req dto.UserLogin
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	resp, err := h.identity.SignIn(ctx.UserContext(), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) VerifyEmail(ctx *fiber.Ctx) error {
	if err := h.identity.VerifyEmail(ctx.UserContext(), ctx.Query("token")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "email verified"})
}

// DeleteOrphan lets a client undo account creation after registration failed.
func (h *AuthHandler) DeleteOrphan(ctx *fiber.Ctx) error {
	uid, err := middleware.SubjectID(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	if err := h.identity.DeleteOrphan(ctx.UserContext(), uid); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "account deleted"})
}
