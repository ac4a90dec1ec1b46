package handlers

import (
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SupportHandler struct {
	svc services.SupportService
}

func NewSupportHandler(svc services.SupportService) *SupportHandler {
	return &SupportHandler{svc: svc}
}

func (h *SupportHandler) SetupRoutes(app *fiber.App) {
	app.Post("/api/support", h.Create)
}

// Create godoc
// @Summary Open a support ticket
// @Tags support
// @Accept json
// @Produce json
// @Param body body dto.SupportTicketRequest true "ticket"
// @Success 201 {object} map[string]domain.SupportTicket
// @Failure 400 {object} dto.APIError
// @Router /api/support [post]
func (h *SupportHandler) Create(ctx *fiber.Ctx) error {
	var req dto.SupportTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	ticket, err := h.svc.Create(ctx.UserContext(), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"ticket": ticket})
}
