package handlers

import (
	"strconv"

	"github.com/SundayYogurt/league_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves /api/admin. Every route carries the admin's own id
// as :uid, which must match the token.
type AdminHandler struct {
	users    services.UserService
	payments services.PaymentService
	support  services.SupportService
	identity services.IdentityService
}

func NewAdminHandler(
	users services.UserService,
	payments services.PaymentService,
	support services.SupportService,
	identity services.IdentityService,
) *AdminHandler {
	return &AdminHandler{
		users:    users,
		payments: payments,
		support:  support,
		identity: identity,
	}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App) {
	admin := app.Group("/api/admin",
		middleware.AuthMiddleware(h.identity),
		middleware.AdminOnly(h.users),
	)
	self := middleware.SameSubject("uid")

	admin.Get("/support/:uid", self, h.ListTickets)
	admin.Patch("/support/:uid", self, h.SolveTicket)

	admin.Get("/users/:uid", self, h.ListUsers)
	admin.Delete("/users/:uid/:targetId", self, h.DeleteUser)
	admin.Patch("/edit-user/:uid", self, h.EditUser)

	admin.Get("/cash-payments/:uid", self, h.ListCashPayments)
}

func (h *AdminHandler) ListTickets(ctx *fiber.Ctx) error {
	var solved *bool
	if raw := ctx.Query("solved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "solved must be true or false")
		}
		solved = &v
	}

	tickets, err := h.support.List(ctx.UserContext(), ctx.Params("uid"), solved)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.SupportTicketListResponse{Tickets: tickets})
}

func (h *AdminHandler) SolveTicket(ctx *fiber.Ctx) error {
	var req dto.SolveTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.support.SetSolved(ctx.UserContext(), ctx.Params("uid"), req.TicketID, req.Solved); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "ticket updated"})
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param uid path string true "admin id"
// @Param limit query int false "page size"
// @Param offset query int false "offset"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} dto.APIError
// @Router /api/admin/users/{uid} [get]
func (h *AdminHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := h.users.ListUsers(ctx.UserContext(), ctx.Params("uid"), ctx.QueryInt("limit", 100), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.UserListResponse{Users: users})
}

func (h *AdminHandler) EditUser(ctx *fiber.Ctx) error {
	var req dto.AdminEditRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if req.UserID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "userId is required")
	}

	user, err := h.users.AdminEdit(ctx.UserContext(), ctx.Params("uid"), req.UserID, req.AdminEditUser)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.UserResponse{User: user})
}

func (h *AdminHandler) DeleteUser(ctx *fiber.Ctx) error {
	if err := h.users.Delete(ctx.UserContext(), ctx.Params("uid"), ctx.Params("targetId")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}

func (h *AdminHandler) ListCashPayments(ctx *fiber.Ctx) error {
	reqs, err := h.payments.ListCashRequests(ctx.UserContext(), ctx.Params("uid"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.CashPaymentListResponse{CashPayments: reqs})
}
