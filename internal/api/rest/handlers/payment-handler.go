package handlers

import (
	"github.com/SundayYogurt/league_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	svc      services.PaymentService
	users    services.UserService
	identity services.IdentityService
}

func NewPaymentHandler(svc services.PaymentService, users services.UserService, identity services.IdentityService) *PaymentHandler {
	return &PaymentHandler{svc: svc, users: users, identity: identity}
}

func (h *PaymentHandler) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.identity)

	card := app.Group("/api/card-payment")
	card.Post("/intent", auth, h.CreateIntent)
	card.Patch("/:uid", h.VerifyCard)
	card.Patch("/:uid/transaction", auth, middleware.SameSubject("uid"), h.AttachTransaction)

	cash := app.Group("/api/cash-payment", auth)
	cash.Patch("/all/:adminUid", middleware.SameSubject("adminUid"), h.BatchApprove)
	cash.Patch("/:adminUid", middleware.SameSubject("adminUid"), h.Approve)
	cash.Get("/:uid", h.CheckCash)
	cash.Post("/:uid", h.RequestCash)
	cash.Delete("/:uid", h.DeleteCash)
}

// CreateIntent godoc
// @Summary Start a card payment
// @Tags card-payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateIntentRequest true "charge"
// @Success 201 {object} dto.PaymentIntentResponse
// @Failure 500 {object} dto.APIError
// @Router /api/card-payment/intent [post]
func (h *PaymentHandler) CreateIntent(ctx *fiber.Ctx) error {
	uid, err := middleware.SubjectID(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	var req dto.CreateIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	resp, err := h.svc.CreateIntent(ctx.UserContext(), uid, req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

// VerifyCard godoc
// @Summary Confirm a card payment with the processor
// @Tags card-payment
// @Accept json
// @Produce json
// @Param uid path string true "user id"
// @Param body body dto.VerifyCardRequest true "payment intent"
// @Success 200 {object} dto.UserResponse
// @Failure 402 {object} dto.APIError
// @Router /api/card-payment/{uid} [patch]
func (h *PaymentHandler) VerifyCard(ctx *fiber.Ctx) error {
	var req dto.VerifyCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseFromError(ctx, domain.ErrMissingParams.WithFields("paymentIntentId"))
	}

	user, err := h.svc.Verify(ctx.UserContext(), req.PaymentIntentID, ctx.Params("uid"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.UserResponse{User: user})
}

func (h *PaymentHandler) AttachTransaction(ctx *fiber.Ctx) error {
	var req dto.AttachTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.AttachTransactionID(ctx.UserContext(), ctx.Params("uid"), req.PaymentID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.UserResponse{User: user})
}

// selfOrAdmin allows the owner of :uid, or an admin.
func (h *PaymentHandler) selfOrAdmin(ctx *fiber.Ctx) (string, error) {
	caller, err := middleware.SubjectID(ctx)
	if err != nil {
		return "", err
	}
	uid := ctx.Params("uid")
	if uid == caller {
		return uid, nil
	}
	if _, err := h.users.AdminGate(ctx.UserContext(), caller); err != nil {
		return "", err
	}
	return uid, nil
}

func (h *PaymentHandler) CheckCash(ctx *fiber.Ctx) error {
	uid, err := h.selfOrAdmin(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	req, err := h.svc.CheckCash(ctx.UserContext(), uid)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.JSON(dto.CashPaymentResponse{CashPayment: req})
}

// RequestCash godoc
// @Summary Choose the cash payment path
// @Tags cash-payment
// @Produce json
// @Security BearerAuth
// @Param uid path string true "user id"
// @Success 201 {object} dto.CashPaymentResponse
// @Failure 400 {object} dto.APIError "request already exists"
// @Router /api/cash-payment/{uid} [post]
func (h *PaymentHandler) RequestCash(ctx *fiber.Ctx) error {
	uid, err := h.selfOrAdmin(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	req, err := h.svc.RequestCash(ctx.UserContext(), uid)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.CashPaymentResponse{CashPayment: req})
}

func (h *PaymentHandler) DeleteCash(ctx *fiber.Ctx) error {
	uid, err := h.selfOrAdmin(ctx)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	if err := h.svc.DeleteCash(ctx.UserContext(), uid); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "cash payment request deleted"})
}

// Approve godoc
// @Summary Approve or revoke one cash payment
// @Tags cash-payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adminUid path string true "admin id"
// @Param body body dto.CashApprovalRequest true "decision"
// @Success 200 {object} dto.APIMessage
// @Failure 403 {object} dto.APIError
// @Router /api/cash-payment/{adminUid} [patch]
func (h *PaymentHandler) Approve(ctx *fiber.Ctx) error {
	var req dto.CashApprovalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ApproveOrRevoke(ctx.UserContext(), ctx.Params("adminUid"), req.UserID, req.Paid); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "cash payment updated"})
}

func (h *PaymentHandler) BatchApprove(ctx *fiber.Ctx) error {
	var req dto.BatchCashApprovalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.BatchApproveOrRevoke(ctx.UserContext(), ctx.Params("adminUid"), req.UserIDs, req.Paid); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "cash payments updated"})
}
