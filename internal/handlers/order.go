package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/templhub/internal/middleware"
	"github.com/example/templhub/internal/services"
)

// OrderHandler manages purchase attempts and status verification.
type OrderHandler struct {
	checkout  *services.CheckoutService
	reconcile *services.ReconcileService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, reconcile *services.ReconcileService) *OrderHandler {
	return &OrderHandler{checkout: checkout, reconcile: reconcile}
}

type createOrderRequest struct {
	TemplateID string `json:"template_id"`
}

// CreateOrder starts (or resumes) a purchase attempt and returns the
// gateway redirect URL.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.TemplateID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "template_id is required")
	}

	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid template_id")
	}

	result, err := h.checkout.CreateOrGetOrder(c.Context(), userID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTemplateNotFound):
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		case errors.Is(err, services.ErrAlreadyPurchased):
			return fiber.NewError(fiber.StatusConflict, "already purchased")
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{
		"order_id":    result.OrderID,
		"memo":        result.Memo,
		"payment_url": result.PaymentURL,
	})
}

// VerifyOrder reports the payment status for one of the caller's orders,
// consulting the gateway when the order is still pending.
func (h *OrderHandler) VerifyOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	memo := c.Query("memo")
	if memo == "" {
		return fiber.NewError(fiber.StatusBadRequest, "memo is required")
	}

	result, err := h.reconcile.VerifyOrder(c.Context(), userID, memo)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"payment_status": result.PaymentStatus,
		"template_name":  result.TemplateName,
	})
}
