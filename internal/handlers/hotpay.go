package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/templhub/internal/services"
)

// HotpayHandler receives asynchronous callbacks from the payment gateway.
type HotpayHandler struct {
	reconcile *services.ReconcileService
}

// NewHotpayHandler constructs HotpayHandler.
func NewHotpayHandler(reconcile *services.ReconcileService) *HotpayHandler {
	return &HotpayHandler{reconcile: reconcile}
}

// webhookRequest is the memo-keyed callback payload. Extra fields the
// gateway sends are ignored.
type webhookRequest struct {
	Memo    string `json:"memo"`
	Status  string `json:"status"`
	NearTrx string `json:"near_trx"`
}

// Webhook applies a gateway payment result to the matching order.
func (h *HotpayHandler) Webhook(c *fiber.Ctx) error {
	var req webhookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Memo == "" || req.Status == "" {
		return fiber.NewError(fiber.StatusBadRequest, "memo and status are required")
	}

	status, err := h.reconcile.ApplyWebhook(c.Context(), req.Memo, req.Status, req.NearTrx)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"payment_status": status,
		"memo":           req.Memo,
	})
}
