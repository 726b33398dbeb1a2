package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/templhub/internal/middleware"
	"github.com/example/templhub/internal/store"
	"github.com/example/templhub/internal/utils"
)

// PurchaseHandler serves the authenticated user's purchase history.
type PurchaseHandler struct {
	purchases store.PurchaseStore
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(purchases store.PurchaseStore) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// ListPurchases returns the caller's completed purchases with template
// details, newest first. Download URLs are only ever exposed through this
// listing, so access follows payment.
func (h *PurchaseHandler) ListPurchases(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)

	purchases, total, err := h.purchases.ListCompletedByUser(c.Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    purchases,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
