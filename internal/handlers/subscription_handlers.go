package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/streamhive/streamhive-backend/internal/middleware"
	"github.com/streamhive/streamhive-backend/internal/services"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

type SubscriptionHandler struct {
	svc *services.SubscriptionService
}

func NewSubscriptionHandler(svc *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// POST /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Toggle(c *fiber.Ctx) error {
	subscribed, err := h.svc.Toggle(c.Context(), middleware.UserID(c), c.Params("channelId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"subscribed": subscribed})
}

// GET /api/v1/subscriptions/c/:channelId/subscribers
func (h *SubscriptionHandler) ListSubscribers(c *fiber.Ctx) error {
	page, err := h.svc.ListSubscribers(c.Context(), c.Params("channelId"),
		int64(c.QueryInt("page", services.DefaultPage)),
		int64(c.QueryInt("limit", services.DefaultLimit)),
	)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, page)
}

// GET /api/v1/subscriptions/u/:userId/channels
func (h *SubscriptionHandler) ListSubscribedChannels(c *fiber.Ctx) error {
	page, err := h.svc.ListSubscribedChannels(c.Context(), c.Params("userId"),
		int64(c.QueryInt("page", services.DefaultPage)),
		int64(c.QueryInt("limit", services.DefaultLimit)),
	)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, page)
}
