package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/streamhive/streamhive-backend/internal/handlers"
	"github.com/streamhive/streamhive-backend/internal/middleware"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

func Setup(
	app *fiber.App,
	users *handlers.UserHandler,
	videos *handlers.VideoHandler,
	subscriptions *handlers.SubscriptionHandler,
	jwtMgr *utils.JWTManager,
	limiter *middleware.IPRateLimiter,
) {
	requireAuth := middleware.RequireAuth(jwtMgr)
	optionalAuth := middleware.OptionalAuth(jwtMgr)
	rateLimit := limiter.Handler()

	api := app.Group("/api/v1")

	u := api.Group("/users")
	u.Post("/register", rateLimit, users.Register)
	u.Post("/login", rateLimit, users.Login)
	u.Post("/refresh", rateLimit, users.Refresh)
	u.Post("/logout", requireAuth, users.Logout)
	u.Get("/me", requireAuth, users.Me)
	u.Patch("/me", requireAuth, users.UpdateAccount)
	u.Patch("/me/avatar", requireAuth, users.UpdateAvatar)
	u.Patch("/me/cover-image", requireAuth, users.UpdateCoverImage)
	u.Post("/change-password", requireAuth, users.ChangePassword)
	u.Get("/c/:username", rateLimit, optionalAuth, users.ChannelProfile)

	v := api.Group("/videos")
	v.Get("/", rateLimit, videos.List)
	v.Post("/", requireAuth, videos.Publish)
	v.Get("/:id", rateLimit, videos.Get)
	v.Patch("/:id", requireAuth, videos.Update)
	v.Delete("/:id", requireAuth, videos.Delete)
	v.Patch("/:id/toggle-publish", requireAuth, videos.TogglePublish)

	s := api.Group("/subscriptions")
	s.Post("/c/:channelId", requireAuth, subscriptions.Toggle)
	s.Get("/c/:channelId/subscribers", rateLimit, subscriptions.ListSubscribers)
	s.Get("/u/:userId/channels", rateLimit, subscriptions.ListSubscribedChannels)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
}
