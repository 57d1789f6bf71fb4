package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/streamhive/streamhive-backend/internal/middleware"
	"github.com/streamhive/streamhive-backend/internal/services"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// POST /api/v1/users/register (multipart: fullname, email, username,
// password, avatar file, optional coverImage file)
func (h *UserHandler) Register(c *fiber.Ctx) error {
	avatar, err := formUpload(c, "avatar", utils.ValidateImageHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	if avatar == nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "avatar is required")
	}
	cover, err := formUpload(c, "coverImage", utils.ValidateImageHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.svc.Register(c.Context(), services.RegisterInput{
		FullName:   c.FormValue("fullname"),
		Email:      c.FormValue("email"),
		Username:   c.FormValue("username"),
		Password:   c.FormValue("password"),
		Avatar:     *avatar,
		CoverImage: cover,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, user)
}

type loginReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	user, tokens, err := h.svc.Login(c.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.svc.Logout(c.Context(), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "logged out"})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	var req refreshReq
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "refresh_token required")
	}
	tokens, err := h.svc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, tokens)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.svc.CurrentUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user)
}

type updateAccountReq struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	var req updateAccountReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	user, err := h.svc.UpdateAccount(c.Context(), middleware.UserID(c), req.FullName, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	avatar, err := formUpload(c, "avatar", utils.ValidateImageHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	if avatar == nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "avatar is required")
	}
	user, err := h.svc.UpdateAvatar(c.Context(), middleware.UserID(c), *avatar)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateCoverImage(c *fiber.Ctx) error {
	cover, err := formUpload(c, "coverImage", utils.ValidateImageHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	if cover == nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "coverImage is required")
	}
	user, err := h.svc.UpdateCoverImage(c.Context(), middleware.UserID(c), *cover)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user)
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.svc.ChangePassword(c.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "password changed"})
}

// GET /api/v1/users/c/:username — public, viewer-aware when a valid token is
// attached.
func (h *UserHandler) ChannelProfile(c *fiber.Ctx) error {
	profile, err := h.svc.GetChannelProfile(c.Context(), c.Params("username"), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, profile)
}
