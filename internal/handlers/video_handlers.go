package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/streamhive/streamhive-backend/internal/middleware"
	"github.com/streamhive/streamhive-backend/internal/services"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

type VideoHandler struct {
	svc *services.VideoService
}

func NewVideoHandler(svc *services.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// GET /api/v1/videos?page=&limit=&query=&sortBy=&sortType=&userId=
func (h *VideoHandler) List(c *fiber.Ctx) error {
	page, err := h.svc.List(c.Context(), services.ListVideosInput{
		Query:   c.Query("query"),
		OwnerID: c.Query("userId"),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortType"),
		Page:    int64(c.QueryInt("page", services.DefaultPage)),
		Limit:   int64(c.QueryInt("limit", services.DefaultLimit)),
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, page)
}

// POST /api/v1/videos (multipart: title, description, duration, videoFile,
// thumbnail)
func (h *VideoHandler) Publish(c *fiber.Ctx) error {
	videoFile, err := formUpload(c, "videoFile", utils.ValidateVideoHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	if videoFile == nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "videoFile is required")
	}
	thumbnail, err := formUpload(c, "thumbnail", utils.ValidateImageHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	if thumbnail == nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "thumbnail is required")
	}
	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	video, err := h.svc.Publish(c.Context(), middleware.UserID(c), services.PublishInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		VideoFile:   *videoFile,
		Thumbnail:   *thumbnail,
		Duration:    duration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, video)
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, video)
}

// PATCH /api/v1/videos/:id (multipart: optional title, description, thumbnail)
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	thumbnail, err := formUpload(c, "thumbnail", utils.ValidateImageHeader)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	video, err := h.svc.Update(c.Context(), middleware.UserID(c), c.Params("id"), services.UpdateVideoInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, video)
}

func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "video deleted"})
}

func (h *VideoHandler) TogglePublish(c *fiber.Ctx) error {
	published, err := h.svc.TogglePublish(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"isPublished": published})
}
