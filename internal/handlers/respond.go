package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/streamhive/streamhive-backend/internal/repository"
	"github.com/streamhive/streamhive-backend/internal/services"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

// respondError maps the service/repository error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an upstream failure and surfaces as 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrVideoNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidArgument):
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return utils.JSONError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return utils.JSONError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		return utils.JSONError(c, fiber.StatusConflict, err.Error())
	default:
		return utils.JSONError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// formUpload reads an optional multipart file into a service upload. Returns
// nil when the part is absent.
func formUpload(c *fiber.Ctx, field string, validate func(*multipart.FileHeader) error) (*services.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if validate != nil {
		if verr := validate(fh); verr != nil {
			return nil, verr
		}
	}
	data, ct, err := utils.ReadMultipartFile(fh)
	if err != nil {
		return nil, err
	}
	return &services.Upload{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}
