package utils

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
)

const maxUploadSize = 200 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

var (
	ErrFileTooLarge       = errors.New("file size not allowed")
	ErrInvalidContentType = errors.New("invalid content type")
)

func ValidateImageHeader(h *multipart.FileHeader) error {
	return validateHeader(h, allowedImageTypes)
}

func ValidateVideoHeader(h *multipart.FileHeader) error {
	return validateHeader(h, allowedVideoTypes)
}

func validateHeader(h *multipart.FileHeader, allowed map[string]bool) error {
	if h.Size == 0 || h.Size > maxUploadSize {
		return ErrFileTooLarge
	}
	if !allowed[h.Header.Get("Content-Type")] {
		return ErrInvalidContentType
	}
	return nil
}

// ReadMultipartFile slurps an upload and resolves its content type, sniffing
// when the part carries none.
func ReadMultipartFile(h *multipart.FileHeader) ([]byte, string, error) {
	f, err := h.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data := make([]byte, h.Size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, "", err
	}
	ct := h.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return data, ct, nil
}
