package services

import (
	"bytes"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Upload is a file handed in by the HTTP layer, already read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	avatarMaxWidth    = 500
	coverMaxWidth     = 1280
	thumbnailMaxWidth = 640
)

// downscaleImage re-encodes an image upload to at most maxWidth pixels wide,
// keeping aspect ratio. Non-image data or undecodable images pass through
// untouched so a bad magic byte never blocks an upload.
func downscaleImage(up Upload, maxWidth int) Upload {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return up
	}
	img, _, err := image.Decode(bytes.NewReader(up.Data))
	if err != nil {
		return up
	}
	if img.Bounds().Dx() <= maxWidth {
		return up
	}
	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return up
	}
	up.Data = buf.Bytes()
	up.ContentType = "image/jpeg"
	return up
}
