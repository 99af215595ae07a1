package handler

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/model"
)

// maxImageSize limits uploads to 500KB.
const maxImageSize = 500_000

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// storeImage validates and uploads a multipart image, returning the
// generated storage key.
func storeImage(ctx context.Context, storage model.Storage, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxImageSize {
		return "", apperror.NewValidation("image must not exceed 500KB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", apperror.NewValidation("image must be png or jpeg")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s.%s", uuid.NewString(), ext)

	if err := storage.Upload(ctx, key, file, fileHeader.Size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

// imageURL renders the media route for a stored key. Empty keys yield
// empty URLs.
func imageURL(key string) string {
	if key == "" {
		return ""
	}
	return "/uploads/images/" + key
}
