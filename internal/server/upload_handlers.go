package server

import (
	"io"

	"hygall/internal/models"
	"hygall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadAsset handles POST /api/upload (multipart form, field "image")
func (s *Server) UploadAsset(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondServiceError(c, models.NewUploadError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return respondServiceError(c, models.NewUploadError(err))
	}

	locator, err := s.uploadService.UploadAsset(service.UploadAssetInput{
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"fileName": locator,
	})
}
