package server

import (
	"hygall/internal/models"
	"hygall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	entries, err := s.postService.ListPosts(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}
	if entries == nil {
		entries = []models.PostListEntry{}
	}

	return c.JSON(entries)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		UnlockCode string `json:"unlockCode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		UnlockCode: req.UnlockCode,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"contentId": post.ContentID,
	})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		UnlockCode string `json:"unlockCode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		ContentID:  id,
		Title:      req.Title,
		Content:    req.Content,
		UnlockCode: req.UnlockCode,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UnlockCode string `json:"unlockCode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		ContentID:  id,
		UnlockCode: req.UnlockCode,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// IncrementViewCount handles POST /api/posts/:id/views
func (s *Server) IncrementViewCount(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.IncrementViewCount(ctx, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// IncrementLikeCount handles POST /api/posts/:id/likes
func (s *Server) IncrementLikeCount(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.IncrementLikeCount(ctx, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// VerifyPostCode handles POST /api/posts/:id/unlock
func (s *Server) VerifyPostCode(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UnlockCode string `json:"unlockCode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.VerifyPostCode(ctx, id, req.UnlockCode); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"verified": true})
}
