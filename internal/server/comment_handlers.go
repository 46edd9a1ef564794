package server

import (
	"hygall/internal/models"
	"hygall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content    string `json:"content"`
		UnlockCode string `json:"unlockCode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		PostID:     postID,
		Content:    req.Content,
		UnlockCode: req.UnlockCode,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
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

	if err := s.commentService.RemoveComment(ctx, service.RemoveCommentInput{
		PostID:     postID,
		CommentID:  commentID,
		UnlockCode: req.UnlockCode,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// VerifyCommentCode handles POST /api/posts/:id/comments/:commentId/unlock
func (s *Server) VerifyCommentCode(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
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

	if err := s.commentService.VerifyCommentCode(ctx, postID, commentID, req.UnlockCode); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"verified": true})
}
