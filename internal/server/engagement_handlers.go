package server

import (
	"feedengine/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles PUT /api/posts/:id/like
// @Summary Like or unlike a post
// @Description Flips the caller's like on the post and returns the new like count
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string,likes=int}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [put]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	res, err := s.engagementService.ToggleLike(c.UserContext(), postID, user.Name)
	if err != nil {
		return err
	}

	message := "Post unliked"
	if res.Liked {
		message = "Post liked"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"likes":   res.Count,
	})
}

// AddComment handles POST /api/posts/:id/comment
// @Summary Comment on a post
// @Description Appends a comment and returns the post's full comment thread
// @Tags engagement
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{text=string} true "Comment"
// @Success 200 {object} object{message=string,comments=[]models.Comment}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comment [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError("Invalid request body")
	}

	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	comments, err := s.commentService.AppendComment(c.UserContext(), postID, user.Name, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Comment added successfully",
		"comments": comments,
	})
}
