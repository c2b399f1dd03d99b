package server

import (
	"feedengine/internal/models"
	"feedengine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Publish a post with text, an image URL, or both
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{text=string,image=string} true "Post content"
// @Success 201 {object} object{message=string,post=models.PostView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError("Invalid request body")
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID: user.ID,
		Text:   req.Text,
		Image:  req.Image,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetPosts handles GET /api/posts
// @Summary Feed
// @Description Reverse-chronological feed, one page at a time
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Posts per page (default 3, max 100)"
// @Success 200 {object} object{message=string,posts=[]models.PostView,currentPage=int,totalPages=int,totalPosts=int}
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.feedService.Page(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Posts fetched successfully",
		"posts":       page.Posts,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"totalPosts":  page.TotalPosts,
	})
}

// GetMyPosts handles GET /api/posts/user
// @Summary Own posts
// @Description Every post written by the authenticated user, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} object{message=string,posts=[]models.PostView}
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/user [get]
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID, err := identity(c)
	if err != nil {
		return err
	}

	posts, err := s.feedService.UserPosts(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User posts fetched successfully",
		"posts":   posts,
	})
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Hard-delete a post, including its likes and comments. Only the author may delete.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := identity(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := s.postService.DeletePost(c.UserContext(), postID, userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
