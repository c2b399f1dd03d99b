package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"feedengine/internal/models"
	"feedengine/internal/observability"
	"feedengine/internal/repository"
	"feedengine/internal/validation"
)

type CommentService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewCommentService(postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

// AppendComment adds a comment at the end of the post's thread and returns
// the whole thread in display order.
func (s *CommentService) AppendComment(ctx context.Context, postID uint, username, text string) (models.CommentList, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if utf8.RuneCountInString(text) > validation.MaxCommentLength {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}
	if strings.TrimSpace(username) == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	comments, err := s.postRepo.AppendComment(ctx, postID, models.Comment{
		Username:  username,
		Text:      text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	observability.CommentsAppended.Inc()
	return comments, nil
}
