package service

import (
	"context"
	"strings"

	"feedengine/internal/models"
	"feedengine/internal/observability"
	"feedengine/internal/repository"
)

type EngagementService struct {
	postRepo repository.PostRepository
}

// ToggleResult is the like state after a toggle.
type ToggleResult struct {
	Liked bool
	Count int
}

func NewEngagementService(postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{postRepo: postRepo}
}

// ToggleLike adds username to the post's likes, or removes it if already
// present. Toggling twice leaves the post as it was.
func (s *EngagementService) ToggleLike(ctx context.Context, postID uint, username string) (ToggleResult, error) {
	if strings.TrimSpace(username) == "" {
		return ToggleResult{}, models.NewUnauthorizedError("Authentication required")
	}

	liked, count, err := s.postRepo.ToggleLike(ctx, postID, username)
	if err != nil {
		return ToggleResult{}, err
	}

	action := "unlike"
	if liked {
		action = "like"
	}
	observability.LikesToggled.WithLabelValues(action).Inc()

	return ToggleResult{Liked: liked, Count: count}, nil
}
