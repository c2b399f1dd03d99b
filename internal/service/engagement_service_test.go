package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"feedengine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_ToggleLike(t *testing.T) {
	t.Parallel()
	likes := models.NewLikeSet()
	posts := noopPostRepo()
	posts.toggleLikeFn = func(_ context.Context, postID uint, username string) (bool, int, error) {
		if postID != 1 {
			return false, 0, models.NewNotFoundError("Post", postID)
		}
		liked := likes.Toggle(username)
		return liked, likes.Len(), nil
	}
	svc := NewEngagementService(posts)
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, 1, "Bob")
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Liked: true, Count: 1}, res)

	res, err = svc.ToggleLike(ctx, 1, "Bob")
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Liked: false, Count: 0}, res)

	_, err = svc.ToggleLike(ctx, 2, "Bob")
	assertNotFoundError(t, err)

	_, err = svc.ToggleLike(ctx, 1, " ")
	assertUnauthorizedError(t, err)
}

func TestCommentService_AppendComment_Validation(t *testing.T) {
	t.Parallel()
	svc := NewCommentService(noopPostRepo())
	ctx := context.Background()

	_, err := svc.AppendComment(ctx, 1, "Bob", "")
	assertValidationError(t, err)

	_, err = svc.AppendComment(ctx, 1, "Bob", "   \t")
	assertValidationError(t, err)

	_, err = svc.AppendComment(ctx, 1, "Bob", strings.Repeat("y", 1001))
	assertValidationError(t, err)

	_, err = svc.AppendComment(ctx, 1, "", "hello")
	assertUnauthorizedError(t, err)
}

func TestCommentService_AppendComment_Success(t *testing.T) {
	t.Parallel()
	var thread models.CommentList
	posts := noopPostRepo()
	posts.appendCommentFn = func(_ context.Context, postID uint, c models.Comment) (models.CommentList, error) {
		if postID != 1 {
			return nil, models.NewNotFoundError("Post", postID)
		}
		thread = append(thread, c)
		return thread, nil
	}
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewCommentService(posts)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := svc.AppendComment(ctx, 1, "Bob", "first")
	require.NoError(t, err)
	got, err := svc.AppendComment(ctx, 1, "Carol", "  second  ")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, models.Comment{Username: "Bob", Text: "first", CreatedAt: fixed}, got[0])
	assert.Equal(t, "second", got[1].Text)
	assert.Equal(t, "Carol", got[1].Username)

	_, err = svc.AppendComment(ctx, 9, "Bob", "lost")
	assertNotFoundError(t, err)
}
