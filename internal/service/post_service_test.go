package service

import (
	"context"
	"strings"
	"testing"

	"feedengine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"no text or image", CreatePostInput{UserID: 1}},
		{"whitespace only", CreatePostInput{UserID: 1, Text: "  \n ", Image: " "}},
		{"text too long", CreatePostInput{UserID: 1, Text: strings.Repeat("x", 5001)}},
		{"image not a url", CreatePostInput{UserID: 1, Image: "cat.png"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreatePost(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_Success(t *testing.T) {
	t.Parallel()
	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 11
		created = p
		return nil
	}
	users := noopUserRepo()
	users.getSummariesFn = func(_ context.Context, ids []uint) (map[uint]models.AuthorSummary, error) {
		assert.Equal(t, []uint{5}, ids)
		return map[uint]models.AuthorSummary{5: {ID: 5, Name: "Ann"}}, nil
	}

	view, err := NewPostService(posts, users).CreatePost(context.Background(), CreatePostInput{
		UserID: 5,
		Text:   "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Text)
	assert.Equal(t, uint(5), created.UserID)
	assert.Equal(t, uint(11), view.ID)
	assert.Equal(t, "Ann", view.Author.Name)
	assert.Equal(t, 0, view.LikesCount)
}

func TestPostService_CreatePost_ImageOnly(t *testing.T) {
	t.Parallel()
	view, err := NewPostService(noopPostRepo(), noopUserRepo()).CreatePost(context.Background(), CreatePostInput{
		UserID: 5,
		Image:  "https://cdn.example.com/cat.png",
	})
	require.NoError(t, err)
	assert.Empty(t, view.Text)
	assert.Equal(t, "https://cdn.example.com/cat.png", view.Image)
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	const ownerID uint = 1
	const otherID uint = 2

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		if id == 10 {
			return &models.Post{ID: 10, UserID: ownerID}, nil
		}
		return nil, models.NewNotFoundError("Post", id)
	}
	deleted := false
	posts.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewPostService(posts, noopUserRepo())
	ctx := context.Background()

	err := svc.DeletePost(ctx, 10, otherID)
	assertForbiddenError(t, err)
	assert.False(t, deleted)

	err = svc.DeletePost(ctx, 99, ownerID)
	assertNotFoundError(t, err)

	require.NoError(t, svc.DeletePost(ctx, 10, ownerID))
	assert.True(t, deleted)
}

func TestAuthorizeDelete(t *testing.T) {
	t.Parallel()
	post := &models.Post{ID: 1, UserID: 4}
	assert.NoError(t, AuthorizeDelete(post, 4))
	assertForbiddenError(t, AuthorizeDelete(post, 5))
	assertForbiddenError(t, AuthorizeDelete(post, 0))
	assertForbiddenError(t, AuthorizeDelete(nil, 4))
}
