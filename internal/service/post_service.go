package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"feedengine/internal/models"
	"feedengine/internal/observability"
	"feedengine/internal/repository"
	"feedengine/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID uint
	Text   string
	Image  string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostView, error) {
	text := strings.TrimSpace(in.Text)
	image := strings.TrimSpace(in.Image)

	if text == "" && image == "" {
		return nil, models.NewValidationError("Post must have text or image")
	}
	if utf8.RuneCountInString(text) > validation.MaxPostTextLength {
		return nil, models.NewValidationError("Post text too long (max 5000 characters)")
	}
	if err := validation.ValidateImageURL(image); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID: in.UserID,
		Text:   text,
		Image:  image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	authors, err := s.userRepo.GetSummaries(ctx, []uint{post.UserID})
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(post, authorFor(authors, post.UserID))
	return &view, nil
}

// DeletePost hard-deletes a post after checking the requester wrote it.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := AuthorizeDelete(post, requesterID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func authorFor(authors map[uint]models.AuthorSummary, id uint) models.AuthorSummary {
	if a, ok := authors[id]; ok {
		return a
	}
	return models.AuthorSummary{ID: id, Name: models.UnknownAuthor}
}
