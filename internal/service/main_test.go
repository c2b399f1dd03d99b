package service

import (
	"context"
	"errors"
	"testing"

	"feedengine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, int, int) ([]*models.Post, error)
	countFn         func(context.Context) (int64, error)
	listByUserFn    func(context.Context, uint) ([]*models.Post, error)
	deleteFn        func(context.Context, uint) error
	toggleLikeFn    func(context.Context, uint, string) (bool, int, error)
	appendCommentFn func(context.Context, uint, models.Comment) (models.CommentList, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID uint, username string) (bool, int, error) {
	return s.toggleLikeFn(ctx, postID, username)
}
func (s *postRepoStub) AppendComment(ctx context.Context, postID uint, c models.Comment) (models.CommentList, error) {
	return s.appendCommentFn(ctx, postID, c)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(_ context.Context, p *models.Post) error { p.ID = 1; return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:       func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
		listByUserFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _ uint, _ string) (bool, int, error) { return true, 1, nil },
		appendCommentFn: func(_ context.Context, _ uint, c models.Comment) (models.CommentList, error) {
			return models.CommentList{c}, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn      func(context.Context, uint) (*models.User, error)
	getByEmailFn   func(context.Context, string) (*models.User, error)
	createFn       func(context.Context, *models.User) error
	getSummariesFn func(context.Context, []uint) (map[uint]models.AuthorSummary, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) GetSummaries(ctx context.Context, ids []uint) (map[uint]models.AuthorSummary, error) {
	return s.getSummariesFn(ctx, ids)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "user"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		getSummariesFn: func(_ context.Context, ids []uint) (map[uint]models.AuthorSummary, error) {
			out := make(map[uint]models.AuthorSummary, len(ids))
			for _, id := range ids {
				out[id] = models.AuthorSummary{ID: id, Name: "user"}
			}
			return out, nil
		},
	}
}

type tokenIssuerStub struct {
	issueFn func(uint) (string, error)
}

func (s tokenIssuerStub) Issue(userID uint) (string, error) {
	return s.issueFn(userID)
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeUnauthorized)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeNotFound)
}
