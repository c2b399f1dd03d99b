package service

import (
	"context"

	"feedengine/internal/models"
	"feedengine/internal/repository"
)

const (
	defaultFeedLimit   = 3
	maxPaginationLimit = 100
)

type FeedService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	defaultLimit int
}

// PageInfo is the envelope math for one page of a listing.
type PageInfo struct {
	Page       int
	Limit      int
	Offset     int
	TotalPages int
	Total      int64
}

type FeedPage struct {
	Posts       []models.PostView `json:"posts"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalPosts  int64             `json:"totalPosts"`
}

// NewFeedService returns a FeedService. A non-positive defaultLimit falls
// back to 3.
func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, defaultLimit int) *FeedService {
	if defaultLimit <= 0 {
		defaultLimit = defaultFeedLimit
	}
	if defaultLimit > maxPaginationLimit {
		defaultLimit = maxPaginationLimit
	}
	return &FeedService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		defaultLimit: defaultLimit,
	}
}

// Paginate derives offset and page count. page and limit must be positive.
// Offset is only set for pages that exist; it stays 0 past the end.
func Paginate(total int64, page, limit int) PageInfo {
	info := PageInfo{
		Page:  page,
		Limit: limit,
		Total: total,
	}
	if total > 0 {
		info.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if !info.PastEnd() {
		info.Offset = (page - 1) * limit
	}
	return info
}

// PastEnd reports whether the page holds no items.
func (p PageInfo) PastEnd() bool {
	return p.TotalPages == 0 || p.Page > p.TotalPages
}

func (s *FeedService) normalize(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	return page, limit
}

// Page returns one page of the feed, newest first. A page past the end is
// empty rather than an error.
func (s *FeedService) Page(ctx context.Context, page, limit int) (*FeedPage, error) {
	page, limit = s.normalize(page, limit)

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	info := Paginate(total, page, limit)

	var posts []*models.Post
	if !info.PastEnd() {
		posts, err = s.postRepo.List(ctx, info.Limit, info.Offset)
		if err != nil {
			return nil, err
		}
	}

	views, err := s.withAuthors(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &FeedPage{
		Posts:       views,
		CurrentPage: info.Page,
		TotalPages:  info.TotalPages,
		TotalPosts:  info.Total,
	}, nil
}

// UserPosts lists every post written by userID, newest first.
func (s *FeedService) UserPosts(ctx context.Context, userID uint) ([]models.PostView, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, posts)
}

func (s *FeedService) withAuthors(ctx context.Context, posts []*models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(posts))
	seen := make(map[uint]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}

	authors, err := s.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		views = append(views, models.NewPostView(p, authorFor(authors, p.UserID)))
	}
	return views, nil
}
