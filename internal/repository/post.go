package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"feedengine/internal/models"
	"feedengine/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, postID uint, username string) (liked bool, count int, err error)
	AppendComment(ctx context.Context, postID uint, comment models.Comment) (models.CommentList, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Create", "posts")
	defer func() { observability.EndSpan(span, err) }()
	defer observability.TrackQuery("create", "posts")()

	if post.Comments == nil {
		post.Comments = models.CommentList{}
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFoundOrInternal(err, id)
	}
	return &post, nil
}

// List returns one window of the feed, newest first. Ties on created_at are
// broken by id so pages never overlap.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Delete hard-deletes the row; likes and comments go with it.
func (r *postRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "Delete", "posts")
	defer func() { observability.EndSpan(span, err) }()

	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

// ToggleLike flips username's membership in the post's like set. The row is
// locked for the duration of the read-modify-write so concurrent toggles on
// the same post serialize instead of overwriting each other.
func (r *postRepository) ToggleLike(ctx context.Context, postID uint, username string) (liked bool, count int, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "ToggleLike", "posts")
	defer func() { observability.EndSpan(span, err) }()
	defer observability.TrackQuery("toggle_like", "posts")()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "likes").
			First(&post, postID).Error; err != nil {
			return notFoundOrInternal(err, postID)
		}

		liked = post.Likes.Toggle(username)
		count = post.Likes.Len()

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumns(map[string]interface{}{
				"likes":      post.Likes,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// AppendComment adds comment to the end of the post's comment list with a
// single UPDATE, then returns the full list read inside the same transaction.
func (r *postRepository) AppendComment(ctx context.Context, postID uint, comment models.Comment) (comments models.CommentList, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "AppendComment", "posts")
	defer func() { observability.EndSpan(span, err) }()
	defer observability.TrackQuery("append_comment", "posts")()

	encoded, err := json.Marshal(comment)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumns(map[string]interface{}{
				"comments":   appendJSONExpr(tx, encoded),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}

		var post models.Post
		if err := tx.Select("id", "comments").First(&post, postID).Error; err != nil {
			return notFoundOrInternal(err, postID)
		}
		comments = post.Comments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// appendJSONExpr builds the dialect's "append one element to a JSON array" expression.
func appendJSONExpr(tx *gorm.DB, element []byte) clause.Expr {
	if tx.Dialector.Name() == "postgres" {
		return gorm.Expr("comments || jsonb_build_array(?::jsonb)", string(element))
	}
	return gorm.Expr("json_insert(comments, '$[#]', json(?))", string(element))
}

func notFoundOrInternal(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", id)
	}
	return models.NewInternalError(err)
}
