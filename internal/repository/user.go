// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"feedengine/internal/cache"
	"feedengine/internal/models"
	"feedengine/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	GetSummaries(ctx context.Context, ids []uint) (map[uint]models.AuthorSummary, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Email already registered")
		}
		return models.NewInternalError(err)
	}
	// SQLite may hand out a rowid that belonged to a deleted user.
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// GetSummaries resolves author summaries for ids, reading through the cache.
// Unknown ids are absent from the result.
func (r *userRepository) GetSummaries(ctx context.Context, ids []uint) (map[uint]models.AuthorSummary, error) {
	out := make(map[uint]models.AuthorSummary, len(ids))
	var misses []uint
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		var s models.AuthorSummary
		if found, err := cache.GetJSON(ctx, cache.UserSummaryKey(id), &s); err == nil && found {
			out[id] = s
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out, nil
	}

	defer observability.TrackQuery("summaries", "users")()
	var rows []models.AuthorSummary
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "name").
		Where("id IN ?", misses).
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, s := range rows {
		out[s.ID] = s
		_ = cache.SetJSON(ctx, cache.UserSummaryKey(s.ID), s, cache.UserSummaryTTL)
	}
	return out, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
