// Package seed populates a database with demo users, posts and engagement.
// It is intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"feedengine/internal/models"
	"feedengine/internal/repository"
	"feedengine/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

// Options configures a seeding run.
type Options struct {
	Users       int
	Posts       int
	MaxComments int // upper bound of comments per post
	MaxDays     int // posts are backdated up to this many days
	Clean       bool
	Seed        int64 // 0 picks a random seed
	HashCost    int   // 0 means bcrypt.DefaultCost
}

// Summary reports what a run created.
type Summary struct {
	Users    int
	Posts    int
	Likes    int
	Comments int
}

// Seeder writes fake data through the repositories and engagement services,
// so seeded rows go through the same paths as API traffic.
type Seeder struct {
	db         *gorm.DB
	users      repository.UserRepository
	posts      repository.PostRepository
	engagement *service.EngagementService
	comments   *service.CommentService
	faker      *gofakeit.Faker
	opts       Options
	now        func() time.Time
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	if opts.MaxComments < 0 {
		opts.MaxComments = 0
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	postRepo := repository.NewPostRepository(db)
	return &Seeder{
		db:         db,
		users:      repository.NewUserRepository(db),
		posts:      postRepo,
		engagement: service.NewEngagementService(postRepo),
		comments:   service.NewCommentService(postRepo),
		faker:      gofakeit.New(opts.Seed),
		opts:       opts,
		now:        time.Now,
	}
}

// Run executes a full seeding pass.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	if s.opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return sum, err
		}
	}

	users, err := s.SeedUsers(ctx, s.opts.Users)
	if err != nil {
		return sum, err
	}
	sum.Users = len(users)

	posts, err := s.SeedPosts(ctx, users, s.opts.Posts)
	if err != nil {
		return sum, err
	}
	sum.Posts = len(posts)

	sum.Likes, sum.Comments, err = s.SeedEngagement(ctx, users, posts)
	return sum, err
}

// ClearAll removes every post and user.
func (s *Seeder) ClearAll(ctx context.Context) error {
	log.Println("🧹 Clearing existing data...")
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := tx.Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := tx.Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// SeedUsers creates n accounts with unique display names and emails.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.opts.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	seen := make(map[string]int, n)
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		name := s.faker.Name()
		if c := seen[name]; c > 0 {
			seen[name] = c + 1
			name = fmt.Sprintf("%s %d", name, c+1)
		} else {
			seen[name] = 1
		}

		user := &models.User{
			Name:     name,
			Email:    fmt.Sprintf("%s.%d@example.com", strings.ToLower(s.faker.Username()), i),
			Password: string(hashed),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %q: %w", user.Email, err)
		}
		users = append(users, user)
	}
	log.Printf("👤 Created %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts by random authors spread over the last MaxDays.
func (s *Seeder) SeedPosts(ctx context.Context, users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 || n <= 0 {
		return nil, nil
	}
	now := s.now()
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.faker.Number(0, len(users)-1)]
		post := &models.Post{
			UserID:    author.ID,
			Text:      s.faker.Sentence(s.faker.Number(6, 20)),
			Likes:     models.NewLikeSet(),
			Comments:  models.CommentList{},
			CreatedAt: s.backdate(now),
		}
		if s.faker.Number(0, 2) == 0 {
			post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.faker.UUID())
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("📝 Created %d posts", len(posts))
	return posts, nil
}

// SeedEngagement lets random users like and comment on each post.
func (s *Seeder) SeedEngagement(ctx context.Context, users []*models.User, posts []*models.Post) (likes, comments int, err error) {
	if len(users) == 0 {
		return 0, 0, nil
	}
	for _, post := range posts {
		for _, u := range users {
			if s.faker.Number(0, 9) >= 3 {
				continue
			}
			res, err := s.engagement.ToggleLike(ctx, post.ID, u.Name)
			if err != nil {
				return likes, comments, fmt.Errorf("like post %d: %w", post.ID, err)
			}
			if res.Liked {
				likes++
			}
		}

		for i := s.faker.Number(0, s.opts.MaxComments); i > 0; i-- {
			commenter := users[s.faker.Number(0, len(users)-1)]
			if _, err := s.comments.AppendComment(ctx, post.ID, commenter.Name, s.faker.Sentence(s.faker.Number(3, 12))); err != nil {
				return likes, comments, fmt.Errorf("comment on post %d: %w", post.ID, err)
			}
			comments++
		}
	}
	log.Printf("💬 Added %d likes and %d comments", likes, comments)
	return likes, comments, nil
}

func (s *Seeder) backdate(now time.Time) time.Time {
	days := s.faker.Number(0, s.opts.MaxDays-1)
	hours := s.faker.Number(0, 23)
	mins := s.faker.Number(0, 59)
	return now.Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour - time.Duration(mins)*time.Minute)
}
