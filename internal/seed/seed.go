// Package seed provides helpers to create demo and test data for the
// engine. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"chirp/internal/cache"
	"chirp/internal/identity"
	"chirp/internal/models"
	"chirp/internal/notifications"
	"chirp/internal/repository"
	"chirp/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls the size of the generated dataset.
type Options struct {
	Users          int
	PostsPerUser   int
	FollowsPerUser int
	LikesPerUser   int
	RepliesPerUser int
	RepostsPerUser int
	RandomSeed     int64
	HashtagPool    []string
	MentionChance  float64
}

// DefaultOptions returns a small but connected demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:          25,
		PostsPerUser:   8,
		FollowsPerUser: 6,
		LikesPerUser:   12,
		RepliesPerUser: 4,
		RepostsPerUser: 2,
		RandomSeed:     1,
		HashtagPool:    []string{"golang", "coffee", "music", "travel", "news", "art", "dev"},
		MentionChance:  0.15,
	}
}

// Seeder drives the real services so the generated data carries the
// same counters and notifications production traffic would.
type Seeder struct {
	db    *gorm.DB
	opts  Options
	rng   *rand.Rand
	faker *gofakeit.Faker

	posts           *service.PostService
	social          *service.SocialService
	engagement      *service.EngagementService
	notificationSvc *service.NotificationService
}

// New wires a Seeder on top of the given database connection.
func New(db *gorm.DB, opts Options) *Seeder {
	faker := gofakeit.New(opts.RandomSeed)

	hashtagRepo := repository.NewHashtagRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	users := identity.NewProvider(db)

	// Realtime publishes degrade to no-ops when no redis is configured.
	notifier := notifications.NewNotifier(cache.GetClient())
	notificationSvc := service.NewNotificationService(notificationRepo, notifier)
	hashtags := service.NewHashtagService(hashtagRepo)

	return &Seeder{
		db:              db,
		opts:            opts,
		rng:             rand.New(rand.NewSource(opts.RandomSeed)),
		faker:           faker,
		posts:           service.NewPostService(postRepo, hashtags, users, notificationSvc),
		social:          service.NewSocialService(followRepo, users, notificationSvc),
		engagement:      service.NewEngagementService(likeRepo, postRepo, notificationSvc),
		notificationSvc: notificationSvc,
	}
}

// Run generates the full demo dataset.
func (s *Seeder) Run(ctx context.Context) error {
	users, err := s.createUsers(ctx)
	if err != nil {
		return err
	}
	log.Printf("seed: created %d users", len(users))

	if err := s.createFollowMesh(ctx, users); err != nil {
		return err
	}

	postIDs, err := s.createPosts(ctx, users)
	if err != nil {
		return err
	}
	log.Printf("seed: created %d posts", len(postIDs))

	if err := s.createReplies(ctx, users, postIDs); err != nil {
		return err
	}
	if err := s.createReposts(ctx, users, postIDs); err != nil {
		return err
	}
	if err := s.createLikes(ctx, users, postIDs); err != nil {
		return err
	}
	return s.markSomeFeedsRead(ctx, users)
}

// markSomeFeedsRead leaves a mix of read and unread notification feeds
// behind, like a live system would have.
func (s *Seeder) markSomeFeedsRead(ctx context.Context, users []*models.User) error {
	for _, user := range users {
		if s.rng.Float64() < 0.2 {
			if _, err := s.notificationSvc.MarkAllRead(ctx, user.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) createUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user := &models.User{
			Username:     fmt.Sprintf("%s%d", s.faker.Username(), i),
			Email:        fmt.Sprintf("%d.%s", i, s.faker.Email()),
			DisplayName:  s.faker.Name(),
			Bio:          s.faker.Sentence(8),
			ProfileImage: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", s.faker.UUID()),
			Verified:     s.rng.Float64() < 0.1,
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createFollowMesh(ctx context.Context, users []*models.User) error {
	for _, user := range users {
		for i := 0; i < s.opts.FollowsPerUser; i++ {
			target := users[s.rng.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			if err := s.social.Follow(ctx, user.ID, target.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) content(users []*models.User) string {
	content := s.faker.Sentence(6 + s.rng.Intn(10))
	if len(s.opts.HashtagPool) > 0 && s.rng.Float64() < 0.6 {
		content += " #" + s.opts.HashtagPool[s.rng.Intn(len(s.opts.HashtagPool))]
	}
	if s.rng.Float64() < s.opts.MentionChance {
		content += " @" + users[s.rng.Intn(len(users))].Username
	}
	return content
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User) ([]uint, error) {
	var postIDs []uint
	for _, user := range users {
		for i := 0; i < s.opts.PostsPerUser; i++ {
			post, err := s.posts.Create(ctx, service.CreatePostInput{
				AuthorID: user.ID,
				Content:  s.content(users),
			})
			if err != nil {
				return nil, err
			}
			postIDs = append(postIDs, post.ID)
		}
	}
	return postIDs, nil
}

func (s *Seeder) createReplies(ctx context.Context, users []*models.User, postIDs []uint) error {
	for _, user := range users {
		for i := 0; i < s.opts.RepliesPerUser; i++ {
			parentID := postIDs[s.rng.Intn(len(postIDs))]
			if _, err := s.posts.Reply(ctx, parentID, service.CreatePostInput{
				AuthorID: user.ID,
				Content:  s.content(users),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) createReposts(ctx context.Context, users []*models.User, postIDs []uint) error {
	for _, user := range users {
		for i := 0; i < s.opts.RepostsPerUser; i++ {
			originalID := postIDs[s.rng.Intn(len(postIDs))]
			content := ""
			if s.rng.Float64() < 0.3 {
				content = s.faker.Sentence(5)
			}
			if _, err := s.posts.Repost(ctx, originalID, service.CreatePostInput{
				AuthorID: user.ID,
				Content:  content,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) createLikes(ctx context.Context, users []*models.User, postIDs []uint) error {
	for _, user := range users {
		for i := 0; i < s.opts.LikesPerUser; i++ {
			postID := postIDs[s.rng.Intn(len(postIDs))]
			if err := s.engagement.Like(ctx, user.ID, postID); err != nil {
				return err
			}
		}
	}
	return nil
}
