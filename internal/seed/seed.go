// Package seed provides database seeding utilities for development and
// testing. These helpers are not wired into the server.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"hygall/internal/models"
	"hygall/internal/unlock"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoUnlockCode is the plaintext code every seeded post and comment accepts,
// so seeded content stays editable during development.
const DemoUnlockCode = "1234"

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	MaxComments int
	MaxDaysBack int
	UnlockCode  string
}

// Seeder populates the board with demo posts and comments.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.NumPosts <= 0 {
		opts.NumPosts = 50
	}
	if opts.MaxComments <= 0 {
		opts.MaxComments = 8
	}
	if opts.MaxDaysBack <= 0 {
		opts.MaxDaysBack = 90
	}
	if opts.UnlockCode == "" {
		opts.UnlockCode = DemoUnlockCode
	}
	return &Seeder{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all board content.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing board content...")
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	return nil
}

// SeedBoard creates demo posts with spread-out timestamps, comments, and
// plausible counter values. All content shares the configured unlock code.
func (s *Seeder) SeedBoard() (int, error) {
	credential, err := unlock.Derive(s.opts.UnlockCode)
	if err != nil {
		return 0, fmt.Errorf("derive demo credential: %w", err)
	}

	created := 0
	for i := 0; i < s.opts.NumPosts; i++ {
		post := s.buildPost(credential)
		if err := s.db.Create(post).Error; err != nil {
			return created, fmt.Errorf("create post: %w", err)
		}

		for j := 0; j < s.rand.Intn(s.opts.MaxComments+1); j++ {
			comment := s.buildComment(post, credential)
			if err := s.db.Create(comment).Error; err != nil {
				return created, fmt.Errorf("create comment: %w", err)
			}
		}
		created++
	}

	log.Printf("Seeded %d posts (unlock code %q)", created, s.opts.UnlockCode)
	return created, nil
}

func (s *Seeder) buildPost(credential string) *models.Post {
	return &models.Post{
		Title:            gofakeit.Sentence(5),
		Content:          gofakeit.Paragraph(1, 3, 5, "\n"),
		UnlockCredential: credential,
		ViewCount:        s.rand.Intn(500),
		LikeCount:        s.rand.Intn(50),
		CreatedAt:        s.timestampBack(),
	}
}

func (s *Seeder) buildComment(post *models.Post, credential string) *models.Comment {
	createdAt := post.CreatedAt.Add(time.Duration(s.rand.Intn(72)) * time.Hour)
	if createdAt.After(time.Now()) {
		createdAt = time.Now()
	}
	return &models.Comment{
		PostID:           post.ContentID,
		Content:          gofakeit.Sentence(10),
		UnlockCredential: credential,
		CreatedAt:        createdAt,
	}
}

// timestampBack spreads created_at over the configured window so the list
// looks lived-in.
func (s *Seeder) timestampBack() time.Time {
	daysBack := s.rand.Intn(s.opts.MaxDaysBack)
	hoursBack := s.rand.Intn(24)
	minsBack := s.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
