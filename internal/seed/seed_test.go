package seed

import (
	"testing"

	"hygall/internal/database"
	"hygall/internal/models"
	"hygall/internal/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBoard(t *testing.T) {
	db, err := database.ConnectTest()
	require.NoError(t, err)

	s := NewSeeder(db, Options{NumPosts: 5, MaxComments: 3})

	created, err := s.SeedBoard()
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	require.Len(t, posts, 5)

	// Every seeded post opens with the demo code.
	for _, post := range posts {
		assert.NotEmpty(t, post.Title)
		assert.True(t, unlock.Verify(DemoUnlockCode, post.UnlockCredential))
	}
}

func TestClearAll(t *testing.T) {
	db, err := database.ConnectTest()
	require.NoError(t, err)

	s := NewSeeder(db, Options{NumPosts: 3, MaxComments: 2})
	_, err = s.SeedBoard()
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	var postCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, commentCount)
}
