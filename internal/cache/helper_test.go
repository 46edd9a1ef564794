package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ContentID uint   `json:"contentId"`
	Title     string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			*dest = payload{ContentID: 7, Title: "Hi"}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Hi", first.Title)

	var second payload
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	boom := errors.New("store down")
	var dest payload
	err := Aside(ctx, PostKey(1), &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	fetched := false
	require.NoError(t, Aside(ctx, PostKey(1), &dest, time.Minute, func() error {
		fetched = true
		dest = payload{ContentID: 1}
		return nil
	}))
	assert.True(t, fetched, "failed fetch must not populate the cache")
}

func TestInvalidatePost_DropsDetailAndList(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(3), payload{ContentID: 3}, time.Minute))
	require.NoError(t, SetJSON(ctx, PostsListKey, []payload{{ContentID: 3}}, time.Minute))

	InvalidatePost(ctx, 3)

	assert.False(t, mr.Exists(PostKey(3)))
	assert.False(t, mr.Exists(PostsListKey))
}

func TestGetJSON_NilClient(t *testing.T) {
	SetClient(nil)
	var dest payload
	found, err := GetJSON(context.Background(), PostKey(1), &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}
