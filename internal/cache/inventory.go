package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%d"
	PostsListKey  = "posts:list"
)

const (
	// PostTTL is short because view/like counters mutate often.
	PostTTL     = 2 * time.Minute
	PostListTTL = 1 * time.Minute
)

func PostKey(contentID uint) string {
	return fmt.Sprintf(PostKeyPrefix, contentID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops both the post detail entry and the list projection,
// which embeds the post's counters.
func InvalidatePost(ctx context.Context, contentID uint) {
	if client != nil {
		client.Del(ctx, PostKey(contentID), PostsListKey)
	}
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}
