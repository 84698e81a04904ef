package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls int
	err   error
}

func (r *countingResolver) ResolveURL(_ context.Context, ref string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return "https://signed/" + ref, nil
}

type hits struct{ hit, miss int }

func (h *hits) ObserveCache(hit bool) {
	if hit {
		h.hit++
	} else {
		h.miss++
	}
}

func TestURLCache(t *testing.T) {
	next := &countingResolver{}
	obs := &hits{}
	c := NewURLCache(next, 1, time.Minute, obs)

	for i := 0; i < 3; i++ {
		url, err := c.ResolveURL(context.Background(), "a.jpg")
		require.NoError(t, err)
		assert.Equal(t, "https://signed/a.jpg", url)
	}
	_, err := c.ResolveURL(context.Background(), "b.jpg")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, int64(2), c.Len())
	assert.Equal(t, 2, obs.hit)
	assert.Equal(t, 2, obs.miss)
}

func TestURLCache_ErrorsAreNotCached(t *testing.T) {
	next := &countingResolver{err: errors.New("denied")}
	c := NewURLCache(next, 1, time.Minute, nil)

	_, err := c.ResolveURL(context.Background(), "a.jpg")
	assert.Error(t, err)
	_, err = c.ResolveURL(context.Background(), "a.jpg")
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
	assert.Zero(t, c.Len())
}

func TestURLCache_ZeroExpireDisablesCaching(t *testing.T) {
	next := &countingResolver{}
	c := NewURLCache(next, 1, 0, nil)

	_, _ = c.ResolveURL(context.Background(), "a.jpg")
	_, _ = c.ResolveURL(context.Background(), "a.jpg")
	assert.Equal(t, 2, next.calls)
}
