package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("/")
	assert.False(t, ok)

	c.Set("/", []byte("listing"))
	body, ok := c.Get("/")
	assert.True(t, ok)
	assert.Equal(t, []byte("listing"), body)
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)

	c.Set("/category/abc", []byte("cat"))
	c.Invalidate("/category/abc")

	_, ok := c.Get("/category/abc")
	assert.False(t, ok)
}

func TestInvalidateMissingPathIsNoop(t *testing.T) {
	c := New(time.Minute)
	c.Invalidate("/never-set") // must not panic
}

func TestExpiry(t *testing.T) {
	now := time.Now()
	c := New(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("/thread/x", []byte("page"))

	now = now.Add(61 * time.Second)
	_, ok := c.Get("/thread/x")
	assert.False(t, ok)

	c.Purge()
	assert.Empty(t, c.entries)
}
