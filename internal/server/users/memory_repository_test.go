package users

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) {
	t.Helper()
	oldID, oldNow := newID, now
	var n int
	newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { newID, now = oldID, oldNow })
}

func TestMemoryRepository_CreateAssignsIDAndTime(t *testing.T) {
	fixedClock(t)
	r := NewMemoryRepository()

	in := &User{FirstName: "Ada", Email: "ada@x.com"}
	u, err := r.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), u.CreatedAt)
	assert.Empty(t, in.ID, "input must not be modified")
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.Create(ctx, &User{Email: "ada@x.com"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &User{Email: "ada@x.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryRepository_GetAndExists(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.GetUserByEmail(ctx, "ada@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := r.Exists(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.Create(ctx, &User{FirstName: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)

	u, err := r.GetUserByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)

	u.FirstName = "changed"
	again, _ := r.GetUserByEmail(ctx, "ada@x.com")
	assert.Equal(t, "Ada", again.FirstName, "returned users are copies")

	ok, err = r.Exists(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRepository_ConcurrentCreateSameEmail(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Create(ctx, &User{Email: "race@x.com"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}
