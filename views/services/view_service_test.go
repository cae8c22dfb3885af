package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/qolzam/telar-blog/internal/database/migrations"
	"github.com/qolzam/telar-blog/internal/database/sqlite"
	viewsErrors "github.com/qolzam/telar-blog/views/errors"
	"github.com/qolzam/telar-blog/views/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc/codes"
)

func TestIncrement_Success(t *testing.T) {
	counter := new(MockViewCounter)
	counter.On("IncrementViews", mock.Anything, "abc").Return(nil).Once()

	result, err := NewViewService(counter).Increment(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "abc", result.PostID)
	counter.AssertExpectations(t)
}

func TestIncrement_MissingIDNeverTouchesStore(t *testing.T) {
	counter := new(MockViewCounter)

	result, err := NewViewService(counter).Increment(context.Background(), "")
	assert.Nil(t, result)
	assert.Equal(t, codes.InvalidArgument, viewsErrors.CodeOf(err))
	counter.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestIncrement_UnknownIDShapesFailAsInternal(t *testing.T) {
	for _, postID := range []string{"  ", "a/b", "..", strings.Repeat("a", 1501)} {
		t.Run(fmt.Sprintf("%.20q", postID), func(t *testing.T) {
			counter := new(MockViewCounter)
			counter.On("IncrementViews", mock.Anything, postID).Return(repository.ErrRecordNotFound).Once()

			result, err := NewViewService(counter).Increment(context.Background(), postID)
			assert.Nil(t, result)
			assert.Equal(t, codes.Internal, viewsErrors.CodeOf(err))
			counter.AssertNumberOfCalls(t, "IncrementViews", 1)
		})
	}
}

func TestIncrement_UnknownIDShapesWithSQLStore(t *testing.T) {
	client := newStore(t, "abc")
	svc := NewViewService(repository.NewSQLCounter(client))

	for _, postID := range []string{" ", "a/b", ".."} {
		_, err := svc.Increment(context.Background(), postID)
		assert.Equal(t, codes.Internal, viewsErrors.CodeOf(err), "postID %q", postID)
	}
	assert.Equal(t, int64(0), storedViews(t, client, "abc"))
}

func TestIncrement_StoreFailureIsOpaque(t *testing.T) {
	cause := errors.New("permission denied for table posts")
	counter := new(MockViewCounter)
	counter.On("IncrementViews", mock.Anything, "abc").Return(cause).Once()

	result, err := NewViewService(counter).Increment(context.Background(), "abc")
	assert.Nil(t, result)

	var ce *viewsErrors.CallableError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, codes.Internal, ce.Code)
	assert.Equal(t, viewsErrors.MsgUpdateFailed, ce.Message)
	assert.True(t, errors.Is(err, cause), "cause is kept for server-side logging")
	counter.AssertNumberOfCalls(t, "IncrementViews", 1)
}

func newStore(t *testing.T, ids ...string) dbi.SQLClient {
	t.Helper()
	ctx := context.Background()
	client, err := sqlite.NewClient(ctx, &dbi.SQLiteConfig{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, migrations.Apply(ctx, client))

	db := client.DB()
	now := time.Now().UTC()
	for _, id := range ids {
		_, err := db.Exec(db.Rebind(`INSERT INTO posts (id, title, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
			id, id, "slug-"+id, now, now)
		require.NoError(t, err)
	}
	return client
}

func storedViews(t *testing.T, client dbi.SQLClient, id string) int64 {
	t.Helper()
	db := client.DB()
	var views int64
	require.NoError(t, db.Get(&views, db.Rebind(`SELECT views FROM posts WHERE id = ?`), id))
	return views
}

func TestIncrement_WithSQLStore(t *testing.T) {
	client := newStore(t, "abc", "xyz")
	svc := NewViewService(repository.NewSQLCounter(client))
	ctx := context.Background()

	t.Run("raises only the target record", func(t *testing.T) {
		_, err := svc.Increment(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, int64(1), storedViews(t, client, "abc"))
		assert.Equal(t, int64(0), storedViews(t, client, "xyz"))
	})

	t.Run("different ids do not interfere", func(t *testing.T) {
		_, err := svc.Increment(ctx, "xyz")
		require.NoError(t, err)
		_, err = svc.Increment(ctx, "xyz")
		require.NoError(t, err)
		assert.Equal(t, int64(1), storedViews(t, client, "abc"))
		assert.Equal(t, int64(2), storedViews(t, client, "xyz"))
	})

	t.Run("nonexistent id is internal and creates nothing", func(t *testing.T) {
		_, err := svc.Increment(ctx, "ghost")
		assert.Equal(t, codes.Internal, viewsErrors.CodeOf(err))

		var n int
		require.NoError(t, client.DB().Get(&n, `SELECT COUNT(*) FROM posts`))
		assert.Equal(t, 2, n)
	})
}

func TestIncrement_ConcurrentCallsAllCount(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	client := newStore(t, "abc")
	svc := NewViewService(repository.NewSQLCounter(client))

	const n = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Increment(context.Background(), "abc"); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, failures)
	assert.Equal(t, int64(n), storedViews(t, client, "abc"))
}
