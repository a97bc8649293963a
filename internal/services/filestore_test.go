package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gmbdash/gmb-backend/internal/models"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts-database.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	return store, path
}

func testPost(i int) models.FilePost {
	return models.FilePost{
		ID:            fmt.Sprintf("post-%d", i),
		BusinessType:  "Cafe",
		Offer:         fmt.Sprintf("offer %d", i),
		GeneratedPost: "☕ Deal!",
		Status:        models.StatusDraft,
		CreatedAt:     time.Now(),
	}
}

func TestNewFileStoreInitializesMissingFile(t *testing.T) {
	t.Parallel()

	_, path := newTestStore(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Posts []models.FilePost `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Empty(t, doc.Posts)
}

func TestFileStoreSavePrepends(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	require.NoError(t, store.Save(testPost(1)))
	require.NoError(t, store.Save(testPost(2)))

	posts, err := store.List()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "post-2", posts[0].ID)
	require.Equal(t, "post-1", posts[1].ID)
}

func TestFileStoreCapEvictsOldest(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	for i := 1; i <= MaxFilePosts+1; i++ {
		require.NoError(t, store.Save(testPost(i)))
	}

	posts, err := store.List()
	require.NoError(t, err)
	require.Len(t, posts, MaxFilePosts)

	// Newest first; the very first insert is gone.
	require.Equal(t, fmt.Sprintf("post-%d", MaxFilePosts+1), posts[0].ID)
	require.Equal(t, "post-2", posts[MaxFilePosts-1].ID)
	for _, p := range posts {
		require.NotEqual(t, "post-1", p.ID)
	}
}

func TestFileStoreReopenKeepsExistingPosts(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	require.NoError(t, store.Save(testPost(1)))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	posts, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "post-1", posts[0].ID)
}

func TestFileStoreMalformedFileReportedOnRead(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.List()
	require.Error(t, err)
	require.Error(t, store.Save(testPost(1)))
}

func TestNewFileStoreResetsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "posts-database.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	posts, err := store.List()
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestFileStoreConcurrentSaves(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	const writers = 20
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			done <- store.Save(testPost(i))
		}(i)
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	// The exclusive lock means no save is lost.
	posts, err := store.List()
	require.NoError(t, err)
	require.Len(t, posts, writers)
}
