package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return NewStore(db)
}

func sampleListing(url string) catalog.Listing {
	return catalog.Listing{
		Title:    "Two bed apartment",
		Location: "Nairobi",
		Bedrooms: "2",
		Price:    25000,
		ImageURL: "http://img/2.jpg",
		URL:      url,
	}
}

func TestAddListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "user-a", sampleListing("https://x/1")))

	records, err := store.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "user-a", records[0].UserID)
	assert.Equal(t, "Two bed apartment", records[0].Title)
	assert.Equal(t, "25000", records[0].Price, "price is stored stringified")
	assert.Equal(t, "https://x/1", records[0].URL)
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)
	records, err := store.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRemoveByIdentity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "user-a", sampleListing("https://x/1")))
	require.NoError(t, store.Add(ctx, "user-a", sampleListing("https://x/2")))

	removed, err := store.RemoveByIdentity(ctx, "user-a", catalog.Identity("https://x/1"))
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := store.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://x/2", records[0].URL)
}

func TestRemoveByIdentityDeletesAllDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// duplicates accumulate on repeated saves
	require.NoError(t, store.Add(ctx, "user-a", sampleListing("https://x/1")))
	require.NoError(t, store.Add(ctx, "user-a", sampleListing("https://x/1")))

	n, err := store.Count(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := store.RemoveByIdentity(ctx, "user-a", catalog.Identity("https://x/1"))
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := store.List(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, records, "both duplicate rows must be gone")

	removed, err = store.RemoveByIdentity(ctx, "user-a", catalog.Identity("https://x/1"))
	require.NoError(t, err)
	assert.False(t, removed, "second removal of the same identity is a no-op")
}

func TestCrossUserIsolation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "user-a", sampleListing("https://x/1")))
	require.NoError(t, store.Add(ctx, "user-b", sampleListing("https://x/1")))

	removed, err := store.RemoveByIdentity(ctx, "user-a", catalog.Identity("https://x/1"))
	require.NoError(t, err)
	assert.True(t, removed)

	bRecords, err := store.List(ctx, "user-b")
	require.NoError(t, err)
	assert.Len(t, bRecords, 1, "user B's favorites must be untouched")
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.RunMigrations(db))
}
