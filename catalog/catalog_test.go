package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileNormalizesFields(t *testing.T) {
	path := writeCSV(t, `title,location,image_url,url,bedrooms,price
Cozy bedsitter, kiambu town ,http://img/1.jpg,https://x/1,0,8000
Two bed apartment,nairobi west,,https://x/2,2.0,25000.75
Mystery unit,ruiru,,https://x/3,studio,N/A
`)

	listings, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	assert.Equal(t, Listing{
		Title:    "Cozy bedsitter",
		Location: "Kiambu Town",
		Bedrooms: "Bedsitter",
		Price:    8000,
		ImageURL: "http://img/1.jpg",
		URL:      "https://x/1",
	}, listings[0])

	assert.Equal(t, "Nairobi West", listings[1].Location)
	assert.Equal(t, "2", listings[1].Bedrooms)
	assert.Equal(t, 25000, listings[1].Price)

	assert.Equal(t, "studio", listings[2].Bedrooms)
	assert.Equal(t, 0, listings[2].Price)
}

func TestLoadFileMissingIsEmptyNotError(t *testing.T) {
	listings, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestLoadFileToleratesShortRows(t *testing.T) {
	path := writeCSV(t, `title,location,image_url,url,bedrooms,price
Only a title
Full row,thika,,https://x/9,1,12000
`)
	listings, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Only a title", listings[0].Title)
	assert.Equal(t, "Unknown", listings[0].Bedrooms)
	assert.Equal(t, 0, listings[0].Price)
	assert.Equal(t, "Thika", listings[1].Location)
}

func TestSnapshotLocationsSortedDistinct(t *testing.T) {
	snap := NewSnapshot([]Listing{
		{Title: "a", Location: "Nairobi", URL: "https://x/1"},
		{Title: "b", Location: "Mombasa", URL: "https://x/2"},
		{Title: "c", Location: "Nairobi", URL: "https://x/3"},
	})
	assert.Equal(t, []string{"Mombasa", "Nairobi"}, snap.Locations())
}

func TestSnapshotFirstByLocation(t *testing.T) {
	snap := NewSnapshot([]Listing{
		{Title: "first nairobi", Location: "Nairobi", URL: "https://x/1"},
		{Title: "mombasa", Location: "Mombasa", URL: "https://x/2"},
		{Title: "second nairobi", Location: "Nairobi", URL: "https://x/3"},
	})

	l, ok := snap.FirstByLocation("Nairobi")
	require.True(t, ok)
	assert.Equal(t, "first nairobi", l.Title)

	_, ok = snap.FirstByLocation("Kisumu")
	assert.False(t, ok)
}

func TestSnapshotByIdentity(t *testing.T) {
	snap := NewSnapshot([]Listing{
		{Title: "a", URL: "https://x/1"},
		{Title: "b", URL: "https://x/2"},
	})

	l, ok := snap.ByIdentity(Identity("https://x/2"))
	require.True(t, ok)
	assert.Equal(t, "b", l.Title)

	_, ok = snap.ByIdentity(Identity("https://x/404"))
	assert.False(t, ok)
}

func TestCatalogAtomicSwap(t *testing.T) {
	c := New()
	assert.True(t, c.Snapshot().Empty())

	before := c.Snapshot()
	c.Replace([]Listing{{Title: "a", Location: "Nairobi", URL: "https://x/1"}})
	after := c.Snapshot()

	assert.True(t, before.Empty(), "old snapshot must stay untouched")
	assert.Equal(t, 1, after.Len())
}
