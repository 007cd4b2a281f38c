package catalog

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
)

// Snapshot is an immutable view of the catalog at one load. Handlers read
// a snapshot once per action and never see a half-loaded catalog.
type Snapshot struct {
	listings  []Listing
	locations []string
}

// NewSnapshot builds a snapshot with precomputed sorted distinct locations.
func NewSnapshot(listings []Listing) *Snapshot {
	seen := make(map[string]struct{})
	var locations []string
	for _, l := range listings {
		if _, ok := seen[l.Location]; ok {
			continue
		}
		seen[l.Location] = struct{}{}
		locations = append(locations, l.Location)
	}
	sort.Strings(locations)
	return &Snapshot{listings: listings, locations: locations}
}

// Empty reports whether the snapshot holds no listings.
func (s *Snapshot) Empty() bool { return len(s.listings) == 0 }

// Len returns the number of listings.
func (s *Snapshot) Len() int { return len(s.listings) }

// Locations returns distinct listing locations in ascending order.
func (s *Snapshot) Locations() []string { return s.locations }

// FirstByLocation returns the first listing (in source order) whose
// location equals loc exactly. Pagination over further matches at the
// same location is deliberately not offered.
func (s *Snapshot) FirstByLocation(loc string) (Listing, bool) {
	for _, l := range s.listings {
		if l.Location == loc {
			return l, true
		}
	}
	return Listing{}, false
}

// ByIdentity scans for the first listing whose URL identity matches id.
func (s *Snapshot) ByIdentity(id string) (Listing, bool) {
	for _, l := range s.listings {
		if Identity(l.URL) == id {
			return l, true
		}
	}
	return Listing{}, false
}

// Catalog hands out the current snapshot and swaps it atomically on
// reload. There is no in-place mutation visible mid-update.
type Catalog struct {
	snap atomic.Pointer[Snapshot]
}

// New returns a catalog holding an empty snapshot.
func New() *Catalog {
	c := &Catalog{}
	c.snap.Store(NewSnapshot(nil))
	return c
}

// Load reads the listings file and swaps in the new snapshot wholesale.
func (c *Catalog) Load(path string) error {
	listings, err := LoadFile(path)
	if err != nil {
		return err
	}
	snap := NewSnapshot(listings)
	c.snap.Store(snap)

	summary, truncated := logger.SummarizeStrings(snap.Locations(), 8)
	if truncated {
		summary += ", …"
	}
	logger.Info(context.Background(), "catalog", "catalog.ready",
		slog.Int("listings", snap.Len()),
		slog.String("locations", summary),
	)
	return nil
}

// Replace swaps in a snapshot built from the given listings.
func (c *Catalog) Replace(listings []Listing) {
	c.snap.Store(NewSnapshot(listings))
}

// Snapshot returns the current immutable view.
func (c *Catalog) Snapshot() *Snapshot {
	return c.snap.Load()
}
