package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityDeterministic(t *testing.T) {
	for _, url := range []string{"", "https://x/1", "https://example.com/listing?id=42"} {
		assert.Equal(t, Identity(url), Identity(url), "identity must be stable for %q", url)
		assert.Len(t, Identity(url), 32)
	}
}

func TestIdentityNoCollisionsOnFixture(t *testing.T) {
	seen := make(map[string]string)
	for i := 0; i < 150; i++ {
		url := fmt.Sprintf("https://listings.example.com/house/%d", i)
		id := Identity(url)
		prev, dup := seen[id]
		require.False(t, dup, "identity collision between %q and %q", prev, url)
		seen[id] = url
	}
	assert.Len(t, seen, 150)
}
