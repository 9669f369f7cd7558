package pkgver

import (
	"testing"

	"github.com/mpkg-project/mpkg/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestOutdated(t *testing.T) {
	t.Run("newer index version is stale", func(t *testing.T) {
		pkg := store.PackageRecord{Name: "curl", Version: "8.5.0", OSRelease: "3.2"}
		entries := []store.IndexEntry{{Name: "curl", Version: "8.6.0"}}

		stale := Outdated(pkg, entries, "3.2")
		assert.Len(t, stale, 1)
		assert.Equal(t, "8.6.0", stale[0].Version)
	})
	t.Run("equal version on current release is not stale", func(t *testing.T) {
		pkg := store.PackageRecord{Name: "curl", Version: "8.6.0", OSRelease: "3.2"}
		entries := []store.IndexEntry{{Name: "curl", Version: "8.6.0"}}

		assert.Empty(t, Outdated(pkg, entries, "3.2"))
	})
	t.Run("older platform release is stale even at an equal version", func(t *testing.T) {
		pkg := store.PackageRecord{Name: "curl", Version: "8.6.0", OSRelease: "3.1"}
		entries := []store.IndexEntry{{Name: "curl", Version: "8.6.0"}}

		stale := Outdated(pkg, entries, "3.2")
		assert.Len(t, stale, 1)
	})
	t.Run("release check requires an installed version", func(t *testing.T) {
		pkg := store.PackageRecord{Name: "curl", OSRelease: "3.1"}
		entries := []store.IndexEntry{{Name: "curl"}}

		assert.Empty(t, Outdated(pkg, entries, "3.2"))
	})
	t.Run("each entry is judged independently", func(t *testing.T) {
		pkg := store.PackageRecord{Name: "curl", Version: "8.5.0", OSRelease: "3.2"}
		entries := []store.IndexEntry{
			{Name: "curl", Version: "8.4.0"},
			{Name: "curl", Version: "8.6.0"},
			{Name: "curl", Version: "8.7.0"},
		}

		stale := Outdated(pkg, entries, "3.2")
		assert.Len(t, stale, 2)
	})
}
