package pkgver

import (
	"strings"

	version "github.com/knqyf263/go-deb-version"
)

// Compare returns -1, 0 or 1 depending on how a orders against b. The
// ordering is total and consistent for any pair of version strings;
// strings that cannot be parsed as package versions fall back to a
// byte-wise comparison.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case va.LessThan(vb):
		return -1
	case va.GreaterThan(vb):
		return 1
	default:
		return 0
	}
}

// Symbol renders a comparison result the way `mpkg version -t` prints it.
func Symbol(cmp int) string {
	switch {
	case cmp < 0:
		return "<"
	case cmp > 0:
		return ">"
	default:
		return "="
	}
}
