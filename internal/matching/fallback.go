package matching

import (
	"strconv"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// Deterministic distance estimates used when the external provider is
// unavailable. The figures are coarse: a degraded run only needs a sensible
// candidate ordering, reproducible across runs over the same inputs.
const (
	fallbackSameDepartmentKm = 25.0
	fallbackAdjacentKm       = 90.0
	fallbackKmPerStep        = 75.0
	fallbackMaxKm            = 800.0
)

// fallbackKm estimates the road distance between two locations from their
// two-digit department prefixes alone.
func fallbackKm(from, to domain.Location) float64 {
	gap := departmentGap(from.Department(), to.Department())
	switch {
	case gap == 0:
		return fallbackSameDepartmentKm
	case gap == 1:
		return fallbackAdjacentKm
	default:
		km := fallbackKmPerStep * float64(gap)
		if km > fallbackMaxKm {
			return fallbackMaxKm
		}
		return km
	}
}

// departmentGap measures how far apart two department prefixes are. Numeric
// prefixes compare arithmetically; anything else (Corsican 2A/2B, foreign or
// malformed codes) degrades to a stable byte-wise distance.
func departmentGap(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" || b == "" {
		return 99
	}
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return absInt(na - nb)
	}

	gap := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		gap += absInt(int(a[i]) - int(b[i]))
	}
	gap += absInt(len(a) - len(b))
	if gap == 0 {
		gap = 1
	}
	return gap
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
