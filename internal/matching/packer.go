package matching

import (
	"sort"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

// PackItem is one admissible request considered for consolidation onto a
// trip, together with the combined leg distance its evaluation produced.
type PackItem struct {
	Request        *domain.ClientRequest
	CombinedLegKm  float64
	DateDiffDays   int
	DepartureLegKm float64
	ArrivalLegKm   float64
}

// PackResult is the subset the packer selected and the would-be residual
// capacity. The trip itself is never mutated.
type PackResult struct {
	Selected     []PackItem
	UsedVolumeM3 float64
	ResidualM3   float64
}

// PackByVolume greedily selects requests to consolidate onto a trip without
// exceeding its available volume.
//
// Candidates are taken tightest fit first (ascending combined leg distance):
// minimizing detour keeps the consolidation attractive to the carrier. A
// request that does not fit is skipped and the scan continues; there is no
// backtracking, a deliberate simplicity and speed trade-off over an exact
// packing. Deterministic for the same input set.
func PackByVolume(items []PackItem, availableM3 float64) PackResult {
	sorted := make([]PackItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CombinedLegKm != sorted[j].CombinedLegKm {
			return sorted[i].CombinedLegKm < sorted[j].CombinedLegKm
		}
		// Tie-breaker keeps the selection stable across runs.
		return sorted[i].Request.RequestID < sorted[j].Request.RequestID
	})

	result := PackResult{Selected: make([]PackItem, 0, len(sorted))}
	for _, item := range sorted {
		volume := item.Request.VolumeM3
		if volume <= 0 {
			continue
		}
		if result.UsedVolumeM3+volume > availableM3 {
			continue
		}
		result.Selected = append(result.Selected, item)
		result.UsedVolumeM3 += volume
	}

	result.ResidualM3 = availableM3 - result.UsedVolumeM3
	return result
}
