package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/domain"
)

func packItem(id int, volumeM3, combinedKm float64) PackItem {
	return PackItem{
		Request: &domain.ClientRequest{
			RequestID: id,
			VolumeM3:  volumeM3,
			Status:    domain.RequestPending,
		},
		CombinedLegKm: combinedKm,
	}
}

func selectedIDs(r PackResult) []int {
	ids := make([]int, 0, len(r.Selected))
	for _, s := range r.Selected {
		ids = append(ids, s.Request.RequestID)
	}
	return ids
}

func TestPackByVolumeNeverExceedsCapacity(t *testing.T) {
	items := []PackItem{
		packItem(1, 6, 10),
		packItem(2, 5, 20),
		packItem(3, 4, 30),
	}

	r := PackByVolume(items, 12)
	assert.LessOrEqual(t, r.UsedVolumeM3, 12.0)
	assert.Equal(t, []int{1, 2}, selectedIDs(r))
	assert.Equal(t, 11.0, r.UsedVolumeM3)
	assert.Equal(t, 1.0, r.ResidualM3)
}

func TestPackByVolumeTightestFitFirst(t *testing.T) {
	// The 30 km item would fit, but the closer ones are considered first.
	items := []PackItem{
		packItem(1, 10, 30),
		packItem(2, 6, 5),
		packItem(3, 5, 12),
	}

	r := PackByVolume(items, 11)
	assert.Equal(t, []int{2, 3}, selectedIDs(r))
}

func TestPackByVolumeSkipsWithoutBacktracking(t *testing.T) {
	// Item 2 does not fit after item 1; the scan keeps going and item 3
	// still gets in. No selection is ever undone to make room.
	items := []PackItem{
		packItem(1, 8, 10),
		packItem(2, 5, 20),
		packItem(3, 2, 30),
	}

	r := PackByVolume(items, 10)
	assert.Equal(t, []int{1, 3}, selectedIDs(r))
	assert.Equal(t, 10.0, r.UsedVolumeM3)
	assert.Equal(t, 0.0, r.ResidualM3)
}

func TestPackByVolumeBreaksDistanceTiesByRequestID(t *testing.T) {
	items := []PackItem{
		packItem(9, 4, 15),
		packItem(2, 4, 15),
		packItem(5, 4, 15),
	}

	r := PackByVolume(items, 8)
	assert.Equal(t, []int{2, 5}, selectedIDs(r))
}

func TestPackByVolumeIgnoresNonPositiveVolumes(t *testing.T) {
	items := []PackItem{
		packItem(1, 0, 5),
		packItem(2, 3, 10),
	}

	r := PackByVolume(items, 10)
	require.Len(t, r.Selected, 1)
	assert.Equal(t, 2, r.Selected[0].Request.RequestID)
}

func TestPackByVolumeDeterministic(t *testing.T) {
	items := []PackItem{
		packItem(3, 2, 40),
		packItem(1, 7, 10),
		packItem(2, 4, 25),
	}

	first := PackByVolume(items, 12)
	second := PackByVolume(items, 12)
	assert.Equal(t, selectedIDs(first), selectedIDs(second))
	assert.Equal(t, first.UsedVolumeM3, second.UsedVolumeM3)
}

func TestPackByVolumeDoesNotMutateInput(t *testing.T) {
	items := []PackItem{
		packItem(2, 4, 20),
		packItem(1, 4, 10),
	}

	PackByVolume(items, 8)
	assert.Equal(t, 2, items[0].Request.RequestID, "input order is preserved")
}
