package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheet_MergeCells(t *testing.T) {
	s := NewSheet(4, 4)
	var events []MergesChangedEvent
	s.OnMergesChanged(func(e MergesChangedEvent) { events = append(events, e) })

	require.NoError(t, s.MergeCells(NewRegion(0, 1, 0, 1)))
	assert.Equal(t, []Region{NewRegion(0, 1, 0, 1)}, s.Merges())
	assert.True(t, s.IsMerged(1, 1))
	assert.False(t, s.IsMerged(2, 2))

	m, ok := s.MergedRegionAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, NewRegion(0, 1, 0, 1), m)

	require.Len(t, events, 1)
	assert.Equal(t, []Region{NewRegion(0, 1, 0, 1)}, events[0].Added)
}

func TestSheet_MergeCells_RejectsOverlap(t *testing.T) {
	s := NewSheet(4, 4)
	require.NoError(t, s.MergeCells(NewRegion(0, 1, 0, 1)))

	err := s.MergeCells(NewRegion(1, 2, 1, 2))
	require.ErrorIs(t, err, ErrMergeConflict)
	assert.Len(t, s.Merges(), 1, "a rejected merge changes nothing")

	require.NoError(t, s.MergeCells(NewRegion(2, 3, 2, 3)))
	assert.Len(t, s.Merges(), 2)
}

func TestSheet_MergeCells_ClipsAndValidates(t *testing.T) {
	s := NewSheet(3, 3)
	require.NoError(t, s.MergeCells(NewRegion(1, 8, 1, 8)))
	assert.Equal(t, []Region{NewRegion(1, 2, 1, 2)}, s.Merges())

	assert.ErrorIs(t, s.MergeCells(NewRegion(5, 6, 5, 6)), ErrEmptyRegion)

	require.NoError(t, s.MergeCells(CellRegion(0, 0)))
	assert.Len(t, s.Merges(), 1, "single-cell merge is a no-op")
}

func TestSheet_UnmergeCells(t *testing.T) {
	s := NewSheet(5, 5)
	require.NoError(t, s.MergeCells(NewRegion(0, 1, 0, 1)))
	require.NoError(t, s.MergeCells(NewRegion(3, 4, 3, 4)))

	removed := s.UnmergeCells(CellRegion(1, 1))
	assert.Equal(t, []Region{NewRegion(0, 1, 0, 1)}, removed)
	assert.Equal(t, []Region{NewRegion(3, 4, 3, 4)}, s.Merges())
	assert.Empty(t, s.UnmergeCells(CellRegion(2, 2)))
}

func TestSheet_ExpandToMerges(t *testing.T) {
	s := NewSheet(6, 6)
	require.NoError(t, s.MergeCells(NewRegion(0, 1, 1, 2)))
	require.NoError(t, s.MergeCells(NewRegion(2, 3, 1, 1)))

	// growing over the first merge brings column 1 in, which reaches the second
	got := s.ExpandToMerges(NewRegion(1, 2, 2, 2))
	assert.Equal(t, NewRegion(0, 3, 1, 2), got)

	assert.Equal(t, CellRegion(5, 5), s.ExpandToMerges(CellRegion(5, 5)))
	assert.True(t, s.ExpandToMerges(EmptyRegion()).IsEmpty())
}
