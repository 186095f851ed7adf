package gridsheet

import (
	"fmt"
	"slices"
)

// MergeCells registers region as a merged region. The region is clipped to
// the sheet first. A merge that would overlap an existing one is rejected
// with ErrMergeConflict and nothing changes; unmerge the conflict first.
// Merging a single cell is a no-op.
func (s *Sheet) MergeCells(region Region) error {
	target := region.Constrain(s.Region())
	if target.IsEmpty() {
		return fmt.Errorf("merge %s: %w", region, ErrEmptyRegion)
	}
	if target.Area() == 1 {
		return nil
	}
	for _, m := range s.merges {
		if m.Intersects(target) {
			s.logger.Debug("merge rejected", "region", target.String(), "conflict", m.String())
			return fmt.Errorf("merge %s over %s: %w", target, m, ErrMergeConflict)
		}
	}
	s.merges = append(s.merges, target)
	s.logger.Debug("cells merged", "region", target.String())
	s.mergesChanged.emit(MergesChangedEvent{Added: []Region{target}})
	return nil
}

// UnmergeCells removes every merged region that intersects region and returns them.
func (s *Sheet) UnmergeCells(region Region) []Region {
	var removed []Region
	s.merges = slices.DeleteFunc(s.merges, func(m Region) bool {
		if m.Intersects(region) {
			removed = append(removed, m)
			return true
		}
		return false
	})
	if len(removed) > 0 {
		s.mergesChanged.emit(MergesChangedEvent{Removed: removed})
	}
	return removed
}

// Merges returns the merged regions in the order they were created.
func (s *Sheet) Merges() []Region {
	return slices.Clone(s.merges)
}

// MergedRegionAt returns the merged region containing (row, col), if any.
func (s *Sheet) MergedRegionAt(row, col int) (Region, bool) {
	for _, m := range s.merges {
		if m.Contains(row, col) {
			return m, true
		}
	}
	return EmptyRegion(), false
}

// IsMerged reports whether (row, col) belongs to a merged region.
func (s *Sheet) IsMerged(row, col int) bool {
	_, ok := s.MergedRegionAt(row, col)
	return ok
}

// ExpandToMerges grows r until no merged region is only partly inside it.
func (s *Sheet) ExpandToMerges(r Region) Region {
	if r.IsEmpty() {
		return r
	}
	for changed := true; changed; {
		changed = false
		for _, m := range s.merges {
			if m.Intersects(r) && !r.ContainsRegion(m) {
				r = r.Union(m)
				changed = true
			}
		}
	}
	return r
}

// snapToMerge returns the top-left of the merged region containing p, or p itself.
func (s *Sheet) snapToMerge(p CellPosition) CellPosition {
	if m, ok := s.MergedRegionAt(p.Row, p.Col); ok {
		return m.TopLeft()
	}
	return p
}
