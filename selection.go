package gridsheet

import "slices"

// SelectionMode controls how a finished selecting gesture is committed.
type SelectionMode int

const (
	ModeAppend  SelectionMode = iota // add the new region to the existing ones
	ModeReplace                      // replace all existing regions
)

// Selection tracks the selected regions of a sheet, the active region among
// them and the active cell inside it. Every region is clipped to the sheet
// and grown to cover any merged region it touches. The active cell is always
// inside the active region and never a non-top-left cell of a merge.
type Selection struct {
	// Mode decides whether EndSelecting appends or replaces.
	Mode SelectionMode

	sheet      *Sheet
	regions    []Region
	active     int // index into regions; -1 when empty
	activeCell CellPosition

	selecting   bool
	anchor      CellPosition
	provisional Region

	changed           listenerSet[[]Region]
	activeCellChanged listenerSet[CellPosition]
}

// NewSelection creates an empty selection over sheet.
func NewSelection(sheet *Sheet) *Selection {
	return &Selection{sheet: sheet, active: -1}
}

// OnSelectionChanged subscribes to changes of the selected regions. It fires
// once per SetSingle, EndSelecting or ClearSelections call, before the call
// returns. The returned func unsubscribes.
func (s *Selection) OnSelectionChanged(fn func([]Region)) func() {
	return s.changed.add(fn)
}

// OnActiveCellChanged subscribes to moves of the active cell. The returned func unsubscribes.
func (s *Selection) OnActiveCellChanged(fn func(CellPosition)) func() {
	return s.activeCellChanged.add(fn)
}

// Regions returns the committed regions in selection order.
func (s *Selection) Regions() []Region { return slices.Clone(s.regions) }

// IsEmpty reports whether no region is selected.
func (s *Selection) IsEmpty() bool { return len(s.regions) == 0 }

// ActiveRegion returns the region holding the active cell.
func (s *Selection) ActiveRegion() (Region, bool) {
	if s.active < 0 {
		return EmptyRegion(), false
	}
	return s.regions[s.active], true
}

// ActiveCellPosition returns the active cell, or A1 when the selection is empty.
func (s *Selection) ActiveCellPosition() CellPosition { return s.activeCell }

// GetInputPosition returns where typed input should land: the active cell,
// moved to the top-left of the merged region containing it.
func (s *Selection) GetInputPosition() CellPosition {
	return s.sheet.snapToMerge(s.activeCell)
}

// GetCells returns every cell covered by the selection, each once, region by
// region in row-major order.
func (s *Selection) GetCells() []*Cell {
	seen := make(map[CellPosition]bool)
	var out []*Cell
	for _, r := range s.regions {
		for p := range r.Cells() {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, s.sheet.CellAt(p))
		}
	}
	return out
}

// normalize clips r to the sheet and grows it over touched merges.
func (s *Selection) normalize(r Region) Region {
	return s.sheet.ExpandToMerges(r.Constrain(s.sheet.Region()))
}

// SetSingle replaces the selection with r. Out-of-bounds parts of r are
// clipped; a region entirely outside the sheet empties the selection.
func (s *Selection) SetSingle(r Region) {
	target := s.normalize(r)
	s.selecting = false
	if target.IsEmpty() {
		s.regions, s.active = nil, -1
		s.activeCell = CellPosition{}
	} else {
		s.regions, s.active = []Region{target}, 0
		s.setActiveCell(s.sheet.snapToMerge(target.TopLeft()))
	}
	s.emitChanged()
}

// SetSingleCell selects the single cell (row, col), or the merged region containing it.
func (s *Selection) SetSingleCell(row, col int) {
	s.SetSingle(CellRegion(row, col))
}

// ClearSelections removes every region.
func (s *Selection) ClearSelections() {
	s.regions, s.active = nil, -1
	s.activeCell = CellPosition{}
	s.selecting = false
	s.emitChanged()
}

// BeginSelectingCell starts a selecting gesture anchored at (row, col).
func (s *Selection) BeginSelectingCell(row, col int) {
	p, ok := s.clamp(row, col)
	if !ok {
		return
	}
	s.selecting = true
	s.anchor = p
	s.provisional = s.normalize(CellRegion(p.Row, p.Col))
}

// UpdateSelectingEndPosition extends the gesture's region to (row, col).
func (s *Selection) UpdateSelectingEndPosition(row, col int) {
	if !s.selecting {
		return
	}
	p, ok := s.clamp(row, col)
	if !ok {
		return
	}
	s.provisional = s.normalize(NewRegion(s.anchor.Row, p.Row, s.anchor.Col, p.Col))
}

// IsSelecting reports whether a selecting gesture is in progress.
func (s *Selection) IsSelecting() bool { return s.selecting }

// SelectingRegion returns the region of the gesture in progress.
func (s *Selection) SelectingRegion() (Region, bool) {
	if !s.selecting {
		return EmptyRegion(), false
	}
	return s.provisional, true
}

// EndSelecting commits the gesture's region as the active region, appending
// to or replacing the existing regions according to Mode.
func (s *Selection) EndSelecting() {
	if !s.selecting {
		return
	}
	s.selecting = false
	r := s.provisional
	if r.IsEmpty() {
		return
	}
	if s.Mode == ModeReplace {
		s.regions = []Region{r}
	} else {
		s.regions = append(s.regions, r)
	}
	s.active = len(s.regions) - 1
	s.setActiveCell(s.sheet.snapToMerge(r.TopLeft()))
	s.emitChanged()
}

// CancelSelecting abandons the gesture in progress.
func (s *Selection) CancelSelecting() {
	s.selecting = false
}

// MoveActivePositionByRow moves the active cell down (delta > 0) or up
// through the active region, column by column, wrapping at its end. Once the
// region is exhausted the next region becomes active. A selection made of a
// single cell or a single merged region moves as a whole instead.
func (s *Selection) MoveActivePositionByRow(delta int) {
	s.move(delta, true)
}

// MoveActivePositionByCol moves the active cell right (delta > 0) or left
// through the active region, row by row, like MoveActivePositionByRow.
func (s *Selection) MoveActivePositionByCol(delta int) {
	s.move(delta, false)
}

func (s *Selection) move(delta int, byRow bool) {
	if s.active < 0 || delta == 0 {
		return
	}
	dir := 1
	if delta < 0 {
		dir, delta = -1, -delta
	}
	for range delta {
		s.step(dir, byRow)
	}
}

func (s *Selection) step(dir int, byRow bool) {
	region := s.regions[s.active]
	if len(s.regions) == 1 && s.isUnit(region) {
		s.moveUnit(region, dir, byRow)
		return
	}

	if next, ok := s.nextInRegion(region, s.activeCell, dir, byRow); ok {
		s.setActiveCell(next)
		return
	}

	if len(s.regions) > 1 {
		s.active = (s.active + dir + len(s.regions)) % len(s.regions)
		region = s.regions[s.active]
	}
	if dir > 0 {
		s.setActiveCell(s.sheet.snapToMerge(region.TopLeft()))
	} else {
		s.setActiveCell(s.sheet.snapToMerge(region.BottomRight()))
	}
}

// isUnit reports whether r is a single cell or exactly one merged region.
func (s *Selection) isUnit(r Region) bool {
	if r.Area() == 1 {
		return true
	}
	m, ok := s.sheet.MergedRegionAt(r.RowStart, r.ColStart)
	return ok && m == r
}

// moveUnit moves a one-unit selection to the neighbouring cell past its edge.
func (s *Selection) moveUnit(unit Region, dir int, byRow bool) {
	next := s.activeCell
	switch {
	case byRow && dir > 0:
		next.Row = unit.RowEnd + 1
	case byRow:
		next.Row = unit.RowStart - 1
	case dir > 0:
		next.Col = unit.ColEnd + 1
	default:
		next.Col = unit.ColStart - 1
	}
	if !s.sheet.InBounds(next.Row, next.Col) {
		return
	}
	s.SetSingle(CellRegion(next.Row, next.Col))
}

// nextInRegion returns the next position after cur inside r, walking
// column-major for row moves and row-major for column moves and skipping the
// hidden cells of merges. It returns false when the walk leaves the region.
func (s *Selection) nextInRegion(r Region, cur CellPosition, dir int, byRow bool) (CellPosition, bool) {
	h, w := r.Height(), r.Width()
	at := func(k int) CellPosition {
		if byRow {
			return CellPosition{Row: r.RowStart + k%h, Col: r.ColStart + k/h}
		}
		return CellPosition{Row: r.RowStart + k/w, Col: r.ColStart + k%w}
	}
	var k int
	if byRow {
		k = (cur.Col-r.ColStart)*h + (cur.Row - r.RowStart)
	} else {
		k = (cur.Row-r.RowStart)*w + (cur.Col - r.ColStart)
	}
	for k += dir; k >= 0 && k < h*w; k += dir {
		p := at(k)
		if s.sheet.snapToMerge(p) == p {
			return p, true
		}
	}
	return CellPosition{}, false
}

func (s *Selection) clamp(row, col int) (CellPosition, bool) {
	if s.sheet.Rows() == 0 || s.sheet.Cols() == 0 {
		return CellPosition{}, false
	}
	return CellPosition{
		Row: min(max(row, 0), s.sheet.Rows()-1),
		Col: min(max(col, 0), s.sheet.Cols()-1),
	}, true
}

func (s *Selection) setActiveCell(p CellPosition) {
	if p == s.activeCell {
		return
	}
	s.activeCell = p
	s.activeCellChanged.emit(p)
}

func (s *Selection) emitChanged() {
	s.changed.emit(s.Regions())
}
