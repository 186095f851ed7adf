package gridsheet

// EffectiveFormat returns the format the cell at (row, col) renders with:
// its column format, overlaid by its row format, overlaid by its own format.
// It returns nil when none of these is set.
func (s *Sheet) EffectiveFormat(row, col int) *Format {
	cell := s.Cell(row, col)
	if cell == nil {
		return nil
	}
	colFmt, _ := s.colFormats.ValueAt(col)
	rowFmt, _ := s.rowFormats.ValueAt(row)
	return MergeFormats(colFmt, rowFmt, cell.Format)
}

// ColumnFormat returns the format applied to the whole column, if any.
func (s *Sheet) ColumnFormat(col int) *Format {
	f, _ := s.colFormats.ValueAt(col)
	return f
}

// RowFormat returns the format applied to the whole row, if any.
func (s *Sheet) RowFormat(row int) *Format {
	f, _ := s.rowFormats.ValueAt(row)
	return f
}

// SetCellFormat replaces the own format of the cell at (row, col). It raises no event.
func (s *Sheet) SetCellFormat(row, col int, f *Format) bool {
	cell := s.Cell(row, col)
	if cell == nil {
		return false
	}
	cell.Format = f.Clone()
	return true
}

// SetFormatImpl merges format into region and returns one record per cell
// whose effective or own format changed, in row-major order. Whole-row and
// whole-column regions are stored in the row and column format stores; cells
// in them that carry their own format get format merged in as well, so the
// new properties are not hidden. SetFormatImpl raises no events.
func (s *Sheet) SetFormatImpl(format *Format, region Region) []CellChangedFormat {
	target := region.Constrain(s.Region())
	if target.IsEmpty() || format == nil {
		return nil
	}

	type snapshot struct {
		pos       CellPosition
		own       *Format
		effective *Format
	}
	before := make([]snapshot, 0, target.Area())
	for p := range target.Cells() {
		before = append(before, snapshot{
			pos:       p,
			own:       s.cells[p.Row][p.Col].Format,
			effective: s.EffectiveFormat(p.Row, p.Col),
		})
	}

	switch region.Kind {
	case KindColumns:
		_ = s.colFormats.Upsert(target.ColStart, target.ColEnd, format.Clone(), mergeFormatInto)
		s.mergeIntoOwnFormats(target, format, false)
	case KindRows:
		_ = s.rowFormats.Upsert(target.RowStart, target.RowEnd, format.Clone(), mergeFormatInto)
		s.mergeIntoOwnFormats(target, format, false)
	default:
		s.mergeIntoOwnFormats(target, format, true)
	}

	var changes []CellChangedFormat
	for _, b := range before {
		cell := s.cells[b.pos.Row][b.pos.Col]
		after := s.EffectiveFormat(b.pos.Row, b.pos.Col)
		if EquivalentFormats(b.effective, after) && b.own.Equal(cell.Format) {
			continue
		}
		changes = append(changes, CellChangedFormat{
			Row:       b.pos.Row,
			Col:       b.pos.Col,
			OldFormat: b.own,
			NewFormat: cell.Format.Clone(),
		})
	}
	return changes
}

// SetFormat merges format into region and notifies format listeners.
// It cannot be undone; use SetRangeFormatCommand for that.
func (s *Sheet) SetFormat(format *Format, region Region) []CellChangedFormat {
	changes := s.SetFormatImpl(format, region)
	e := FormatChangedEvent{CellsChanged: changes}
	target := region.Constrain(s.Region())
	if target.IsEmpty() {
		return changes
	}
	switch region.Kind {
	case KindColumns:
		e.ColumnRegionsChanged = []Region{ColumnRegion(target.ColStart, target.ColEnd)}
	case KindRows:
		e.RowRegionsChanged = []Region{RowRegion(target.RowStart, target.RowEnd)}
	}
	s.EmitFormatChanged(e)
	return changes
}

// mergeIntoOwnFormats merges format into the own format of each cell of
// target. Cells without an own format are only given one when create is set.
func (s *Sheet) mergeIntoOwnFormats(target Region, format *Format, create bool) {
	for p := range target.Cells() {
		cell := s.cells[p.Row][p.Col]
		if cell.Format == nil && !create {
			continue
		}
		// replace rather than mutate: the old pointer may be held by a change record
		cell.Format = cell.Format.Merged(format)
	}
}

func mergeFormatInto(existing, incoming *Format) *Format {
	if existing == nil {
		return incoming.Clone()
	}
	existing.Merge(incoming)
	return existing
}
