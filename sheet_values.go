package gridsheet

import "fmt"

// cellEdit is an applied value change together with the state needed to revert it.
type cellEdit struct {
	CellChange
	oldBlank bool
	oldValid bool
}

// IsCellReadOnly reports whether the cell at (row, col) rejects edits, either
// through its own flag or through its effective format.
func (s *Sheet) IsCellReadOnly(row, col int) bool {
	cell := s.Cell(row, col)
	if cell == nil {
		return true
	}
	return cell.IsReadOnly || s.EffectiveFormat(row, col).IsReadOnly()
}

// TrySetCellValue writes v to the cell at (row, col) and reports whether it was written.
func (s *Sheet) TrySetCellValue(row, col int, v any) bool {
	return s.SetCellValues([]CellChange{{Row: row, Col: col, NewValue: v}})
}

// SetCellValue is TrySetCellValue with a reason for failure.
func (s *Sheet) SetCellValue(row, col int, v any) error {
	p := CellPosition{Row: row, Col: col}
	switch {
	case !s.InBounds(row, col):
		return fmt.Errorf("set %s: %w", p, ErrEmptyRegion)
	case s.IsCellReadOnly(row, col):
		return fmt.Errorf("set %s: %w", p, ErrReadOnly)
	case !s.TrySetCellValue(row, col, v):
		return fmt.Errorf("set %s: value %v rejected", p, v)
	}
	return nil
}

// SetCellValues writes a batch of values. Before-change listeners see the
// batch first and may edit values or cancel it. Read-only cells, cells out of
// bounds and values rejected by a strict validator are skipped. It reports
// whether every change was written.
func (s *Sheet) SetCellValues(changes []CellChange) bool {
	edits := s.setCellValuesImpl(changes)
	return len(edits) == len(changes) && len(changes) > 0
}

func (s *Sheet) setCellValuesImpl(changes []CellChange) []cellEdit {
	if len(changes) == 0 {
		return nil
	}
	pending := make([]*CellChange, len(changes))
	for i := range changes {
		c := changes[i]
		if cell := s.Cell(c.Row, c.Col); cell != nil {
			c.OldValue, _ = cell.Value()
		}
		pending[i] = &c
	}

	if s.beforeCellsChanged.len() > 0 {
		e := &BeforeCellsChangedEvent{Changes: pending}
		s.beforeCellsChanged.emit(e)
		if e.Cancel {
			s.logger.Debug("cell change cancelled", "changes", len(pending))
			return nil
		}
	}

	var edits []cellEdit
	for _, c := range pending {
		if s.IsCellReadOnly(c.Row, c.Col) {
			continue
		}
		cell := s.cells[c.Row][c.Col]
		allowed, valid := validate(cell.Validators, c.NewValue)
		if !allowed {
			s.logger.Debug("value rejected by validator", "cell", cell.Position().String())
			continue
		}
		edit := cellEdit{CellChange: *c, oldBlank: cell.isBlank, oldValid: cell.isValid}
		if err := cell.SetValue(c.NewValue); err != nil {
			s.logger.Debug("value not set", "cell", cell.Position().String(), "error", err)
			continue
		}
		cell.isValid = valid
		edit.NewValue, _ = cell.Value()
		edits = append(edits, edit)
	}
	s.emitCellsChanged(edits)
	return edits
}

// ClearCells clears every writable cell in region and returns the changes made.
func (s *Sheet) ClearCells(region Region) []CellChange {
	var out []CellChange
	for _, e := range s.clearCellsImpl(region) {
		out = append(out, e.CellChange)
	}
	return out
}

func (s *Sheet) clearCellsImpl(region Region) []cellEdit {
	var edits []cellEdit
	for p := range region.Constrain(s.Region()).Cells() {
		if s.IsCellReadOnly(p.Row, p.Col) {
			continue
		}
		cell := s.cells[p.Row][p.Col]
		old, err := cell.Value()
		if err != nil {
			continue
		}
		edit := cellEdit{
			CellChange: CellChange{Row: p.Row, Col: p.Col, OldValue: old},
			oldBlank:   cell.isBlank,
			oldValid:   cell.isValid,
		}
		if !cell.Clear() {
			continue
		}
		cell.isValid = true
		edit.NewValue, _ = cell.Value()
		edits = append(edits, edit)
	}
	s.emitCellsChanged(edits)
	return edits
}

// revertEdits restores the values and flags captured in edits, newest first.
func (s *Sheet) revertEdits(edits []cellEdit) {
	reverted := make([]cellEdit, 0, len(edits))
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		cell := s.Cell(e.Row, e.Col)
		if cell == nil {
			continue
		}
		cell.restore(e.OldValue, e.oldBlank)
		cell.isValid = e.oldValid
		reverted = append(reverted, cellEdit{CellChange: CellChange{
			Row: e.Row, Col: e.Col, OldValue: e.NewValue, NewValue: e.OldValue,
		}})
	}
	s.emitCellsChanged(reverted)
}

func (s *Sheet) emitCellsChanged(edits []cellEdit) {
	if len(edits) == 0 {
		return
	}
	changes := make([]CellChange, len(edits))
	for i, e := range edits {
		changes[i] = e.CellChange
	}
	s.cellsChanged.emit(changes)
}
