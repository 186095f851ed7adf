package gridsheet

import (
	"fmt"
	"log/slog"

	"github.com/javajack/gridsheet/interval"
)

// Sheet is a fixed-size grid of cells with row and column formats, merged
// regions and a selection. A Sheet is not safe for concurrent use; callers
// sharing one across goroutines must serialize every call.
type Sheet struct {
	rows, cols int
	cells      [][]*Cell

	rowFormats *interval.Store[*Format]
	colFormats *interval.Store[*Format]
	merges     []Region

	selection *Selection
	opts      *Options
	logger    *slog.Logger

	formatChanged      listenerSet[FormatChangedEvent]
	cellsChanged       listenerSet[[]CellChange]
	beforeCellsChanged listenerSet[*BeforeCellsChangedEvent]
	mergesChanged      listenerSet[MergesChangedEvent]
}

// NewSheet creates a sheet of rows × cols empty cells.
func NewSheet(rows, cols int, opts ...Option) *Sheet {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	rows, cols = max(rows, 0), max(cols, 0)

	s := &Sheet{
		rows:       rows,
		cols:       cols,
		cells:      make([][]*Cell, rows),
		rowFormats: newFormatStore(),
		colFormats: newFormatStore(),
		opts:       o,
		logger:     o.logger,
	}
	for r := range s.cells {
		s.cells[r] = make([]*Cell, cols)
		for c := range s.cells[r] {
			cell := NewCell(nil, WithCellType(o.defaultCellType))
			cell.row, cell.col = r, c
			s.cells[r][c] = cell
		}
	}
	s.selection = NewSelection(s)
	s.selection.Mode = o.selectionMode
	return s
}

// NewSheetFromData creates a sheet sized to data, with each cell holding the
// corresponding value. Short rows leave trailing cells empty.
func NewSheetFromData(data [][]any, opts ...Option) *Sheet {
	cols := 0
	for _, row := range data {
		cols = max(cols, len(row))
	}
	s := NewSheet(len(data), cols, opts...)
	for r, row := range data {
		for c, v := range row {
			s.cells[r][c].data = v
		}
	}
	return s
}

func newFormatStore() *interval.Store[*Format] {
	return interval.New(
		interval.WithCloner((*Format).Clone),
		interval.WithEqual((*Format).Equal),
	)
}

// Rows returns the number of rows.
func (s *Sheet) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s *Sheet) Cols() int { return s.cols }

// Region returns the region covering the whole sheet.
func (s *Sheet) Region() Region {
	if s.rows == 0 || s.cols == 0 {
		return EmptyRegion()
	}
	return NewRegion(0, s.rows-1, 0, s.cols-1)
}

// InBounds reports whether (row, col) addresses a cell of the sheet.
func (s *Sheet) InBounds(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (s *Sheet) Cell(row, col int) *Cell {
	if !s.InBounds(row, col) {
		return nil
	}
	return s.cells[row][col]
}

// CellAt returns the cell at p, or nil if out of bounds.
func (s *Sheet) CellAt(p CellPosition) *Cell { return s.Cell(p.Row, p.Col) }

// SetCell replaces the cell at (row, col), e.g. to bind a data object.
func (s *Sheet) SetCell(row, col int, c *Cell) error {
	if !s.InBounds(row, col) {
		return fmt.Errorf("set cell %s: %w", CellPosition{Row: row, Col: col}, ErrEmptyRegion)
	}
	if c == nil {
		c = NewCell(nil, WithCellType(s.opts.defaultCellType))
	}
	c.row, c.col = row, col
	s.cells[row][col] = c
	return nil
}

// Cells returns the cells of region r in row-major order, clipped to the sheet.
func (s *Sheet) Cells(r Region) []*Cell {
	var out []*Cell
	for p := range r.Constrain(s.Region()).Cells() {
		out = append(out, s.cells[p.Row][p.Col])
	}
	return out
}

// Selection returns the sheet's selection.
func (s *Sheet) Selection() *Selection { return s.selection }

// RowFormats returns the store of whole-row formats.
func (s *Sheet) RowFormats() *interval.Store[*Format] { return s.rowFormats }

// ColFormats returns the store of whole-column formats.
func (s *Sheet) ColFormats() *interval.Store[*Format] { return s.colFormats }

// OnFormatChanged subscribes to format changes. The returned func unsubscribes.
func (s *Sheet) OnFormatChanged(fn func(FormatChangedEvent)) func() {
	return s.formatChanged.add(fn)
}

// OnCellsChanged subscribes to value changes. The returned func unsubscribes.
func (s *Sheet) OnCellsChanged(fn func([]CellChange)) func() {
	return s.cellsChanged.add(fn)
}

// OnBeforeCellsChanged subscribes to pending value changes, which handlers
// may edit or cancel. The returned func unsubscribes.
func (s *Sheet) OnBeforeCellsChanged(fn func(*BeforeCellsChangedEvent)) func() {
	return s.beforeCellsChanged.add(fn)
}

// OnMergesChanged subscribes to merge and unmerge operations. The returned func unsubscribes.
func (s *Sheet) OnMergesChanged(fn func(MergesChangedEvent)) func() {
	return s.mergesChanged.add(fn)
}

// EmitFormatChanged delivers e to every format listener.
func (s *Sheet) EmitFormatChanged(e FormatChangedEvent) {
	s.formatChanged.emit(e)
}
