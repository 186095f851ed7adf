package gridsheet

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// unbounded is the far edge of a whole-row or whole-column region.
// It stays well below math.MaxInt so that Area never overflows.
const unbounded = math.MaxInt32

// CellPosition is a 0-based (row, col) address.
type CellPosition struct {
	Row int
	Col int
}

// String formats the position in A1 notation.
func (p CellPosition) String() string {
	return ColumnName(p.Col) + strconv.Itoa(p.Row+1)
}

// RegionKind distinguishes plain cell ranges from whole rows or columns.
type RegionKind int

const (
	KindCells   RegionKind = iota // arbitrary rectangle of cells
	KindRows                      // whole rows, every column
	KindColumns                   // whole columns, every row
)

// Region is a rectangle of cells, inclusive on both ends. It is a value type;
// every operation returns a new Region.
type Region struct {
	RowStart int
	RowEnd   int
	ColStart int
	ColEnd   int
	Kind     RegionKind

	empty bool
}

// NewRegion creates a cell region. Bounds given in the wrong order are swapped.
func NewRegion(rowStart, rowEnd, colStart, colEnd int) Region {
	if rowStart > rowEnd {
		rowStart, rowEnd = rowEnd, rowStart
	}
	if colStart > colEnd {
		colStart, colEnd = colEnd, colStart
	}
	return Region{RowStart: rowStart, RowEnd: rowEnd, ColStart: colStart, ColEnd: colEnd}
}

// CellRegion creates a region covering the single cell (row, col).
func CellRegion(row, col int) Region {
	return NewRegion(row, row, col, col)
}

// ColumnRegion covers columns start..end across every row.
func ColumnRegion(start, end int) Region {
	r := NewRegion(0, unbounded, start, end)
	r.Kind = KindColumns
	return r
}

// RowRegion covers rows start..end across every column.
func RowRegion(start, end int) Region {
	r := NewRegion(start, end, 0, unbounded)
	r.Kind = KindRows
	return r
}

// EmptyRegion returns the zero-area region.
func EmptyRegion() Region {
	return Region{empty: true}
}

// IsEmpty reports whether the region covers no cells.
func (r Region) IsEmpty() bool { return r.empty }

// Height returns the number of rows.
func (r Region) Height() int {
	if r.empty {
		return 0
	}
	return r.RowEnd - r.RowStart + 1
}

// Width returns the number of columns.
func (r Region) Width() int {
	if r.empty {
		return 0
	}
	return r.ColEnd - r.ColStart + 1
}

// Area returns the number of cells in the region.
func (r Region) Area() int { return r.Height() * r.Width() }

// TopLeft returns the first cell of the region.
func (r Region) TopLeft() CellPosition {
	return CellPosition{Row: r.RowStart, Col: r.ColStart}
}

// BottomRight returns the last cell of the region.
func (r Region) BottomRight() CellPosition {
	return CellPosition{Row: r.RowEnd, Col: r.ColEnd}
}

// Contains returns true if (row, col) is inside the region.
func (r Region) Contains(row, col int) bool {
	return !r.empty && row >= r.RowStart && row <= r.RowEnd && col >= r.ColStart && col <= r.ColEnd
}

// ContainsRegion returns true if other lies entirely within r.
func (r Region) ContainsRegion(other Region) bool {
	if r.empty || other.empty {
		return false
	}
	return other.RowStart >= r.RowStart && other.RowEnd <= r.RowEnd &&
		other.ColStart >= r.ColStart && other.ColEnd <= r.ColEnd
}

// Intersects returns true if the two regions share at least one cell.
func (r Region) Intersects(other Region) bool {
	_, ok := r.Intersection(other)
	return ok
}

// Intersection returns the overlap of r and other, or false if they don't overlap.
func (r Region) Intersection(other Region) (Region, bool) {
	if r.empty || other.empty {
		return EmptyRegion(), false
	}
	rs, re := max(r.RowStart, other.RowStart), min(r.RowEnd, other.RowEnd)
	cs, ce := max(r.ColStart, other.ColStart), min(r.ColEnd, other.ColEnd)
	if rs > re || cs > ce {
		return EmptyRegion(), false
	}
	return Region{RowStart: rs, RowEnd: re, ColStart: cs, ColEnd: ce}, true
}

// Intersect returns the overlap of a and b, or false if they don't overlap.
func Intersect(a, b Region) (Region, bool) { return a.Intersection(b) }

// Constrain clips r to bounds. A region entirely outside bounds becomes empty.
func (r Region) Constrain(bounds Region) Region {
	out, ok := r.Intersection(bounds)
	if !ok {
		return EmptyRegion()
	}
	return out
}

// Union returns the smallest region covering both r and other.
func (r Region) Union(other Region) Region {
	switch {
	case r.empty:
		return other
	case other.empty:
		return r
	}
	return Region{
		RowStart: min(r.RowStart, other.RowStart),
		RowEnd:   max(r.RowEnd, other.RowEnd),
		ColStart: min(r.ColStart, other.ColStart),
		ColEnd:   max(r.ColEnd, other.ColEnd),
	}
}

// Break returns the disjoint pieces of r not covered by other: up to one band
// above, one below, and one on each side of the overlap.
func (r Region) Break(other Region) []Region {
	overlap, ok := r.Intersection(other)
	if !ok {
		if r.empty {
			return nil
		}
		return []Region{r}
	}
	var out []Region
	if overlap.RowStart > r.RowStart {
		out = append(out, Region{RowStart: r.RowStart, RowEnd: overlap.RowStart - 1, ColStart: r.ColStart, ColEnd: r.ColEnd})
	}
	if overlap.RowEnd < r.RowEnd {
		out = append(out, Region{RowStart: overlap.RowEnd + 1, RowEnd: r.RowEnd, ColStart: r.ColStart, ColEnd: r.ColEnd})
	}
	if overlap.ColStart > r.ColStart {
		out = append(out, Region{RowStart: overlap.RowStart, RowEnd: overlap.RowEnd, ColStart: r.ColStart, ColEnd: overlap.ColStart - 1})
	}
	if overlap.ColEnd < r.ColEnd {
		out = append(out, Region{RowStart: overlap.RowStart, RowEnd: overlap.RowEnd, ColStart: overlap.ColEnd + 1, ColEnd: r.ColEnd})
	}
	return out
}

// Cells iterates the region's positions row by row.
func (r Region) Cells() iter.Seq[CellPosition] {
	return func(yield func(CellPosition) bool) {
		if r.empty {
			return
		}
		for row := r.RowStart; row <= r.RowEnd; row++ {
			for col := r.ColStart; col <= r.ColEnd; col++ {
				if !yield(CellPosition{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

// CellsByColumn iterates the region's positions column by column.
func (r Region) CellsByColumn() iter.Seq[CellPosition] {
	return func(yield func(CellPosition) bool) {
		if r.empty {
			return
		}
		for col := r.ColStart; col <= r.ColEnd; col++ {
			for row := r.RowStart; row <= r.RowEnd; row++ {
				if !yield(CellPosition{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

// String formats the region as "A1:C3", "B:D" for columns or "2:4" for rows.
func (r Region) String() string {
	if r.empty {
		return "<empty>"
	}
	switch r.Kind {
	case KindColumns:
		return ColumnName(r.ColStart) + ":" + ColumnName(r.ColEnd)
	case KindRows:
		return strconv.Itoa(r.RowStart+1) + ":" + strconv.Itoa(r.RowEnd+1)
	}
	if r.Area() == 1 {
		return r.TopLeft().String()
	}
	return r.TopLeft().String() + ":" + r.BottomRight().String()
}

// ParseRegion parses A1 notation: "B2", "A1:C5", "$A$1:$C$5", "B:D" (columns) or "2:4" (rows).
func ParseRegion(s string) (Region, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if s == "" {
		return Region{}, fmt.Errorf("empty region reference")
	}

	first, last, isRange := strings.Cut(s, ":")
	if !isRange {
		p, err := parseCellName(first)
		if err != nil {
			return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		return CellRegion(p.Row, p.Col), nil
	}

	if isDigits(first) && isDigits(last) {
		a, _ := strconv.Atoi(first)
		b, _ := strconv.Atoi(last)
		if a < 1 || b < 1 {
			return Region{}, fmt.Errorf("invalid row range %q", s)
		}
		return RowRegion(a-1, b-1), nil
	}
	if isLetters(first) && isLetters(last) {
		a, err := ColumnIndex(first)
		if err != nil {
			return Region{}, fmt.Errorf("invalid column range %q: %w", s, err)
		}
		b, err := ColumnIndex(last)
		if err != nil {
			return Region{}, fmt.Errorf("invalid column range %q: %w", s, err)
		}
		return ColumnRegion(a, b), nil
	}

	p1, err := parseCellName(first)
	if err != nil {
		return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
	}
	p2, err := parseCellName(last)
	if err != nil {
		return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
	}
	return NewRegion(p1.Row, p2.Row, p1.Col, p2.Col), nil
}

// parseCellName parses "A1" into row=0, col=0.
func parseCellName(name string) (CellPosition, error) {
	i := 0
	for i < len(name) && isAlpha(name[i]) {
		i++
	}
	if i == 0 || i == len(name) {
		return CellPosition{}, fmt.Errorf("invalid cell name: %q", name)
	}
	col, err := ColumnIndex(name[:i])
	if err != nil {
		return CellPosition{}, err
	}
	if !isDigits(name[i:]) {
		return CellPosition{}, fmt.Errorf("invalid row in cell name: %q", name)
	}
	row, _ := strconv.Atoi(name[i:])
	if row < 1 {
		return CellPosition{}, fmt.Errorf("invalid row number in cell name: %q", name)
	}
	return CellPosition{Row: row - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ColumnName returns the A1 letters of a 0-based column: 0 is "A", 26 is "AA".
// Columns past the xlsx limit keep counting in the same lettering.
func ColumnName(col int) string {
	if name, err := excelize.ColumnNumberToName(col + 1); err == nil {
		return name
	}
	var buf [8]byte
	i := len(buf)
	for n := col + 1; n > 0 && i > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// ColumnIndex is the inverse of ColumnName for columns within the xlsx limit.
func ColumnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", letters, err)
	}
	return n - 1, nil
}
