package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSheet returns a rows × cols sheet whose cells hold "r,c" strings.
func newTestSheet(t *testing.T, rows, cols int) *Sheet {
	t.Helper()
	data := make([][]any, rows)
	for r := range data {
		data[r] = make([]any, cols)
		for c := range data[r] {
			data[r][c] = CellPosition{Row: r, Col: c}.String()
		}
	}
	return NewSheetFromData(data)
}

func TestSheet_NewSheet(t *testing.T) {
	s := NewSheet(3, 4)
	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, 4, s.Cols())
	assert.Equal(t, NewRegion(0, 2, 0, 3), s.Region())

	c := s.Cell(2, 3)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Row())
	assert.Equal(t, 3, c.Col())
	assert.Nil(t, s.Cell(3, 0))
	assert.Nil(t, s.Cell(0, -1))
	assert.Same(t, c, s.CellAt(CellPosition{Row: 2, Col: 3}))
}

func TestSheet_EmptySheet(t *testing.T) {
	s := NewSheet(0, 5)
	assert.True(t, s.Region().IsEmpty())
	assert.Empty(t, s.Cells(NewRegion(0, 9, 0, 9)))
	assert.Nil(t, s.SetFormatImpl(&Format{Icon: "x"}, CellRegion(0, 0)))
}

func TestSheet_NewSheetFromData(t *testing.T) {
	s := NewSheetFromData([][]any{{1, "a"}, {true}})
	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 2, s.Cols())
	assert.Equal(t, 1, s.Cell(0, 0).Data())
	assert.Equal(t, true, s.Cell(1, 0).Data())
	assert.Nil(t, s.Cell(1, 1).Data())
}

func TestSheet_SetCell(t *testing.T) {
	s := NewSheet(2, 2)
	p := &person{Name: "Ada"}
	require.NoError(t, s.SetCell(1, 1, NewCell(p, WithKey("Name"))))
	assert.Equal(t, "Ada", s.Cell(1, 1).DisplayValue())
	assert.Equal(t, CellPosition{Row: 1, Col: 1}, s.Cell(1, 1).Position())

	assert.ErrorIs(t, s.SetCell(5, 5, NewCell(nil)), ErrEmptyRegion)
}

func TestSheet_CellsClipsToBounds(t *testing.T) {
	s := newTestSheet(t, 3, 3)
	cells := s.Cells(NewRegion(1, 10, -2, 0))
	require.Len(t, cells, 2)
	assert.Equal(t, "A2", cells[0].DisplayValue())
	assert.Equal(t, "A3", cells[1].DisplayValue())
}

func TestSheet_EffectiveFormatLayering(t *testing.T) {
	s := NewSheet(3, 3)
	require.NoError(t, s.ColFormats().Insert(0, 2, &Format{BackgroundColor: "col", ForegroundColor: "col"}))
	require.NoError(t, s.RowFormats().Insert(1, 1, &Format{BackgroundColor: "row"}))
	s.SetCellFormat(1, 1, &Format{ForegroundColor: "cell"})

	f := s.EffectiveFormat(1, 1)
	assert.Equal(t, "row", f.BackgroundColor)
	assert.Equal(t, "cell", f.ForegroundColor)

	f = s.EffectiveFormat(0, 0)
	assert.Equal(t, "col", f.BackgroundColor)
	assert.Nil(t, s.EffectiveFormat(9, 9))
	assert.Nil(t, NewSheet(1, 1).EffectiveFormat(0, 0))
}

func TestSheet_SetFormatImpl_CellRange(t *testing.T) {
	s := NewSheet(3, 3)
	s.SetCellFormat(0, 0, &Format{FontWeight: "bold"})

	changes := s.SetFormatImpl(&Format{BackgroundColor: "#f00"}, NewRegion(0, 0, 0, 1))
	require.Len(t, changes, 2)
	assert.Equal(t, 0, changes[0].Col)
	assert.Equal(t, &Format{FontWeight: "bold"}, changes[0].OldFormat)
	assert.Equal(t, &Format{FontWeight: "bold", BackgroundColor: "#f00"}, changes[0].NewFormat)
	assert.Nil(t, changes[1].OldFormat)
	assert.Equal(t, &Format{BackgroundColor: "#f00"}, changes[1].NewFormat)

	// re-applying the same format changes nothing
	assert.Empty(t, s.SetFormatImpl(&Format{BackgroundColor: "#f00"}, NewRegion(0, 0, 0, 1)))
}

func TestSheet_SetFormatImpl_ClipsAndIgnoresOutside(t *testing.T) {
	s := NewSheet(2, 2)
	assert.Empty(t, s.SetFormatImpl(&Format{Icon: "x"}, NewRegion(5, 6, 5, 6)))
	assert.Len(t, s.SetFormatImpl(&Format{Icon: "x"}, NewRegion(1, 9, 1, 9)), 1)
}

func TestSheet_SetFormatImpl_Rows(t *testing.T) {
	s := NewSheet(3, 3)
	s.SetCellFormat(0, 2, &Format{TextAlign: "right"})

	changes := s.SetFormatImpl(&Format{BackgroundColor: "#0f0"}, RowRegion(0, 0))
	assert.Len(t, changes, 3)
	assert.Equal(t, "#0f0", s.RowFormat(0).BackgroundColor)
	assert.Nil(t, s.RowFormat(1))

	// cells without an own format inherit; cells with one get it merged in
	assert.Nil(t, s.Cell(0, 0).Format)
	assert.Equal(t, &Format{TextAlign: "right", BackgroundColor: "#0f0"}, s.Cell(0, 2).Format)
	assert.Equal(t, "#0f0", s.EffectiveFormat(0, 1).BackgroundColor)
	assert.Nil(t, s.EffectiveFormat(1, 1))
}

func TestSheet_SetFormatImpl_ColumnsMergeIntoExisting(t *testing.T) {
	s := NewSheet(3, 3)
	s.SetFormatImpl(&Format{BackgroundColor: "#111"}, ColumnRegion(0, 2))
	s.SetFormatImpl(&Format{FontWeight: "bold"}, ColumnRegion(1, 1))

	ivs := s.ColFormats().Intervals()
	require.Len(t, ivs, 3)
	assert.Equal(t, &Format{BackgroundColor: "#111", FontWeight: "bold"}, s.ColumnFormat(1))
	assert.Equal(t, &Format{BackgroundColor: "#111"}, s.ColumnFormat(0))
	assert.Equal(t, &Format{BackgroundColor: "#111"}, s.ColumnFormat(2))
}

func TestSheet_SetFormatEmits(t *testing.T) {
	s := NewSheet(3, 3)
	var events []FormatChangedEvent
	unsubscribe := s.OnFormatChanged(func(e FormatChangedEvent) { events = append(events, e) })

	s.SetFormat(&Format{Icon: "i"}, ColumnRegion(1, 1))
	require.Len(t, events, 1)
	assert.Len(t, events[0].CellsChanged, 3)
	assert.Equal(t, []Region{ColumnRegion(1, 1)}, events[0].ColumnRegionsChanged)
	assert.Empty(t, events[0].RowRegionsChanged)

	unsubscribe()
	s.SetFormat(&Format{Icon: "j"}, CellRegion(0, 0))
	assert.Len(t, events, 1)
}

func TestSheet_TrySetCellValue(t *testing.T) {
	s := newTestSheet(t, 2, 2)
	var got [][]CellChange
	s.OnCellsChanged(func(c []CellChange) { got = append(got, c) })

	require.True(t, s.TrySetCellValue(0, 1, "new"))
	assert.Equal(t, "new", s.Cell(0, 1).Data())
	require.Len(t, got, 1)
	assert.Equal(t, []CellChange{{Row: 0, Col: 1, OldValue: "B1", NewValue: "new"}}, got[0])

	assert.False(t, s.TrySetCellValue(4, 4, "x"))
	assert.Len(t, got, 1)
}

func TestSheet_TrySetCellValue_ReplacesNumberWithText(t *testing.T) {
	s := NewSheetFromData([][]any{{1, 2}})
	require.True(t, s.TrySetCellValue(0, 0, "x"))
	assert.Equal(t, "x", s.Cell(0, 0).Data())
	require.True(t, s.TrySetCellValue(0, 1, 2.5))
	assert.Equal(t, 2.5, s.Cell(0, 1).Data())
}

func TestSheet_SetCellValue_Errors(t *testing.T) {
	s := NewSheet(2, 2)
	s.Cell(0, 0).IsReadOnly = true
	s.SetCellFormat(0, 1, &Format{ReadOnly: Bool(true)})
	s.Cell(1, 0).Validators = []Validator{NumberValidator{Strict: true}}

	assert.ErrorIs(t, s.SetCellValue(0, 0, 1), ErrReadOnly)
	assert.ErrorIs(t, s.SetCellValue(0, 1, 1), ErrReadOnly)
	assert.ErrorIs(t, s.SetCellValue(7, 7, 1), ErrEmptyRegion)
	assert.Error(t, s.SetCellValue(1, 0, "abc"))
	assert.NoError(t, s.SetCellValue(1, 0, "12"))
	assert.NoError(t, s.SetCellValue(1, 1, "ok"))
}

func TestSheet_ReadOnlyFromRowFormat(t *testing.T) {
	s := NewSheet(2, 2)
	s.SetFormat(&Format{ReadOnly: Bool(true)}, RowRegion(1, 1))
	assert.True(t, s.IsCellReadOnly(1, 0))
	assert.False(t, s.IsCellReadOnly(0, 0))
	assert.True(t, s.IsCellReadOnly(9, 9))

	// a cell format can lift a row's read-only flag
	s.SetCellFormat(1, 1, &Format{ReadOnly: Bool(false)})
	assert.False(t, s.IsCellReadOnly(1, 1))
}

func TestSheet_LenientValidatorMarksInvalid(t *testing.T) {
	s := NewSheet(1, 1)
	s.Cell(0, 0).Validators = []Validator{SourceValidator{Values: []any{"a", "b"}}}

	require.True(t, s.TrySetCellValue(0, 0, "z"))
	assert.False(t, s.Cell(0, 0).IsValid())
	require.True(t, s.TrySetCellValue(0, 0, "a"))
	assert.True(t, s.Cell(0, 0).IsValid())
}

func TestSheet_BeforeCellsChanged_Cancel(t *testing.T) {
	s := newTestSheet(t, 2, 2)
	s.OnBeforeCellsChanged(func(e *BeforeCellsChangedEvent) { e.Cancel = true })
	changed := 0
	s.OnCellsChanged(func([]CellChange) { changed++ })

	assert.False(t, s.SetCellValues([]CellChange{{Row: 0, Col: 0, NewValue: "x"}}))
	assert.Equal(t, "A1", s.Cell(0, 0).Data())
	assert.Zero(t, changed)
}

func TestSheet_BeforeCellsChanged_Edit(t *testing.T) {
	s := newTestSheet(t, 2, 2)
	s.OnBeforeCellsChanged(func(e *BeforeCellsChangedEvent) {
		for _, c := range e.Changes {
			assert.Equal(t, CellPosition{Row: c.Row, Col: c.Col}.String(), c.OldValue)
			c.NewValue = "edited"
		}
	})

	require.True(t, s.SetCellValues([]CellChange{
		{Row: 0, Col: 0, NewValue: "x"},
		{Row: 1, Col: 1, NewValue: "y"},
	}))
	assert.Equal(t, "edited", s.Cell(0, 0).Data())
	assert.Equal(t, "edited", s.Cell(1, 1).Data())
}

func TestSheet_SetCellValues_PartialReportsFalse(t *testing.T) {
	s := newTestSheet(t, 2, 2)
	s.Cell(1, 1).IsReadOnly = true

	assert.False(t, s.SetCellValues([]CellChange{
		{Row: 0, Col: 0, NewValue: "x"},
		{Row: 1, Col: 1, NewValue: "y"},
	}))
	assert.Equal(t, "x", s.Cell(0, 0).Data())
	assert.Equal(t, "B2", s.Cell(1, 1).Data())
	assert.False(t, s.SetCellValues(nil))
}

func TestSheet_ClearCells(t *testing.T) {
	s := newTestSheet(t, 2, 2)
	s.Cell(0, 1).IsReadOnly = true

	changes := s.ClearCells(NewRegion(0, 0, 0, 1))
	require.Len(t, changes, 1)
	assert.Equal(t, CellChange{Row: 0, Col: 0, OldValue: "A1", NewValue: ""}, changes[0])
	assert.True(t, s.Cell(0, 0).IsBlank())
	assert.False(t, s.Cell(0, 1).IsBlank())
}

func TestSheet_WithOptions(t *testing.T) {
	s := NewSheet(1, 1, WithDefaultCellType("number"), WithSelectionMode(ModeReplace), WithLogger(nil))
	assert.Equal(t, "number", s.Cell(0, 0).Type)
	assert.Equal(t, ModeReplace, s.Selection().Mode)
	assert.NotNil(t, s.logger)
}
