package gridsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordFormatEvents(s *Sheet) *[]FormatChangedEvent {
	var events []FormatChangedEvent
	s.OnFormatChanged(func(e FormatChangedEvent) { events = append(events, e) })
	return &events
}

func TestSetRangeFormatCommand_RowRoundTrip(t *testing.T) {
	s := NewSheet(3, 3)
	events := recordFormatEvents(s)
	format := &Format{BackgroundColor: "#ff0000"}
	cmd := NewSetRangeFormatCommand(format, RowRegion(0, 0))

	require.True(t, cmd.Execute(s))
	assert.Equal(t, StateExecuted, cmd.State())
	assert.Equal(t, "#ff0000", s.RowFormat(0).BackgroundColor)
	for c := range 3 {
		assert.Equal(t, "#ff0000", s.EffectiveFormat(0, c).BackgroundColor)
		assert.Nil(t, s.EffectiveFormat(1, c))
	}
	require.Len(t, *events, 1)
	e := (*events)[0]
	assert.Len(t, e.CellsChanged, 3)
	assert.Equal(t, []Region{RowRegion(0, 0)}, e.RowRegionsChanged)
	assert.Empty(t, e.ColumnRegionsChanged)

	require.True(t, cmd.Undo(s))
	assert.Equal(t, StateUndone, cmd.State())
	assert.Zero(t, s.RowFormats().Len())
	for p := range s.Region().Cells() {
		assert.Nil(t, s.EffectiveFormat(p.Row, p.Col), "%s", p)
	}
	require.Len(t, *events, 2)
	assert.Equal(t, []Region{RowRegion(0, 0)}, (*events)[1].RowRegionsChanged)
}

func TestSetRangeFormatCommand_UndoReportsRegionsPerAxis(t *testing.T) {
	s := NewSheet(4, 4)
	s.SetFormat(&Format{Icon: "c"}, ColumnRegion(1, 1))
	s.SetFormat(&Format{Icon: "r"}, RowRegion(2, 2))
	events := recordFormatEvents(s)

	cmd := NewSetRangeFormatCommand(&Format{FontWeight: "bold"}, RowRegion(0, 0))
	require.True(t, cmd.Execute(s))
	require.True(t, cmd.Undo(s))

	require.Len(t, *events, 2)
	undo := (*events)[1]
	// each axis lists its own snapshot, never the other axis'
	assert.Equal(t, []Region{ColumnRegion(1, 1)}, undo.ColumnRegionsChanged)
	assert.Equal(t, []Region{RowRegion(2, 2), RowRegion(0, 0)}, undo.RowRegionsChanged)

	assert.Equal(t, &Format{Icon: "c"}, s.ColumnFormat(1))
	assert.Equal(t, &Format{Icon: "r"}, s.RowFormat(2))
	assert.Nil(t, s.RowFormat(0))
}

func TestSetRangeFormatCommand_ColumnUndoRestoresMergedStore(t *testing.T) {
	s := NewSheet(3, 3)
	s.SetFormat(&Format{BackgroundColor: "#111"}, ColumnRegion(0, 2))

	cmd := NewSetRangeFormatCommand(&Format{BackgroundColor: "#222", TextAlign: "center"}, ColumnRegion(1, 1))
	require.True(t, cmd.Execute(s))
	assert.Equal(t, &Format{BackgroundColor: "#222", TextAlign: "center"}, s.ColumnFormat(1))

	require.True(t, cmd.Undo(s))
	for c := range 3 {
		assert.Equal(t, &Format{BackgroundColor: "#111"}, s.ColumnFormat(c))
	}
}

func TestSetRangeFormatCommand_CellRangeRestoresOwnFormats(t *testing.T) {
	s := NewSheet(3, 3)
	s.SetCellFormat(1, 1, &Format{ForegroundColor: "#00f", ReadOnly: Bool(true)})

	cmd := NewSetRangeFormatCommand(&Format{ForegroundColor: "#f00"}, NewRegion(0, 1, 0, 1))
	require.True(t, cmd.Execute(s))
	assert.Equal(t, &Format{ForegroundColor: "#f00", ReadOnly: Bool(true)}, s.Cell(1, 1).Format)
	assert.Equal(t, &Format{ForegroundColor: "#f00"}, s.Cell(0, 0).Format)

	require.True(t, cmd.Undo(s))
	assert.Equal(t, &Format{ForegroundColor: "#00f", ReadOnly: Bool(true)}, s.Cell(1, 1).Format)
	assert.Nil(t, s.Cell(0, 0).Format)
	assert.Nil(t, s.Cell(0, 1).Format)
}

func TestSetRangeFormatCommand_RowOverCellWithOwnFormat(t *testing.T) {
	s := NewSheet(2, 2)
	s.SetCellFormat(0, 1, &Format{BackgroundColor: "#eee"})
	events := recordFormatEvents(s)

	cmd := NewSetRangeFormatCommand(&Format{BackgroundColor: "#f00"}, RowRegion(0, 0))
	require.True(t, cmd.Execute(s))
	assert.Equal(t, "#f00", s.EffectiveFormat(0, 1).BackgroundColor, "row format is not hidden by the cell's own")

	require.True(t, cmd.Undo(s))
	assert.Equal(t, &Format{BackgroundColor: "#eee"}, s.Cell(0, 1).Format)
	undo := (*events)[1]
	require.Len(t, undo.CellsChanged, 2)
	assert.Equal(t, &Format{BackgroundColor: "#eee"}, undo.CellsChanged[1].OldFormat)
}

func TestSetRangeFormatCommand_StateMachine(t *testing.T) {
	s := NewSheet(2, 2)
	cmd := NewSetRangeFormatCommand(&Format{Icon: "x"}, CellRegion(0, 0))
	assert.Equal(t, StateCreated, cmd.State())
	assert.Equal(t, "Created", cmd.State().String())

	assert.False(t, cmd.Undo(s), "undo before execute")
	require.True(t, cmd.Execute(s))
	assert.False(t, cmd.Execute(s), "execute twice")
	require.True(t, cmd.Undo(s))
	assert.False(t, cmd.Undo(s), "undo twice")

	// re-execute after undo
	require.True(t, cmd.Execute(s))
	assert.Equal(t, "x", s.Cell(0, 0).Format.Icon)
	require.True(t, cmd.Undo(s))
	assert.Nil(t, s.Cell(0, 0).Format)
}

func TestSetRangeFormatCommand_FormatIsCopied(t *testing.T) {
	s := NewSheet(1, 1)
	f := &Format{Icon: "a"}
	cmd := NewSetRangeFormatCommand(f, CellRegion(0, 0))
	f.Icon = "b"
	require.True(t, cmd.Execute(s))
	assert.Equal(t, "a", s.Cell(0, 0).Format.Icon)
}

func TestSetRangeFormatCommand_OutsideSheet(t *testing.T) {
	s := NewSheet(2, 2)
	events := recordFormatEvents(s)
	cmd := NewSetRangeFormatCommand(&Format{Icon: "x"}, NewRegion(5, 6, 5, 6))
	require.True(t, cmd.Execute(s))
	require.Len(t, *events, 1)
	assert.Empty(t, (*events)[0].CellsChanged)
	require.True(t, cmd.Undo(s))
}

func TestNewSetRangeFormatCommandFromAttrs(t *testing.T) {
	cmd, err := newSetRangeFormatCommandFromAttrs(map[string]string{
		"range":      "A1:B2",
		"background": "#ffcc00",
		"fontWeight": "bold",
		"readOnly":   "true",
	})
	require.NoError(t, err)
	sc := cmd.(*SetRangeFormatCommand)
	assert.Equal(t, NewRegion(0, 1, 0, 1), sc.Region())
	assert.Equal(t, &Format{BackgroundColor: "#ffcc00", FontWeight: "bold", ReadOnly: Bool(true)}, sc.format)

	_, err = newSetRangeFormatCommandFromAttrs(map[string]string{"background": "#fff"})
	assert.Error(t, err)
	_, err = newSetRangeFormatCommandFromAttrs(map[string]string{"range": "A1"})
	assert.Error(t, err)
	_, err = newSetRangeFormatCommandFromAttrs(map[string]string{"range": "A1", "readOnly": "maybe"})
	assert.Error(t, err)
}
