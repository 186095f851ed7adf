package gridsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheet_Describe(t *testing.T) {
	s := buildExportSheet(t)
	s.Selection().SetSingleCell(1, 1)
	output := s.Describe()

	assert.True(t, strings.HasPrefix(output, "Sheet 4x3\n"))
	assert.Contains(t, output, "Merges:\n    A4:B4\n")
	assert.Contains(t, output, "Column formats:\n    B:B align=right\n")
	assert.Contains(t, output, "Row formats:\n    1:1 fg=#ff0000;weight=bold\n")
	assert.Contains(t, output, `A2: "Apple"`)
	assert.Contains(t, output, `A4: "Total" bg=#00ff00`)
	assert.Contains(t, output, "Selection: B2 active=B2")
	assert.NotContains(t, output, "C4:")
}

func TestSheet_DescribeBlankCells(t *testing.T) {
	s := NewSheetFromData([][]any{{"x"}})
	s.ClearCells(s.Region())
	assert.Contains(t, s.Describe(), `A1: "" (blank)`)
}

func TestSheet_DescribeEmpty(t *testing.T) {
	assert.Equal(t, "Sheet 2x2\n", NewSheet(2, 2).Describe())
}

func TestDescribeXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, buildExportSheet(t).WriteXLSX(&buf, ""))

	output, err := DescribeXLSX(&buf, "")
	require.NoError(t, err)
	assert.Contains(t, output, "Sheet 4x3")
	assert.Contains(t, output, "A4:B4")

	_, err = DescribeXLSX(strings.NewReader("junk"), "")
	assert.Error(t, err)
}

func TestDescribeCommand(t *testing.T) {
	assert.Equal(t, `setFormat range="A1:B2" format="bg=#fff"`,
		DescribeCommand(NewSetRangeFormatCommand(&Format{BackgroundColor: "#fff"}, NewRegion(0, 1, 0, 1))))
	assert.Equal(t, `setValue range="C3" value="7"`, DescribeCommand(NewSetCellValueCommand(CellRegion(2, 2), 7)))
	assert.Equal(t, `clear range="1:2"`, DescribeCommand(NewClearCellsCommand(RowRegion(0, 1))))
	assert.Equal(t, `mergeCells range="A1:B1"`, DescribeCommand(NewMergeCellsCommand(NewRegion(0, 0, 0, 1))))
}
