package gridsheet

import (
	"fmt"
	"io"
	"strings"
)

// DescribeXLSX reads a worksheet and returns its human-readable description.
func DescribeXLSX(r io.Reader, sheetName string, opts ...Option) (string, error) {
	s, err := ReadXLSX(r, sheetName, opts...)
	if err != nil {
		return "", err
	}
	return s.Describe(), nil
}

// Describe returns a human-readable dump of the sheet: size, merges, row and
// column formats, non-empty cells with their own formats, and the selection.
// Useful for debugging scripts during development.
func (s *Sheet) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sheet %dx%d\n", s.rows, s.cols)

	if len(s.merges) > 0 {
		b.WriteString("  Merges:\n")
		for _, m := range s.merges {
			fmt.Fprintf(&b, "    %s\n", m)
		}
	}
	if s.colFormats.Len() > 0 {
		b.WriteString("  Column formats:\n")
		for _, iv := range s.colFormats.Intervals() {
			fmt.Fprintf(&b, "    %s %s\n", ColumnRegion(iv.Start, iv.End), iv.Value)
		}
	}
	if s.rowFormats.Len() > 0 {
		b.WriteString("  Row formats:\n")
		for _, iv := range s.rowFormats.Intervals() {
			fmt.Fprintf(&b, "    %s %s\n", RowRegion(iv.Start, iv.End), iv.Value)
		}
	}

	var lines []string
	for p := range s.Region().Cells() {
		c := s.cells[p.Row][p.Col]
		v := c.DisplayValue()
		if v == "" && c.Format.IsEmpty() && !c.IsBlank() {
			continue
		}
		line := fmt.Sprintf("    %s: %q", p, v)
		if !c.Format.IsEmpty() {
			line += " " + c.Format.String()
		}
		if c.IsBlank() {
			line += " (blank)"
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		b.WriteString("  Cells:\n")
		for _, l := range lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}

	if !s.selection.IsEmpty() {
		parts := make([]string, 0, len(s.selection.regions))
		for _, r := range s.selection.regions {
			parts = append(parts, r.String())
		}
		fmt.Fprintf(&b, "  Selection: %s active=%s\n", strings.Join(parts, ","), s.selection.ActiveCellPosition())
	}
	return b.String()
}

// DescribeCommand returns a command's name and key attributes for display.
func DescribeCommand(cmd Command) string {
	var parts []string
	switch c := cmd.(type) {
	case *SetRangeFormatCommand:
		parts = append(parts, fmt.Sprintf("range=%q", c.region))
		parts = append(parts, fmt.Sprintf("format=%q", c.format))
	case *SetCellValueCommand:
		parts = append(parts, fmt.Sprintf("range=%q", c.region))
		parts = append(parts, fmt.Sprintf("value=%q", fmt.Sprint(c.value)))
	case *ClearCellsCommand:
		parts = append(parts, fmt.Sprintf("range=%q", c.region))
	case *MergeCellsCommand:
		parts = append(parts, fmt.Sprintf("range=%q", c.region))
	}
	if len(parts) == 0 {
		return cmd.Name()
	}
	return cmd.Name() + " " + strings.Join(parts, " ")
}
