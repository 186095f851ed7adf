package gridsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the worksheet name used when none is given.
const DefaultSheetName = "Sheet1"

// WriteXLSX writes the sheet as a single-worksheet xlsx workbook. Cell
// values, merged regions and effective formats are exported.
func (s *Sheet) WriteXLSX(w io.Writer, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	f := excelize.NewFile()
	defer f.Close()
	if sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheetName); err != nil {
			return fmt.Errorf("rename worksheet: %w", err)
		}
	}

	styles := make(map[string]int)
	for r := range s.rows {
		for c := range s.cols {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			cell := s.cells[r][c]
			v, err := cell.Value()
			if err != nil {
				s.logger.Warn("skipping unreadable cell", "cell", name, "error", err)
			} else if v != nil && !cell.IsBlank() {
				if err := writeValue(f, sheetName, name, v); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
			}

			format := s.EffectiveFormat(r, c)
			if format.IsEmpty() {
				continue
			}
			key := format.String()
			styleID, ok := styles[key]
			if !ok {
				if styleID, err = f.NewStyle(excelStyle(format)); err != nil {
					return fmt.Errorf("style %s: %w", name, err)
				}
				styles[key] = styleID
			}
			if err := f.SetCellStyle(sheetName, name, name, styleID); err != nil {
				return fmt.Errorf("style %s: %w", name, err)
			}
		}
	}

	for _, m := range s.merges {
		tl, br := m.TopLeft(), m.BottomRight()
		if err := f.MergeCell(sheetName, tl.String(), br.String()); err != nil {
			return fmt.Errorf("merge %s: %w", m, err)
		}
	}

	s.logger.Debug("xlsx written", "sheet", sheetName, "rows", s.rows, "cols", s.cols, "styles", len(styles))
	return f.Write(w)
}

// ReadXLSX loads a worksheet into a new sheet sized to its used range.
// Values that look like numbers or booleans are stored as such. Merged
// regions become merges and cell styles become per-cell formats. An empty
// sheetName selects the first worksheet.
func ReadXLSX(r io.Reader, sheetName string, opts ...Option) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("open workbook: no worksheets")
		}
		sheetName = list[0]
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", sheetName, err)
	}
	mcs, err := f.GetMergeCells(sheetName, true)
	if err != nil {
		return nil, fmt.Errorf("read merges of %q: %w", sheetName, err)
	}

	merges := make([]Region, 0, len(mcs))
	nRows, nCols := len(rows), 0
	for _, row := range rows {
		nCols = max(nCols, len(row))
	}
	for _, mc := range mcs {
		m, err := ParseRegion(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("read merges of %q: %w", sheetName, err)
		}
		merges = append(merges, m)
		nRows, nCols = max(nRows, m.RowEnd+1), max(nCols, m.ColEnd+1)
	}

	s := NewSheet(nRows, nCols, opts...)
	for ri, row := range rows {
		for ci, text := range row {
			if text != "" {
				s.cells[ri][ci].data = parseScalar(text)
			}
		}
	}
	for _, m := range merges {
		if err := s.MergeCells(m); err != nil {
			return nil, err
		}
	}
	for p := range s.Region().Cells() {
		name := p.String()
		if ok, url, err := f.GetCellHyperLink(sheetName, name); err == nil && ok {
			s.cells[p.Row][p.Col].data = Hyperlink(url, s.cells[p.Row][p.Col].DisplayValue())
		}
		styleID, err := f.GetCellStyle(sheetName, name)
		if err != nil || styleID == 0 {
			continue
		}
		style, err := f.GetStyle(styleID)
		if err != nil {
			return nil, fmt.Errorf("read style of %s: %w", name, err)
		}
		if format := formatFromStyle(style); !format.IsEmpty() {
			s.SetCellFormat(p.Row, p.Col, format)
		}
	}
	s.logger.Debug("xlsx read", "sheet", sheetName, "rows", nRows, "cols", nCols, "merges", len(merges))
	return s, nil
}

func writeValue(f *excelize.File, sheetName, name string, v any) error {
	link, ok := v.(HyperlinkValue)
	if !ok {
		return f.SetCellValue(sheetName, name, v)
	}
	if err := f.SetCellValue(sheetName, name, link.String()); err != nil {
		return err
	}
	return f.SetCellHyperLink(sheetName, name, link.URL, "External")
}

// excelStyle maps a format onto an excelize style.
func excelStyle(format *Format) *excelize.Style {
	style := &excelize.Style{}
	if format.BackgroundColor != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(format.BackgroundColor)}}
	}
	if format.ForegroundColor != "" || format.FontWeight == "bold" {
		style.Font = &excelize.Font{
			Bold:  format.FontWeight == "bold",
			Color: hexColor(format.ForegroundColor),
		}
	}
	switch format.TextAlign {
	case "left", "center", "right", "justify":
		style.Alignment = &excelize.Alignment{Horizontal: format.TextAlign}
	}
	if format.NumberFormat != "" {
		nf := format.NumberFormat
		style.CustomNumFmt = &nf
	}
	if format.ReadOnly != nil {
		style.Protection = &excelize.Protection{Locked: *format.ReadOnly}
	}
	return style
}

// formatFromStyle is the inverse of excelStyle for the properties it sets.
func formatFromStyle(style *excelize.Style) *Format {
	format := &Format{}
	if style.Fill.Type == "pattern" && len(style.Fill.Color) > 0 && style.Fill.Color[0] != "" {
		format.BackgroundColor = cssColor(style.Fill.Color[0])
	}
	if style.Font != nil {
		if style.Font.Bold {
			format.FontWeight = "bold"
		}
		if style.Font.Color != "" {
			format.ForegroundColor = cssColor(style.Font.Color)
		}
	}
	if style.Alignment != nil {
		format.TextAlign = style.Alignment.Horizontal
	}
	if style.CustomNumFmt != nil {
		format.NumberFormat = *style.CustomNumFmt
	}
	if style.Protection != nil && style.Protection.Locked {
		format.ReadOnly = Bool(true)
	}
	return format
}

// hexColor turns "#rrggbb" into the "RRGGBB" form excelize stores.
func hexColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(c, "#"))
}

// cssColor turns an "RRGGBB" or "AARRGGBB" value back into "#rrggbb".
func cssColor(c string) string {
	if len(c) == 8 {
		c = c[2:]
	}
	return "#" + strings.ToLower(c)
}
