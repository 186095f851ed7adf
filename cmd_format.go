package gridsheet

import (
	"fmt"

	"github.com/javajack/gridsheet/interval"
)

// SetRangeFormatCommand merges a format into a cell, row or column range.
// Only the properties the format sets are changed.
type SetRangeFormatCommand struct {
	format *Format
	region Region
	state  CommandState

	rowFormats []interval.Interval[*Format]
	colFormats []interval.Interval[*Format]
	changed    []CellChangedFormat // one per cell, in first-seen order
}

// NewSetRangeFormatCommand creates a command setting format over region.
func NewSetRangeFormatCommand(format *Format, region Region) *SetRangeFormatCommand {
	return &SetRangeFormatCommand{format: format.Clone(), region: region}
}

func (c *SetRangeFormatCommand) Name() string { return "setFormat" }

// State returns the command's lifecycle position.
func (c *SetRangeFormatCommand) State() CommandState { return c.state }

// Region returns the range the command formats.
func (c *SetRangeFormatCommand) Region() Region { return c.region }

// Execute snapshots the row and column format stores, applies the format and
// notifies format listeners.
func (c *SetRangeFormatCommand) Execute(sheet *Sheet) bool {
	if !c.state.canExecute() {
		return false
	}
	c.colFormats = sheet.ColFormats().CloneAllIntervals()
	c.rowFormats = sheet.RowFormats().CloneAllIntervals()

	changes := sheet.SetFormatImpl(c.format, c.region)
	seen := make(map[CellPosition]bool, len(changes))
	c.changed = c.changed[:0]
	for _, ch := range changes {
		p := CellPosition{Row: ch.Row, Col: ch.Col}
		if seen[p] {
			continue
		}
		seen[p] = true
		c.changed = append(c.changed, CellChangedFormat{
			Row:       ch.Row,
			Col:       ch.Col,
			OldFormat: ch.OldFormat.Clone(),
			NewFormat: c.format,
		})
	}

	e := FormatChangedEvent{CellsChanged: append([]CellChangedFormat(nil), c.changed...)}
	switch c.region.Kind {
	case KindColumns:
		e.ColumnRegionsChanged = []Region{c.region}
	case KindRows:
		e.RowRegionsChanged = []Region{c.region}
	}
	sheet.EmitFormatChanged(e)

	c.state = StateExecuted
	sheet.logger.Debug("command executed", "command", c.Name(), "range", c.region.String(), "cells", len(c.changed))
	return true
}

// Undo restores both format stores wholesale from the snapshots, puts back
// each changed cell's own format and raises one aggregated format event.
// Each axis reports the regions of its own snapshot plus the command's range
// when the range is on that axis.
func (c *SetRangeFormatCommand) Undo(sheet *Sheet) bool {
	if !c.state.canUndo() {
		return false
	}
	sheet.RowFormats().Clear()
	sheet.ColFormats().Clear()
	// snapshots came from a disjoint store, so AddRange cannot fail
	_ = sheet.RowFormats().AddRange(cloneIntervals(c.rowFormats))
	_ = sheet.ColFormats().AddRange(cloneIntervals(c.colFormats))

	colRegions := make([]Region, 0, len(c.colFormats)+1)
	for _, iv := range c.colFormats {
		colRegions = append(colRegions, ColumnRegion(iv.Start, iv.End))
	}
	rowRegions := make([]Region, 0, len(c.rowFormats)+1)
	for _, iv := range c.rowFormats {
		rowRegions = append(rowRegions, RowRegion(iv.Start, iv.End))
	}
	switch c.region.Kind {
	case KindColumns:
		colRegions = append(colRegions, c.region)
	case KindRows:
		rowRegions = append(rowRegions, c.region)
	}

	reverted := make([]CellChangedFormat, 0, len(c.changed))
	for _, ch := range c.changed {
		sheet.SetCellFormat(ch.Row, ch.Col, ch.OldFormat)
		reverted = append(reverted, ch)
	}
	c.changed = nil

	sheet.EmitFormatChanged(FormatChangedEvent{
		CellsChanged:         reverted,
		ColumnRegionsChanged: colRegions,
		RowRegionsChanged:    rowRegions,
	})
	c.state = StateUndone
	sheet.logger.Debug("command undone", "command", c.Name(), "range", c.region.String())
	return true
}

// cloneIntervals copies a snapshot so that a later re-execute cannot mutate it.
func cloneIntervals(in []interval.Interval[*Format]) []interval.Interval[*Format] {
	out := make([]interval.Interval[*Format], len(in))
	for i, iv := range in {
		out[i] = interval.Interval[*Format]{Start: iv.Start, End: iv.End, Value: iv.Value.Clone()}
	}
	return out
}

// newSetRangeFormatCommandFromAttrs builds a command from script attributes:
// range plus any of background, foreground, fontWeight, textAlign, icon,
// iconColor, numberFormat and readOnly.
func newSetRangeFormatCommandFromAttrs(attrs map[string]string) (Command, error) {
	region, err := regionAttr("setFormat", attrs)
	if err != nil {
		return nil, err
	}
	f := &Format{
		BackgroundColor: attrs["background"],
		ForegroundColor: attrs["foreground"],
		FontWeight:      attrs["fontWeight"],
		TextAlign:       attrs["textAlign"],
		Icon:            attrs["icon"],
		IconColor:       attrs["iconColor"],
		NumberFormat:    attrs["numberFormat"],
	}
	if ro, ok := attrs["readOnly"]; ok {
		switch ro {
		case "true":
			f.ReadOnly = Bool(true)
		case "false":
			f.ReadOnly = Bool(false)
		default:
			return nil, fmt.Errorf("setFormat command: invalid readOnly %q", ro)
		}
	}
	if f.IsEmpty() {
		return nil, fmt.Errorf("setFormat command requires at least one format attribute")
	}
	return NewSetRangeFormatCommand(f, region), nil
}
