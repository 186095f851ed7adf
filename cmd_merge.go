package gridsheet

import (
	"fmt"
	"strconv"
)

// MergeCellsCommand merges a region of cells. Execute fails without changing
// anything when the region overlaps an existing merge.
type MergeCellsCommand struct {
	region Region
	state  CommandState
	merged Region
	err    error
}

// NewMergeCellsCommand creates a command merging region.
func NewMergeCellsCommand(region Region) *MergeCellsCommand {
	return &MergeCellsCommand{region: region}
}

func (c *MergeCellsCommand) Name() string { return "mergeCells" }

// Err returns the reason the last Execute failed, if it did.
func (c *MergeCellsCommand) Err() error { return c.err }

func (c *MergeCellsCommand) Execute(sheet *Sheet) bool {
	if !c.state.canExecute() {
		return false
	}
	target := c.region.Constrain(sheet.Region())
	if c.err = sheet.MergeCells(c.region); c.err != nil {
		return false
	}
	if target.Area() == 1 {
		c.err = fmt.Errorf("merge %s: single cell", target)
		return false
	}
	c.merged = target
	c.state = StateExecuted
	return true
}

func (c *MergeCellsCommand) Undo(sheet *Sheet) bool {
	if !c.state.canUndo() {
		return false
	}
	sheet.UnmergeCells(c.merged)
	c.state = StateUndone
	return true
}

// newMergeCellsCommandFromAttrs builds a command from either a range
// attribute or a top-left cell with rows and cols counts.
func newMergeCellsCommandFromAttrs(attrs map[string]string) (Command, error) {
	if attrs["range"] != "" {
		region, err := regionAttr("mergeCells", attrs)
		if err != nil {
			return nil, err
		}
		return NewMergeCellsCommand(region), nil
	}

	start, err := ParseRegion(attrs["cell"])
	if err != nil {
		return nil, fmt.Errorf("mergeCells command requires 'range' or 'cell' attribute: %w", err)
	}
	rows, cols := 1, 1
	if v := attrs["rows"]; v != "" {
		if rows, err = strconv.Atoi(v); err != nil || rows < 1 {
			return nil, fmt.Errorf("mergeCells command: invalid rows %q", v)
		}
	}
	if v := attrs["cols"]; v != "" {
		if cols, err = strconv.Atoi(v); err != nil || cols < 1 {
			return nil, fmt.Errorf("mergeCells command: invalid cols %q", v)
		}
	}
	tl := start.TopLeft()
	return NewMergeCellsCommand(NewRegion(tl.Row, tl.Row+rows-1, tl.Col, tl.Col+cols-1)), nil
}
