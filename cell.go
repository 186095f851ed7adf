package gridsheet

import (
	"fmt"
	"reflect"
)

// DefaultCellType is the type tag given to cells unless configured otherwise.
const DefaultCellType = "text"

// Cell is a single addressable unit of a Sheet. Its position is assigned by
// the sheet and never changes.
type Cell struct {
	row, col int

	// Type tags how the value is interpreted and rendered ("text", "number", "boolean", ...).
	Type string

	// Format is the cell's own format. Nil means the cell inherits from its row and column.
	Format *Format

	// IsReadOnly blocks edits made through the sheet.
	IsReadOnly bool

	// Validators run on every write made through the sheet.
	Validators []Validator

	// Key names the property of Data holding the cell's value, when Data is an object.
	Key string

	accessor Accessor
	data     any
	isBlank  bool
	isValid  bool
}

// CellOption configures a Cell.
type CellOption func(*Cell)

// WithKey projects the cell's value through the named property of its data.
func WithKey(key string) CellOption {
	return func(c *Cell) { c.Key = key }
}

// WithAccessor sets how keyed values are read from and written to the data object.
func WithAccessor(a Accessor) CellOption {
	return func(c *Cell) { c.accessor = a }
}

// WithCellType sets the cell's type tag.
func WithCellType(typ string) CellOption {
	return func(c *Cell) { c.Type = typ }
}

// WithValidators attaches validators to the cell.
func WithValidators(v ...Validator) CellOption {
	return func(c *Cell) { c.Validators = append(c.Validators, v...) }
}

// WithReadOnly marks the cell read-only.
func WithReadOnly(readOnly bool) CellOption {
	return func(c *Cell) { c.IsReadOnly = readOnly }
}

// WithFormat sets the cell's own format.
func WithFormat(f *Format) CellOption {
	return func(c *Cell) { c.Format = f.Clone() }
}

// NewCell creates a cell holding data, which may be a primitive or an object.
func NewCell(data any, opts ...CellOption) *Cell {
	c := &Cell{
		Type:    DefaultCellType,
		data:    data,
		isValid: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Row returns the cell's row.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's column.
func (c *Cell) Col() int { return c.col }

// Position returns the cell's (row, col).
func (c *Cell) Position() CellPosition { return CellPosition{Row: c.row, Col: c.col} }

// Data returns the raw data bound to the cell.
func (c *Cell) Data() any { return c.data }

// IsBlank is true after the cell is cleared and false again once a non-empty
// value is set. Data may still hold a typed default while the cell is blank.
func (c *Cell) IsBlank() bool { return c.isBlank }

// IsValid reports the outcome of the most recent validation.
func (c *Cell) IsValid() bool { return c.isValid }

func (c *Cell) getAccessor() Accessor {
	if c.accessor != nil {
		return c.accessor
	}
	return sharedAccessor
}

// Value returns the cell's value: Data itself, or the Key property of Data.
// A keyed cell with no data has a nil value.
func (c *Cell) Value() (any, error) {
	if c.Key == "" || c.data == nil {
		return c.data, nil
	}
	return c.getAccessor().Get(c.data, c.Key)
}

// GetValue returns the cell's value converted to typ. A nil value converts to
// "" for strings; every other failed conversion returns ErrNotConvertible.
func (c *Cell) GetValue(typ reflect.Type) (any, error) {
	v, err := c.Value()
	if err != nil {
		return nil, err
	}
	return convertTo(v, typ)
}

// ValueAs returns the cell's value converted to T.
func ValueAs[T any](c *Cell) (T, error) {
	var zero T
	v, err := c.GetValue(reflect.TypeFor[T]())
	if err != nil || v == nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T to %T", ErrNotConvertible, v, zero)
	}
	return out, nil
}

// DisplayValue returns the value as text, or "" when it cannot be read.
func (c *Cell) DisplayValue() string {
	s, err := ValueAs[string](c)
	if err != nil {
		return ""
	}
	return s
}

// SetValue writes v to the cell. A plain cell takes v as its new data; a keyed
// cell converts v to the type of the projected property. On success a
// non-empty value clears IsBlank. Writes made here bypass validation and raise
// no sheet events.
func (c *Cell) SetValue(v any) error {
	if err := c.setValue(v); err != nil {
		return err
	}
	if cur, err := c.Value(); err == nil && cur != nil && fmt.Sprint(cur) != "" {
		c.isBlank = false
	}
	return nil
}

// TrySetValue is SetValue reporting only success.
func (c *Cell) TrySetValue(v any) bool {
	return c.SetValue(v) == nil
}

func (c *Cell) setValue(v any) error {
	if c.Key != "" {
		if c.data == nil {
			return fmt.Errorf("cell %s key %q: %w", c.Position(), c.Key, ErrNoProperty)
		}
		return c.getAccessor().Set(c.data, c.Key, v)
	}
	c.data = v
	return nil
}

// Clear resets the value to the zero value of its type and marks the cell
// blank. It reports whether the cell was cleared.
func (c *Cell) Clear() bool {
	cur, err := c.Value()
	if err != nil || cur == nil {
		return false
	}
	if err := c.SetValue(zeroOf(cur)); err != nil {
		return false
	}
	c.isBlank = true
	return true
}

// restore puts back a value and blank flag captured before an edit.
func (c *Cell) restore(v any, blank bool) {
	if c.Key == "" {
		c.data = v
	} else if c.data != nil {
		_ = c.getAccessor().Set(c.data, c.Key, v)
	}
	c.isBlank = blank
}
