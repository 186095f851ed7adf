package gridsheet

import (
	"fmt"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// Format is a sparse set of visual and behavioral cell properties.
// An empty string or nil pointer means the property is unset.
type Format struct {
	BackgroundColor string
	ForegroundColor string
	FontWeight      string // "bold", "normal", ...
	TextAlign       string // "left", "center", "right"
	Icon            string
	IconColor       string
	NumberFormat    string
	ReadOnly        *bool
}

// Bool returns a pointer to b, for the optional flags of a Format.
func Bool(b bool) *bool { return &b }

// Clone returns a deep copy of f. Cloning nil yields nil.
func (f *Format) Clone() *Format {
	if f == nil {
		return nil
	}
	var out Format
	if err := deepcopy.Copy(&out, *f); err != nil {
		out = *f
		if f.ReadOnly != nil {
			out.ReadOnly = Bool(*f.ReadOnly)
		}
	}
	return &out
}

// Merge copies every property set in other onto f. Properties other leaves
// unset keep their current value.
func (f *Format) Merge(other *Format) {
	if other == nil {
		return
	}
	mergeString(&f.BackgroundColor, other.BackgroundColor)
	mergeString(&f.ForegroundColor, other.ForegroundColor)
	mergeString(&f.FontWeight, other.FontWeight)
	mergeString(&f.TextAlign, other.TextAlign)
	mergeString(&f.Icon, other.Icon)
	mergeString(&f.IconColor, other.IconColor)
	mergeString(&f.NumberFormat, other.NumberFormat)
	if other.ReadOnly != nil {
		f.ReadOnly = Bool(*other.ReadOnly)
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Merged returns a copy of f with other merged in. f itself is unchanged.
func (f *Format) Merged(other *Format) *Format {
	out := f.Clone()
	if out == nil {
		out = &Format{}
	}
	out.Merge(other)
	return out
}

// IsEmpty reports whether no property is set. A nil Format is empty.
func (f *Format) IsEmpty() bool {
	return f == nil || *f == Format{}
}

// IsReadOnly reports the effective read-only flag.
func (f *Format) IsReadOnly() bool {
	return f != nil && f.ReadOnly != nil && *f.ReadOnly
}

// Equal compares two formats property by property. Nil equals nil only.
func (f *Format) Equal(other *Format) bool {
	if f == nil || other == nil {
		return f == nil && other == nil
	}
	a, b := *f, *other
	a.ReadOnly, b.ReadOnly = nil, nil
	if a != b {
		return false
	}
	switch {
	case f.ReadOnly == nil && other.ReadOnly == nil:
		return true
	case f.ReadOnly == nil || other.ReadOnly == nil:
		return false
	}
	return *f.ReadOnly == *other.ReadOnly
}

// EquivalentFormats treats nil and an empty Format as the same rendering.
func EquivalentFormats(a, b *Format) bool {
	if a.IsEmpty() && b.IsEmpty() {
		return true
	}
	return a.Equal(b)
}

// String returns a stable key listing the set properties, e.g. "bg=#f00;weight=bold".
func (f *Format) String() string {
	if f.IsEmpty() {
		return ""
	}
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("bg", f.BackgroundColor)
	add("fg", f.ForegroundColor)
	add("weight", f.FontWeight)
	add("align", f.TextAlign)
	add("icon", f.Icon)
	add("iconColor", f.IconColor)
	add("numFmt", f.NumberFormat)
	if f.ReadOnly != nil {
		parts = append(parts, fmt.Sprintf("readOnly=%t", *f.ReadOnly))
	}
	return strings.Join(parts, ";")
}

// MergeFormats layers formats in order, later layers winning. It returns nil
// when every layer is nil.
func MergeFormats(layers ...*Format) *Format {
	var out *Format
	for _, l := range layers {
		if l == nil {
			continue
		}
		if out == nil {
			out = l.Clone()
			continue
		}
		out.Merge(l)
	}
	return out
}
