package gridsheet

// CellChangedFormat records one cell's own format before and after a change.
type CellChangedFormat struct {
	Row       int
	Col       int
	OldFormat *Format
	NewFormat *Format
}

// FormatChangedEvent describes a batch of format changes: the individual cells
// whose format changed and the whole rows and columns whose format changed.
type FormatChangedEvent struct {
	CellsChanged         []CellChangedFormat
	ColumnRegionsChanged []Region
	RowRegionsChanged    []Region
}

// CellChange describes a value written to one cell.
type CellChange struct {
	Row      int
	Col      int
	OldValue any
	NewValue any
}

// BeforeCellsChangedEvent is raised before values are written. Handlers may
// edit NewValue on any change or set Cancel to stop the whole write.
type BeforeCellsChangedEvent struct {
	Changes []*CellChange
	Cancel  bool
}

// MergesChangedEvent lists merged regions that were added or removed.
type MergesChangedEvent struct {
	Added   []Region
	Removed []Region
}

// listenerSet holds subscribers for one event type. Handlers run synchronously
// in subscription order and must not re-enter the operation that raised the event.
type listenerSet[E any] struct {
	nextID  int
	entries []listenerEntry[E]
}

type listenerEntry[E any] struct {
	id int
	fn func(E)
}

// add registers fn and returns a function that removes it.
func (l *listenerSet[E]) add(fn func(E)) func() {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry[E]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listenerSet[E]) emit(e E) {
	entries := l.entries
	for _, entry := range entries {
		entry.fn(e)
	}
}

func (l *listenerSet[E]) len() int { return len(l.entries) }
