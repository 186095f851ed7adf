package gridsheet

// DefaultHistoryLimit is the number of commands a History keeps by default.
const DefaultHistoryLimit = 100

// History sequences commands against one sheet and keeps undo and redo stacks.
type History struct {
	sheet *Sheet
	limit int
	undo  []Command
	redo  []Command
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithHistoryLimit caps the undo stack. Zero or less disables undo.
func WithHistoryLimit(n int) HistoryOption {
	return func(h *History) { h.limit = n }
}

// NewHistory creates an empty history for sheet.
func NewHistory(sheet *Sheet, opts ...HistoryOption) *History {
	h := &History{sheet: sheet, limit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Execute runs cmd and, if it succeeds, records it and drops the redo stack.
func (h *History) Execute(cmd Command) bool {
	if !cmd.Execute(h.sheet) {
		return false
	}
	h.push(cmd)
	h.redo = nil
	return true
}

// Undo reverts the most recent command.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	i := len(h.undo) - 1
	cmd := h.undo[i]
	if !cmd.Undo(h.sheet) {
		return false
	}
	h.undo = h.undo[:i]
	h.redo = append(h.redo, cmd)
	return true
}

// Redo re-executes the most recently undone command.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	i := len(h.redo) - 1
	cmd := h.redo[i]
	if !cmd.Execute(h.sheet) {
		return false
	}
	h.redo = h.redo[:i]
	h.push(cmd)
	return true
}

func (h *History) push(cmd Command) {
	if h.limit <= 0 {
		return
	}
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}
