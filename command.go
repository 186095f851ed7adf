package gridsheet

import (
	"fmt"
	"maps"
	"slices"
)

// Command is a reversible mutation of a Sheet. Execute applies it and Undo
// restores the state captured by the preceding Execute. Both report whether
// they ran; a command can be executed again after it has been undone.
type Command interface {
	Name() string
	Execute(sheet *Sheet) bool
	Undo(sheet *Sheet) bool
}

// CommandState is the lifecycle position of a command.
type CommandState int

const (
	StateCreated CommandState = iota
	StateExecuted
	StateUndone
)

// String returns a human-readable name for the CommandState.
func (st CommandState) String() string {
	switch st {
	case StateCreated:
		return "Created"
	case StateExecuted:
		return "Executed"
	case StateUndone:
		return "Undone"
	default:
		return "Unknown"
	}
}

// canExecute reports whether a command in state st may run Execute.
func (st CommandState) canExecute() bool { return st != StateExecuted }

// canUndo reports whether a command in state st may run Undo.
func (st CommandState) canUndo() bool { return st == StateExecuted }

// CommandFactory creates a Command from parsed attributes.
type CommandFactory func(attrs map[string]string) (Command, error)

// CommandRegistry maps command names to their factories.
type CommandRegistry struct {
	factories map[string]CommandFactory
}

// NewCommandRegistry creates a registry with the built-in commands.
func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{
		factories: make(map[string]CommandFactory),
	}
	r.Register("setFormat", newSetRangeFormatCommandFromAttrs)
	r.Register("setValue", newSetCellValueCommandFromAttrs)
	r.Register("clear", newClearCellsCommandFromAttrs)
	r.Register("mergeCells", newMergeCellsCommandFromAttrs)
	return r
}

// Register adds a command factory, replacing any factory of the same name.
func (r *CommandRegistry) Register(name string, factory CommandFactory) {
	r.factories[name] = factory
}

// Names returns the registered command names in sorted order.
func (r *CommandRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.factories))
}

// Create builds a command by name.
func (r *CommandRegistry) Create(name string, attrs map[string]string) (Command, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	return factory(attrs)
}

// regionAttr parses the required "range" attribute.
func regionAttr(cmd string, attrs map[string]string) (Region, error) {
	ref, ok := attrs["range"]
	if !ok || ref == "" {
		return Region{}, fmt.Errorf("%s command requires 'range' attribute", cmd)
	}
	r, err := ParseRegion(ref)
	if err != nil {
		return Region{}, fmt.Errorf("%s command: %w", cmd, err)
	}
	return r, nil
}
