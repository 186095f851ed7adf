package gridsheet

import "log/slog"

// Options holds configuration for a Sheet.
type Options struct {
	logger          *slog.Logger
	selectionMode   SelectionMode
	defaultCellType string
}

func defaultOptions() *Options {
	return &Options{
		logger:          slog.New(slog.DiscardHandler),
		selectionMode:   ModeAppend,
		defaultCellType: DefaultCellType,
	}
}

// Option configures a Sheet.
type Option func(*Options)

// WithLogger sets the logger used for diagnostic output (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSelectionMode sets whether committed selections append to or replace
// the sheet selection's existing regions (default: ModeAppend).
func WithSelectionMode(m SelectionMode) Option {
	return func(o *Options) { o.selectionMode = m }
}

// WithDefaultCellType sets the type tag of default-initialized cells.
func WithDefaultCellType(typ string) Option {
	return func(o *Options) { o.defaultCellType = typ }
}
