package vissim

import (
	"io"
	"log/slog"
)

// WithLogger sets logger for the document and every view built on top of it
func WithLogger(logger *slog.Logger) func(*Document) {
	return func(doc *Document) {
		if logger != nil {
			doc.logger = logger
		}
	}
}

// WithIndent makes Export pretty-print the tree with given number of spaces.
// Zero (default) keeps whitespace exactly as loaded.
func WithIndent(spaces int) func(*Document) {
	return func(doc *Document) {
		doc.indent = spaces
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
