// Package diag sets up logging and the gops diagnostics agent for the CLIs.
package diag

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/gops/agent"
)

// NewLogger returns a text logger writing to w, at Debug level when verbose
// and Warn otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// StartAgent starts the gops agent so a running render can be inspected
// with `gops stack`, `gops memstats` and friends. The returned function
// stops it.
func StartAgent() (stop func(), err error) {
	if err := agent.Listen(agent.Options{}); err != nil {
		return nil, fmt.Errorf("diag: start gops agent: %w", err)
	}
	return agent.Close, nil
}
