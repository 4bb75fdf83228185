// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// LogParams carries the verbosity flags shared by every command.
// Each -v lowers the log level one step (info to debug), each -q
// raises it one step (info to warn to error).
type LogParams struct {
	Verbose int
	Quiet   int
	Silent  bool
	Debug   bool
}

// AddFlags implements [FlagBinder].
func (p *LogParams) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.CountVarP(&p.Verbose, "verbose", "v", "print more detail (repeatable)")
	flagSet.CountVarP(&p.Quiet, "quiet", "q", "print less detail (repeatable)")
	flagSet.BoolVar(&p.Silent, "silent", false, "print nothing, no matter how important")
	flagSet.BoolVar(&p.Debug, "debug", false, "maximum verbosity")
}

// levelSilent is above every level the tool logs at.
const levelSilent = slog.Level(1 << 10)

// Level returns the effective level given the configured base level.
func (p *LogParams) Level(base slog.Level) slog.Level {
	switch {
	case p.Silent:
		return levelSilent
	case p.Debug:
		return slog.LevelDebug - 4
	}
	return base - slog.Level(4*(p.Verbose-p.Quiet))
}

// ParseLevel parses a configured level name.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, Validation("invalid log level %q: %v", name, err)
	}
	return level, nil
}

// LoggerOptions configures [NewCommandLogger].
type LoggerOptions struct {
	// Level is the minimum level emitted.
	Level slog.Level

	// Format is "text", "json", or "auto" (or empty). Auto selects
	// text when the output is a terminal and JSON otherwise.
	Format string
}

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal and Format is auto, uses slog.TextHandler for
// human-readable output; otherwise (CI, scripts, editors driving the
// tool) uses slog.JSONHandler for machine-parseable output.
func NewCommandLogger(w io.Writer, options LoggerOptions) (*slog.Logger, error) {
	if options.Level >= levelSilent {
		return slog.New(slog.DiscardHandler), nil
	}

	handlerOptions := &slog.HandlerOptions{Level: options.Level}
	format := options.Format
	if format == "" || format == "auto" {
		format = "json"
		if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			format = "text"
		}
	}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	default:
		return nil, Validation("invalid log format %q", format)
	}
}

// Printf writes a line of human-facing output to w unless the level
// silences it.
func Printf(w io.Writer, level slog.Level, format string, args ...any) {
	if level > slog.LevelInfo {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
