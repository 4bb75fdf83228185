// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the platebake command tree. A node either
// runs (Run set) or groups further commands (Subcommands set); a node
// with both runs when its first argument names no subcommand.
type Command struct {
	Name string

	// Summary is the one-liner in the parent's command list.
	Summary string

	// Description is the longer text at the top of the command's help.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	Examples []Example

	// Flags builds the command's flag set. It is called for parsing
	// and again for help and suggestions, so it must return a fresh
	// set each time. Nil means no flags.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	Run func(ctx context.Context, args []string) error

	// Output receives help text. Subcommands inherit it; the default
	// is os.Stderr.
	Output io.Writer

	parent *Command
}

// Example is one entry of the help's Examples section.
type Example struct {
	Description string
	Command     string
}

// Execute dispatches args to the matching subcommand, or parses flags
// and calls Run.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.output())
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if sub := c.subcommand(args[0]); sub != nil {
			sub.parent = c
			return sub.Execute(ctx, args[1:])
		}
		if c.Run == nil {
			return c.unknownSubcommand(args[0])
		}
	}

	if c.Run == nil {
		c.PrintHelp(c.output())
		switch {
		case len(c.Subcommands) == 0:
			return Validation("no action defined for %q", c.fullName())
		case len(args) == 0:
			return Validation("subcommand required")
		default:
			return Validation("subcommand required (got flag %q)", args[0])
		}
	}

	if c.Flags != nil {
		remaining, err := c.parseFlags(args)
		if err != nil {
			return err
		}
		if remaining == nil {
			return nil
		}
		args = remaining
	}
	return c.Run(ctx, args)
}

// parseFlags returns the positional arguments, or nil after printing
// help for -h.
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		c.PrintHelp(c.output())
		return nil, nil
	}
	if err != nil {
		message := err.Error()
		if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
			if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
				return nil, Validation("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
					message, suggestion, c.fullName())
			}
		}
		return nil, Validation("%s\n\nRun '%s --help' for usage.", message, c.fullName())
	}
	remaining := flagSet.Args()
	if remaining == nil {
		remaining = []string{}
	}
	return remaining, nil
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (c *Command) unknownSubcommand(name string) error {
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return Validation("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			name, suggestion, c.fullName())
	}
	return Validation("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
}

func (c *Command) output() io.Writer {
	for node := c; node != nil; node = node.parent {
		if node.Output != nil {
			return node.Output
		}
	}
	return os.Stderr
}

// PrintHelp writes the command's help to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	usage := c.Usage
	if usage == "" {
		usage = name + " [flags]"
		if len(c.Subcommands) > 0 {
			usage = name + " <command> [flags]"
		}
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		if usages := c.Flags().FlagUsages(); usages != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usages)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for i, example := range c.Examples {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// fullName is the command path as typed, such as "platebake pack".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
