// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
	"github.com/plate-engine/platebake/lib/atomicfile"
	"github.com/plate-engine/platebake/lib/pack"
)

type packParams struct {
	CommonParams
	Output      string `flag:"output,o" desc:"pack file (default from config: <target>.pack)"`
	Compression string `flag:"compression" desc:"none, lz4, zstd or auto (default from config)"`
}

func packCommand() *cli.Command {
	var params packParams
	return &cli.Command{
		Name:    "pack",
		Summary: "Bundle a baked directory into a single pack file",
		Description: `Collect every file under the directory (hidden files and .bk
backups excluded) into a pack. Each entry carries its digest and is
compressed individually; "auto" picks the compression per entry.`,
		Usage: "platebake pack [dir] [flags]",
		Examples: []cli.Example{
			{Description: "Pack the configured target directory", Command: "platebake pack"},
			{Description: "Pack with zstd", Command: "platebake pack assets -o assets.pack --compression zstd"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("pack", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := cli.RequireArgs(args, 0, 1, "platebake pack [dir] [flags]"); err != nil {
				return err
			}
			env, err := params.setup()
			if err != nil {
				return err
			}
			return runPack(env, &params, args)
		},
	}
}

func runPack(env *environment, params *packParams, args []string) error {
	directory := env.config.Paths.Target
	if len(args) > 0 {
		directory = args[0]
	}
	output := env.config.Pack.Output
	if params.Output != "" {
		output = params.Output
	}
	compressionName := env.config.Pack.Compression
	if params.Compression != "" {
		compressionName = params.Compression
	}
	compression, err := pack.ParseCompression(compressionName)
	if err != nil {
		return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	}

	info, err := os.Stat(directory)
	if err != nil {
		return readError(err)
	}
	if !info.IsDir() {
		return cli.Validation("%s is not a directory", directory)
	}

	entries, err := pack.Collect(os.DirFS(directory))
	if err != nil {
		return cli.Internal("collecting %s: %w", directory, err)
	}
	data, err := pack.Encode(entries, compression)
	if err != nil {
		return cli.Validation("%w", err)
	}
	if err := atomicfile.WriteFile(output, data, 0o644); err != nil {
		return cli.Internal("%w", err)
	}

	raw := 0
	for _, entry := range entries {
		raw += len(entry.Data)
	}
	env.logger.Info("packed", "directory", directory, "output", output,
		"entries", len(entries), "raw_bytes", raw, "pack_bytes", len(data))
	cli.Printf(stdout, env.level, "Packed %d file(s) into %s (%d bytes).", len(entries), output, len(data))
	return nil
}

type unpackParams struct {
	CommonParams
	cli.JSONOutput
	List bool `flag:"list,l" desc:"list the entries instead of extracting them"`
}

type unpackEntry struct {
	Path        string `json:"path"`
	Size        int    `json:"size"`
	StoredSize  int    `json:"stored_size"`
	Compression string `json:"compression"`
}

func unpackCommand() *cli.Command {
	var params unpackParams
	return &cli.Command{
		Name:    "unpack",
		Summary: "Verify a pack and extract or list its files",
		Description: `Read a pack, checking every entry's digest, then either list the
entries or write them under the directory (default ".").`,
		Usage: "platebake unpack <file> [dir] [flags]",
		Examples: []cli.Example{
			{Description: "List a pack's contents", Command: "platebake unpack assets.pack --list"},
			{Description: "Extract into a directory", Command: "platebake unpack assets.pack restored"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("unpack", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := cli.RequireArgs(args, 1, 2, "platebake unpack <file> [dir] [flags]"); err != nil {
				return err
			}
			env, err := params.setup()
			if err != nil {
				return err
			}
			return runUnpack(env, &params, args)
		},
	}
}

func runUnpack(env *environment, params *unpackParams, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return readError(err)
	}
	entries, err := pack.Read(data)
	if errors.Is(err, pack.ErrCorrupt) {
		return cli.Validation("%s: %w", args[0], err)
	}
	if err != nil {
		return cli.Internal("%s: %w", args[0], err)
	}

	if params.List || params.OutputJSON {
		listing := make([]unpackEntry, 0, len(entries))
		for _, entry := range entries {
			listing = append(listing, unpackEntry{
				Path:        entry.Path,
				Size:        len(entry.Data),
				StoredSize:  entry.StoredSize,
				Compression: entry.Compression.String(),
			})
		}
		if done, err := params.EmitJSON(stdout, listing); done {
			return err
		}
		writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(writer, "PATH\tSIZE\tSTORED\tCOMPRESSION\n")
		for _, entry := range listing {
			fmt.Fprintf(writer, "%s\t%d\t%d\t%s\n", entry.Path, entry.Size, entry.StoredSize, entry.Compression)
		}
		return writer.Flush()
	}

	directory := "."
	if len(args) > 1 {
		directory = args[1]
	}
	if err := pack.Extract(directory, entries); err != nil {
		return cli.Internal("%w", err)
	}
	env.logger.Info("unpacked", "pack", args[0], "directory", directory, "entries", len(entries))
	cli.Printf(stdout, env.level, "Extracted %d file(s) into %s.", len(entries), directory)
	return nil
}
