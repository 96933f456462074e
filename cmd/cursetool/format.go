package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/diff"

	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/Erisia/cursetool/pack"
)

type FormatCommand struct {
	Overwrite   bool
	ContextSize int
}

func (*FormatCommand) Name() string     { return "fmt" }
func (*FormatCommand) Synopsis() string { return "format YAML manifests" }
func (*FormatCommand) Usage() string {
	return `Usage: cursetool fmt [-c int] [-w] <manifest paths>

	Rewrites YAML manifests into the canonical encoding: fixed key
	order per entry, two-space indent. It can either write files
	in-place or generate unified diff with specified context size.

Flags:
`
}

func (cmd *FormatCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.Overwrite, "w", false, "write result to (source) file instead of stdout")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *FormatCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	paths := fs.Args()
	if len(paths) <= 0 {
		log.Printf("fmt: expected manifest paths")
		return subcommands.ExitUsageError
	}
	sort.Strings(paths)

	_, color := fdinfo(int(os.Stdout.Fd()))

	seen := make(map[string]bool, len(paths))
	for _, fpath := range paths {
		if seen[fpath] {
			continue
		}
		seen[fpath] = true

		src, err := robustio.ReadFile(fpath)
		if err != nil {
			log.Printf("read manifest %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}

		outSrc, err := pack.Format(src)
		if err != nil {
			log.Printf("format %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
		if bytes.Equal(src, outSrc) {
			continue
		}

		if !cmd.Overwrite {
			fpath := filepath.ToSlash(fpath)
			aname := fmt.Sprintf("a/%s", fpath)
			bname := fmt.Sprintf("b/%s", fpath)
			names := diff.Names(aname, bname)
			opts := []diff.WriteOpt{names}
			if color {
				c := diff.TerminalColor()
				opts = append(opts, c)
			}
			a, b := splitLines(src), splitLines(outSrc)
			pair := diff.Bytes(a, b)
			edit := diff.Myers(ctx, pair)
			if cmd.ContextSize >= 0 {
				edit = edit.WithContextSize(cmd.ContextSize)
			}
			_, err := edit.WriteUnified(os.Stdout, pair, opts...)
			if err != nil {
				log.Printf("write diff: %+v", err)
				return subcommands.ExitFailure
			}
			continue
		}
		if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
			log.Printf("write file %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte("\n"))
}
