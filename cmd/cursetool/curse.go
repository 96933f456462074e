package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/Erisia/cursetool/curse"
	"github.com/Erisia/cursetool/pack"
)

type CurseCommand struct {
	ConfigPath string
}

func (*CurseCommand) Name() string     { return "curse" }
func (*CurseCommand) Synopsis() string { return "convert a Curse manifest to a pinned YAML manifest" }
func (*CurseCommand) Usage() string {
	return `Usage: cursetool curse [-config cursetool.hcl] <input> <output>

	Reads a Curse JSON manifest and writes the pinned YAML manifest.
	Entry order is preserved. The output file is only written after
	the whole manifest decoded.

Flags:
`
}

func (cmd *CurseCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "configuration file path")
}

func (cmd *CurseCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 2 {
		log.Printf("curse: expected <input> <output> arguments")
		return subcommands.ExitUsageError
	}
	input, output := fs.Arg(0), fs.Arg(1)

	cfg, ok := loadConfig(cmd.ConfigPath)
	if !ok {
		return subcommands.ExitFailure
	}

	src, err := robustio.ReadFile(input)
	if err != nil {
		log.Printf("read %q: %+v", input, err)
		return subcommands.ExitFailure
	}

	m, err := curse.Decode(src, curseBaseURL(cfg))
	if err != nil {
		log.Printf("decode %q: %+v", input, err)
		return subcommands.ExitFailure
	}

	outSrc, err := pack.Encode(m)
	if err != nil {
		log.Printf("encode manifest: %+v", err)
		return subcommands.ExitFailure
	}

	if err := renameio.WriteFile(output, outSrc, 0644); err != nil {
		log.Printf("write file %q: %+v", output, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
