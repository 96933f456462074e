package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/Erisia/cursetool/nix"
	"github.com/Erisia/cursetool/pack"
)

type YamlCommand struct {
	ConfigPath string
}

func (*YamlCommand) Name() string     { return "yaml" }
func (*YamlCommand) Synopsis() string { return "convert a YAML manifest to a Nix expression" }
func (*YamlCommand) Usage() string {
	return `Usage: cursetool yaml [-config cursetool.hcl] <input> <output>

	Reads a pinned YAML manifest and writes a Nix attribute set
	describing the mods, keyed by mod id. Entry order is preserved
	and output is byte-identical across runs, so generated files
	diff cleanly. The output file is only written after the whole
	manifest converted.

Flags:
`
}

func (cmd *YamlCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "configuration file path")
}

func (cmd *YamlCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 2 {
		log.Printf("yaml: expected <input> <output> arguments")
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

	m, err := pack.Decode(src)
	if err != nil {
		log.Printf("decode %q: %+v", input, err)
		return subcommands.ExitFailure
	}

	outSrc, err := nix.Generate(m, nixRequired(cfg))
	if err != nil {
		log.Printf("generate %q: %+v", output, err)
		return subcommands.ExitFailure
	}

	if err := renameio.WriteFile(output, outSrc, 0644); err != nil {
		log.Printf("write file %q: %+v", output, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
