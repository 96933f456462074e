package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/tie/internal/renameio"

	"github.com/Erisia/cursetool/curse"
	"github.com/Erisia/cursetool/nix"
)

type ConfigCommand struct {
	OutputPath string
}

func (*ConfigCommand) Name() string     { return "config" }
func (*ConfigCommand) Synopsis() string { return "write the default configuration file" }
func (*ConfigCommand) Usage() string {
	return `Usage: cursetool config [-o cursetool.hcl]

	Writes a configuration file with the compiled-in defaults spelled
	out, as a starting point for customization.

Flags:
`
}

func (cmd *ConfigCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OutputPath, "o", defaultConfig, "configuration output path")
}

func (cmd *ConfigCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	conf := hclwrite.NewEmptyFile()
	body := conf.Body()

	curseBlock := body.AppendNewBlock("curse", nil)
	baseURL := cty.StringVal(curse.DefaultBaseURL)
	curseBlock.Body().SetAttributeValue("base_url", baseURL)

	body.AppendNewline()

	nixBlock := body.AppendNewBlock("nix", nil)
	vals := make([]cty.Value, len(nix.DefaultRequired))
	for i, name := range nix.DefaultRequired {
		vals[i] = cty.StringVal(name)
	}
	nixBlock.Body().SetAttributeValue("required", cty.ListVal(vals))

	data := conf.Bytes()
	if err := renameio.WriteFile(cmd.OutputPath, data, 0644); err != nil {
		log.Printf("write %q: %+v", cmd.OutputPath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
