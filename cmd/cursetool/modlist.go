package main

import (
	"bytes"
	"context"
	"flag"
	"html/template"
	"log"

	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/Erisia/cursetool/manifest"
	"github.com/Erisia/cursetool/pack"
)

const modlistTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Mod list</title>
</head>
<body>
<ul>
{{range .}}<li class="mod">{{if .PageURL}}<a href="{{.PageURL}}">{{title .}}</a>{{else}}{{title .}}{{end}} <span class="version">{{.Version}}</span></li>
{{end}}</ul>
</body>
</html>
`

type ModlistCommand struct {
	OutputPath string
}

func (*ModlistCommand) Name() string     { return "modlist" }
func (*ModlistCommand) Synopsis() string { return "generate modlist page" }
func (*ModlistCommand) Usage() string {
	return `Usage: cursetool modlist [-o modlist.html] <manifest path>

	Generates an HTML page listing the mods of a YAML manifest, in
	manifest order.

Flags:
`
}

func (cmd *ModlistCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OutputPath, "o", "modlist.html", "modlist page output path")
}

func (cmd *ModlistCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		log.Printf("modlist: expected a manifest path")
		return subcommands.ExitUsageError
	}
	input := fs.Arg(0)

	tpl, err := template.New("modlist").Funcs(template.FuncMap{
		"title": modTitle,
	}).Parse(modlistTemplate)
	if err != nil {
		log.Printf("parse modlist template: %+v", err)
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

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, m.Mods); err != nil {
		log.Printf("execute template: %+v", err)
		return subcommands.ExitFailure
	}

	fpath := cmd.OutputPath
	outSrc := buf.Bytes()
	if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
		log.Printf("write file %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func modTitle(m manifest.Mod) string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}
