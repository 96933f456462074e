package main

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/tie/internal/robustio"

	"github.com/Erisia/cursetool/config/hclspec"
)

func cacheDir(p string) (string, error) {
	c, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(c, p), nil
}

func makeCache(p string) (string, error) {
	c, err := cacheDir(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c, 0700); err != nil {
		return "", err
	}
	return c, nil
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		diagWr := hcl.NewDiagnosticTextWriter(stderr, files, 80, color)
		return diagWr, color
	}
	var width uint
	if w, _, err := terminal.GetSize(fd); err != nil {
		log.Printf("get term size: %+v", err)
	} else if w >= 0 {
		width = uint(w)
	} else {
		width = 80
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

// loadConfig reads the configuration file. An empty path falls back
// to cursetool.hcl in the working directory, or to compiled-in
// defaults when that does not exist either.
func loadConfig(path string) (*hclspec.Config, bool) {
	var cfg hclspec.Config
	if path == "" {
		if _, err := os.Stat(defaultConfig); err != nil {
			return &cfg, true
		}
		path = defaultConfig
	}

	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	src, err := robustio.ReadFile(path)
	if err != nil {
		log.Printf("read %q: %+v", path, err)
		return nil, false
	}

	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		if err := diagWr.WriteDiagnostics(diags); err != nil {
			log.Printf("write diags: %+v", err)
		}
		return nil, false
	}

	decodeDiags := gohcl.DecodeBody(file.Body, nil, &cfg)
	diags = append(diags, decodeDiags...)
	if err := diagWr.WriteDiagnostics(diags); err != nil {
		log.Printf("write diags: %+v", err)
		return nil, false
	}
	if diags.HasErrors() {
		return nil, false
	}

	return &cfg, true
}

func curseBaseURL(cfg *hclspec.Config) string {
	if cfg.Curse != nil {
		return cfg.Curse.BaseURL
	}
	return ""
}

func nixRequired(cfg *hclspec.Config) []string {
	if cfg.Nix != nil {
		return cfg.Nix.Required
	}
	return nil
}
