package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/Erisia/cursetool/cache"
	"github.com/Erisia/cursetool/manifest"
	"github.com/Erisia/cursetool/pack"
	"github.com/Erisia/cursetool/sums"
)

// Cache entries are keyed by file size and mtime, so stale entries
// only waste space.
const sumsLifetime = 365 * 24 * time.Hour

type SumsCommand struct {
	ModsDir      string
	Algo         string
	OutputPath   string
	DisableCache bool
}

func (*SumsCommand) Name() string     { return "sums" }
func (*SumsCommand) Synopsis() string { return "record mod file checksums in the manifest" }
func (*SumsCommand) Usage() string {
	return `Usage: cursetool sums [-mods dir] [-algo sha256] [-nocache] [-o out.yaml] <manifest path>

	Computes checksums of the local mod files and records them in the
	checksum field of the YAML manifest. Entries that already carry a
	checksum are verified instead; a mismatch aborts the run. Without
	-o the manifest is rewritten in place.

Flags:
`
}

func (cmd *SumsCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ModsDir, "mods", "mods", "local mod files directory")
	fs.StringVar(&cmd.Algo, "algo", "sha256", "checksum algorithm to record")
	fs.StringVar(&cmd.OutputPath, "o", "", "manifest output path (defaults to input)")
	fs.BoolVar(&cmd.DisableCache, "nocache", false, "disable checksum cache")
}

func (cmd *SumsCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) (rc subcommands.ExitStatus) {
	if fs.NArg() != 1 {
		log.Printf("sums: expected a manifest path")
		return subcommands.ExitUsageError
	}
	input := fs.Arg(0)
	output := cmd.OutputPath
	if output == "" {
		output = input
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

	var db *cache.Cache
	if !cmd.DisableCache {
		cachePath, err := makeCache(programName)
		if err != nil {
			log.Printf("make cache: %+v", err)
			return subcommands.ExitFailure
		}
		db, err = cache.Open(filepath.Join(cachePath, "db"))
		if err != nil {
			log.Printf("open cache: %+v", err)
			return subcommands.ExitFailure
		}
	} else {
		var err error
		db, err = cache.OpenMem()
		if err != nil {
			log.Printf("open cache: %+v", err)
			return subcommands.ExitFailure
		}
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("close cache: %+v", err)
			rc = subcommands.ExitFailure
		}
	}()

	files := osfs.New(cmd.ModsDir)

	mods := make([]manifest.Mod, len(m.Mods))
	for i, mod := range m.Mods {
		fname := modFileName(mod)
		fi, err := files.Stat(fname)
		if err != nil {
			log.Printf("stat mod %q: %+v", mod.ID, err)
			return subcommands.ExitFailure
		}

		key := fmt.Sprintf("sums\x00%s\x00%d\x00%d", fname, fi.Size(), fi.ModTime().Unix())
		payload, err := db.GetOrPut(key, sumsLifetime, func() ([]byte, error) {
			ss, err := sums.File(files, fname)
			if err != nil {
				return nil, err
			}
			return []byte(strings.Join(ss, "\n")), nil
		})
		if err != nil {
			log.Printf("sum mod %q: %+v", mod.ID, err)
			return subcommands.ExitFailure
		}
		ss := strings.Split(string(payload), "\n")

		if mod.Checksum != "" {
			if err := sums.Verify(ss, mod.Checksum); err != nil {
				log.Printf("verify mod %q: %+v", mod.ID, err)
				return subcommands.ExitFailure
			}
		} else {
			sum, err := sums.Pick(ss, cmd.Algo)
			if err != nil {
				log.Printf("sum mod %q: %+v", mod.ID, err)
				return subcommands.ExitFailure
			}
			mod.Checksum = sum
		}
		mods[i] = mod
	}

	mm, err := manifest.New(mods)
	if err != nil {
		log.Printf("manifest %q: %+v", input, err)
		return subcommands.ExitFailure
	}
	outSrc, err := pack.Encode(mm)
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

// modFileName locates an entry's local file: the download URL
// basename when there is one, <id>.jar otherwise.
func modFileName(m manifest.Mod) string {
	if m.DownloadURL != "" {
		if u, err := url.Parse(m.DownloadURL); err == nil {
			if base := path.Base(u.Path); base != "." && base != "/" {
				return base
			}
		}
	}
	return m.ID + ".jar"
}
