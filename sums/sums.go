// Package sums computes and checks mod file checksums.
package sums

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"log"
	"strings"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/crypto/sha3"

	"github.com/rotisserie/eris"
)

var (
	ErrSumsMismatch     = errors.New("checksum mismatch")
	ErrUnknownAlgorithm = errors.New("unknown checksum algorithm")
)

// Algorithms lists the digests computed per file, in output order.
var Algorithms = []string{
	"md5",
	"sha1",
	"sha256",
	"keccak256",
}

func newHashes() []hash.Hash {
	return []hash.Hash{
		md5.New(),
		sha1.New(),
		sha256.New(),
		sha3.New256(),
	}
}

// File computes all supported digests of the file in a single pass.
// Each sum has the form "algorithm:hex".
func File(files billy.Basic, path string) ([]string, error) {
	f, err := files.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := f.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", path, cerr)
		}
	}()

	hashes := newHashes()
	ww := make([]io.Writer, len(hashes))
	for i, h := range hashes {
		ww[i] = h
	}
	if _, err := io.Copy(io.MultiWriter(ww...), f); err != nil {
		return nil, err
	}

	out := make([]string, len(hashes))
	for i, name := range Algorithms {
		out[i] = fmt.Sprintf("%s:%x", name, hashes[i].Sum(nil))
	}
	return out, nil
}

// Pick selects the sum for the given algorithm.
func Pick(ss []string, algo string) (string, error) {
	prefix := algo + ":"
	for _, s := range ss {
		if strings.HasPrefix(s, prefix) {
			return s, nil
		}
	}
	return "", eris.Wrapf(ErrUnknownAlgorithm, "%q", algo)
}

// Verify reports ErrSumsMismatch unless want is among the computed
// sums.
func Verify(ss []string, want string) error {
	for _, s := range ss {
		if s == want {
			return nil
		}
	}
	return eris.Wrapf(ErrSumsMismatch, "want %s", want)
}
