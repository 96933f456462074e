package nix

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Erisia/cursetool/manifest"
	"github.com/Erisia/cursetool/pack"
)

func boolp(v bool) *bool { return &v }

func TestGenerateExample(t *testing.T) {
	src := "- id: e30\n" +
		"  name: Example Mod\n" +
		"  version: \"1.0\"\n" +
		"  download_url: \"https://example/e30.jar\"\n"
	m, err := pack.Decode([]byte(src))
	assert.NoError(t, err)

	out, err := Generate(m, nil)
	assert.NoError(t, err)
	assert.Contains(t, string(out),
		`e30 = { name = "Example Mod"; version = "1.0"; download_url = "https://example/e30.jar"; };`)
	assert.True(t, strings.HasPrefix(string(out), "{\n"))
	assert.True(t, strings.HasSuffix(string(out), "}\n"))
}

func TestGenerateDeterministic(t *testing.T) {
	m, err := manifest.New([]manifest.Mod{
		{ID: "quark", Version: "1", DownloadURL: "https://example/quark.jar", Required: boolp(true)},
		{ID: "botania", Version: "2", DownloadURL: "https://example/botania.jar"},
	})
	assert.NoError(t, err)

	first, err := Generate(m, nil)
	assert.NoError(t, err)
	second, err := Generate(m, nil)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateOrderPreserved(t *testing.T) {
	m, err := manifest.New([]manifest.Mod{
		{ID: "zzz", Version: "1", DownloadURL: "https://example/z.jar"},
		{ID: "aaa", Version: "2", DownloadURL: "https://example/a.jar"},
	})
	assert.NoError(t, err)

	out, err := Generate(m, nil)
	assert.NoError(t, err)
	assert.Less(t, strings.Index(string(out), "zzz"), strings.Index(string(out), "aaa"))
}

func TestGenerateMissingRequired(t *testing.T) {
	m, err := manifest.New([]manifest.Mod{
		{ID: "e30", Name: "Example Mod", Version: "1.0"},
	})
	assert.NoError(t, err)

	_, err = Generate(m, nil)
	assert.True(t, errors.Is(err, ErrMissingAttr))
	assert.Contains(t, err.Error(), "e30")
	assert.Contains(t, err.Error(), "download_url")
}

func TestGenerateCustomRequired(t *testing.T) {
	m, err := manifest.New([]manifest.Mod{
		{ID: "e30", Version: "1.0", DownloadURL: "https://example/e30.jar"},
	})
	assert.NoError(t, err)

	_, err = Generate(m, []string{"download_url", "checksum"})
	assert.True(t, errors.Is(err, ErrMissingAttr))
	assert.Contains(t, err.Error(), "checksum")
}

var nameRe = regexp.MustCompile(`name = "((?:[^"\\]|\\.)*)"`)

func TestEscaping(t *testing.T) {
	name := `A "mod" with ${interpolation}, backslash \ and
newline`
	m, err := manifest.New([]manifest.Mod{
		{ID: "weird", Name: name, Version: "1", DownloadURL: "https://example/weird.jar"},
	})
	assert.NoError(t, err)

	out, err := Generate(m, nil)
	assert.NoError(t, err)

	match := nameRe.FindStringSubmatch(string(out))
	if assert.NotNil(t, match) {
		assert.Equal(t, name, nixUnquote(t, match[1]))
	}
	assert.NotContains(t, string(out), `"A "mod"`)
	assert.Contains(t, string(out), `\${`)
}

// nixUnquote undoes Nix double-quoted string escaping, mirroring how
// a Nix parser would read the literal back.
func nixUnquote(t *testing.T, s string) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			t.Fatalf("dangling escape in %q", s)
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func TestAttrNameQuoting(t *testing.T) {
	m, err := manifest.New([]manifest.Mod{
		{ID: "224476:2987358", Version: "2987358", DownloadURL: "https://example/a.jar"},
		{ID: "hunger-overhaul", Version: "1", DownloadURL: "https://example/b.jar"},
		{ID: "rec", Version: "1", DownloadURL: "https://example/c.jar"},
	})
	assert.NoError(t, err)

	out, err := Generate(m, nil)
	assert.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, `"224476:2987358" = {`)
	assert.Contains(t, text, "\n  hunger-overhaul = {")
	assert.Contains(t, text, `"rec" = {`)
}

func TestRequiredBool(t *testing.T) {
	m, err := manifest.New([]manifest.Mod{
		{ID: "e30", Version: "1", DownloadURL: "https://example/e30.jar", Required: boolp(false)},
	})
	assert.NoError(t, err)

	out, err := Generate(m, nil)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "required = false;")
}
