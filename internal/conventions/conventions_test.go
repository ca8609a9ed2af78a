package conventions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	entries := Parse(`# Project conventions

- Don't use: global singletons
- don't use: the legacy md5 hasher
Do not use: panic for control flow
- Prefer small interfaces.
- Use context on blocking calls.
`)

	require.Equal(t, []string{
		"global singletons",
		"the legacy md5 hasher",
		"panic for control flow",
	}, entries)
}

func TestParseEmptyText(t *testing.T) {
	require.Empty(t, Parse(""))
	require.Empty(t, Parse("no relevant lines here\n"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CONVENTIONS.md")
	require.NoError(t, os.WriteFile(path, []byte("- Don't use: reflection in hot paths\n"), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"reflection in hot paths"}, entries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}
