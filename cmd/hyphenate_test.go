package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureTable = "../internal/rangetable/testdata/ranges.json"

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagHyphenateFile = ""
		flagTable = ""
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestHyphenateCommand(t *testing.T) {
	out, err := runRoot(t, "hyphenate", "--table", fixtureTable, "9780306406157", "080442957X", "9786510000000")
	require.NoError(t, err)
	assert.Equal(t, "978-0-306-40615-7\n0-8044-2957-X\n978-65-1000000-0\n", out)
}

func TestHyphenateCommandReadsFile(t *testing.T) {
	list := filepath.Join(t.TempDir(), "isbns.txt")
	require.NoError(t, os.WriteFile(list, []byte("# shelf 1\n9780306406157\n\n9786990000000\n"), 0644))

	out, err := runRoot(t, "hyphenate", "--table", fixtureTable, "--file", list)
	require.NoError(t, err)
	assert.Equal(t, "978-0-306-40615-7\n9786990000000\n", out)
}

func TestHyphenateCommandReportsInvalidInput(t *testing.T) {
	out, err := runRoot(t, "hyphenate", "--table", fixtureTable, "12345")
	assert.ErrorContains(t, err, "1 of 1 inputs were not valid ISBNs")
	assert.Equal(t, "12345\tinvalid\n", out)
}

func TestHyphenateCommandMissingTable(t *testing.T) {
	_, err := runRoot(t, "hyphenate", "--table", filepath.Join(t.TempDir(), "none.json"), "9780306406157")
	assert.ErrorContains(t, err, "isbnrange build")
}

func TestCollectInputs(t *testing.T) {
	got, err := collectInputs([]string{"a"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	_, err = collectInputs(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "open input file")
}
