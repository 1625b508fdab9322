package lookup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLookup(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lookup.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeLookup(t, "A\tX\tY\nB\tP\tQ\n")

	tbl, err := LoadFile(path, []int{0}, []int{1, 2}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2, tbl.Width())
	assert.Equal(t, NoHeader, tbl.Header())

	v, ok := tbl.Get("A")
	require.True(t, ok)
	assert.Equal(t, "X\tY", v)

	v, ok = tbl.Get("B")
	require.True(t, ok)
	assert.Equal(t, "P\tQ", v)

	_, ok = tbl.Get("Z")
	assert.False(t, ok)
}

func TestLoadFileHeader(t *testing.T) {
	path := writeLookup(t, "id\tname\tscore\nA\tX\tY\n")

	tbl, err := LoadFile(path, []int{0}, []int{1, 2}, true)
	require.NoError(t, err)

	assert.Equal(t, "name\tscore", tbl.Header())
	assert.Equal(t, 1, tbl.Len(), "header row is not mapped")

	_, ok := tbl.Get("id")
	assert.False(t, ok)
}

func TestLoadFileMultiColumnKey(t *testing.T) {
	path := writeLookup(t, "a\t1\tfoo\na\t2\tbar\n")

	tbl, err := LoadFile(path, []int{0, 1}, []int{2}, false)
	require.NoError(t, err)

	v, ok := tbl.Get("a\t2")
	require.True(t, ok)
	assert.Equal(t, "bar", v)

	_, ok = tbl.Get("a")
	assert.False(t, ok)
}

func TestLoadFileLastWriteWins(t *testing.T) {
	path := writeLookup(t, "A\told\nA\tnew\n")

	tbl, err := LoadFile(path, []int{0}, []int{1}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.Len())
	v, _ := tbl.Get("A")
	assert.Equal(t, "new", v)
}

func TestLoadFileShortRows(t *testing.T) {
	path := writeLookup(t, "A\n")

	tbl, err := LoadFile(path, []int{0}, []int{1, 2}, false)
	require.NoError(t, err)

	v, ok := tbl.Get("A")
	require.True(t, ok)
	assert.Equal(t, "\t", v, "missing positions read as empty strings")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.tsv"), []int{0}, []int{1}, false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "opening lookup file")
}

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "", renderValue(nil))
	assert.Equal(t, "true", renderValue(true))
	assert.Equal(t, "false", renderValue(false))
	assert.Equal(t, "42", renderValue(int64(42)))
	assert.Equal(t, "plain", renderValue("plain"))
	assert.Equal(t, `a\tb`, renderValue("a\tb"), "embedded tabs are escaped, not emitted")
	assert.Equal(t, `x\ny`, renderValue("x\ny"))
	assert.Equal(t, `\xdeadbeef`, renderValue([]byte{0xde, 0xad, 0xbe, 0xef}))

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01 12:30:00+00", renderValue(ts))
}
