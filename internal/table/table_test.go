package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitJoin(t *testing.T) {
	row := Split("a\tb\tc")
	require.Len(t, row, 3)
	assert.Equal(t, "a\tb\tc", row.Join())

	// An empty line is a single empty field, not zero fields.
	assert.Equal(t, Row{""}, Split(""))
}

func TestFieldPermissive(t *testing.T) {
	row := Row{"a", "b"}
	assert.Equal(t, "a", row.Field(0))
	assert.Equal(t, "b", row.Field(1))
	assert.Equal(t, "", row.Field(2))
	assert.Equal(t, "", row.Field(99))
	assert.Equal(t, "", row.Field(-1))
}

func TestPickAndKey(t *testing.T) {
	row := Row{"a", "b", "c"}
	assert.Equal(t, "b\tc", row.Pick([]int{1, 2}))
	assert.Equal(t, "c\ta", row.Pick([]int{2, 0}), "order follows the column list")
	assert.Equal(t, "a\t", row.Key([]int{0, 5}), "out-of-range key parts are empty")
	assert.Equal(t, "", row.Pick(nil))
}

func TestSplice(t *testing.T) {
	row := Row{"a", "b", "c"}

	assert.Equal(t, Row{"x", "a", "b", "c"}, row.Splice(0, "x"))
	assert.Equal(t, Row{"a", "x", "b", "c"}, row.Splice(1, "x"))
	assert.Equal(t, Row{"a", "b", "c", "x"}, row.Splice(3, "x"))
	assert.Equal(t, Row{"a", "b", "c", "x"}, row.Splice(10, "x"), "past the end appends")
	assert.Equal(t, Row{"x", "a", "b", "c"}, row.Splice(-2, "x"))

	// A fragment with tabs flattens into place on Join.
	assert.Equal(t, "a\tx\ty\tb\tc", row.Splice(1, "x\ty").Join())

	// Input row is untouched.
	assert.Equal(t, Row{"a", "b", "c"}, row)
}

func TestParseColumns(t *testing.T) {
	cols, err := ParseColumns("1,3,2")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, cols)

	cols, err = ParseColumns("")
	require.NoError(t, err)
	assert.Empty(t, cols)

	cols, err = ParseColumns(" 2 , 4 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, cols)

	_, err = ParseColumns("1,x")
	assert.Error(t, err)

	_, err = ParseColumns("0")
	assert.Error(t, err)

	_, err = ParseColumns("-1")
	assert.Error(t, err)
}
