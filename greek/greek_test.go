package greek_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symbolic/greek"
)

func TestSortOrder_SmallBeforeCapital(t *testing.T) {
	alpha, ok := greek.SortOrder(greek.Alpha)
	require.True(t, ok)
	omega, ok := greek.SortOrder(greek.Omega)
	require.True(t, ok)
	capAlpha, ok := greek.SortOrder(greek.CapitalAlpha)
	require.True(t, ok)

	assert.Equal(t, 0, alpha)
	assert.Equal(t, 24, omega)
	assert.Equal(t, 25, capAlpha)
}

func TestSortOrder_NamesMatchGlyphs(t *testing.T) {
	for _, l := range append(append([]greek.Letter{}, greek.Small...), greek.Capital...) {
		byName, ok := greek.SortOrder(l.Name)
		require.True(t, ok, l.Name)
		byGlyph, ok := greek.SortOrder(l.Glyph)
		require.True(t, ok, l.Glyph)
		assert.Equal(t, byGlyph, byName, l.Name)
	}
}

func TestIsGreek(t *testing.T) {
	assert.True(t, greek.IsGreek("beta"))
	assert.True(t, greek.IsGreek(greek.CapitalUpsilon))
	assert.False(t, greek.IsGreek("x"))
	assert.False(t, greek.IsGreek("alpha+beta"))
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, greek.Display(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 49)
	assert.Equal(t, "               alpha: "+greek.Alpha, lines[0])
	assert.Equal(t, "               Omega: "+greek.CapitalOmega, lines[48])
}
