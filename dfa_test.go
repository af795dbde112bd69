package retext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S7: match_all_full("<.*>", "<a> <b> <c>") yields three matches,
// longest first.
func TestFindAllLongestFirst_S7(t *testing.T) {
	re, err := Compile("<.*>", 0, 0)
	require.NoError(t, err)
	defer re.Close()

	ds, err := FindAll(re, "<a> <b> <c>", 0, 0)
	require.NoError(t, err)
	defer ds.Close()

	require.NoError(t, ds.Err())
	assert.Equal(t, []string{"<a> <b> <c>", "<a> <b>", "<a>"}, ds.FetchAll())
}

func TestFindAllNoMatch(t *testing.T) {
	re, err := Compile("xyz", 0, 0)
	require.NoError(t, err)
	defer re.Close()

	ds, err := FindAll(re, "abc", 0, 0)
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, 0, ds.Matches())
	assert.NoError(t, ds.Err())
}
