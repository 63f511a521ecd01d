package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFilters(t *testing.T, mustMatch, mustNotMatch []string) RegexFilters {
	var f RegexFilters
	for _, p := range mustMatch {
		require.NoError(t, f.MustMatch.Set(p))
	}
	for _, p := range mustNotMatch {
		require.NoError(t, f.MustNotMatch.Set(p))
	}
	return f
}

func idOf(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFilters(t *testing.T) {
	noFilters := makeFilters(t, nil, nil)
	assert.True(t, noFilters.AsFilter(idOf("anything")))

	f := makeFilters(t, []string{"^company operations"}, []string{"delete"})
	assert.True(t, f.AsFilter(idOf("company operations", "first company", "get company")))
	assert.False(t, f.AsFilter(idOf("company operations", "first company", "delete company")))
	assert.False(t, f.AsFilter(idOf("other")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestRegexListString(t *testing.T) {
	f := makeFilters(t, []string{"a", "b"}, nil)
	assert.Equal(t, `"a" or "b"`, f.MustMatch.String())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, makeFilters(t, nil, nil))
	assert.Empty(t, buf.String())

	PrintFilterDescription(&buf, makeFilters(t, []string{"x"}, []string{"y"}))
	assert.Contains(t, buf.String(), `skip any not matching "x"`)
	assert.Contains(t, buf.String(), `skip any matching "y"`)
}
