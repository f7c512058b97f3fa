// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reporters

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, table.Reporters)
	assert.NotEmpty(t, table.Laws)
	assert.NotEmpty(t, table.Journals)

	for _, family := range [][]Entry{table.Reporters, table.Laws, table.Journals} {
		for _, e := range family {
			assert.NotEmpty(t, e.Name, "entry %q missing name", e.Cite)
			assert.NotEmpty(t, e.Cite, "entry %q missing cite", e.Name)
			assert.NotEmpty(t, e.Variants, "entry %q missing variants", e.Name)
		}
	}
}

func TestLoadKnownEntries(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	cites := func(entries []Entry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.Cite)
		}
		return out
	}

	assert.Contains(t, cites(table.Reporters), "U.S.")
	assert.Contains(t, cites(table.Laws), "U.S.C.")
	assert.Contains(t, cites(table.Journals), "Harv. L. Rev.")
}

func TestDefaultParsesOnce(t *testing.T) {
	first := Default()
	second := Default()

	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestAlternationsCompile(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	for name, alt := range map[string]string{
		"reporters": table.ReporterAlternation(),
		"laws":      table.LawAlternation(),
		"journals":  table.JournalAlternation(),
	} {
		re, err := regexp.Compile(alt)
		require.NoError(t, err, "%s alternation must compile", name)
		require.NotNil(t, re)
	}
}

func TestAlternationLongestFirst(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	alt := table.ReporterAlternation()

	// "F. Supp. 2d" must appear before the shorter "F. Supp." so the
	// regex engine prefers the longer spelling.
	long := strings.Index(alt, regexp.QuoteMeta("F. Supp. 2d"))
	short := strings.Index(alt, regexp.QuoteMeta("F. Supp.")+"|")
	require.GreaterOrEqual(t, long, 0)
	require.GreaterOrEqual(t, short, 0)
	assert.Less(t, long, short)

	// The compiled alternation picks the longer variant when both match.
	re := regexp.MustCompile(alt)
	assert.Equal(t, "F. Supp. 2d", re.FindString("F. Supp. 2d 1015"))
}
