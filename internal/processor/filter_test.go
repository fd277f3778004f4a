package processor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *PropertyTable {
	t.Helper()

	fc, err := Parse([]byte(sampleGeoJSON))
	require.NoError(t, err)

	return BuildTable(fc)
}

func TestFilterTableEmptyPatternKeepsAllRows(t *testing.T) {
	table := sampleTable(t)

	filtered, err := FilterTable(table, "name", "")

	require.NoError(t, err)
	assert.Equal(t, table.Rows, filtered.Rows)
	assert.Equal(t, table.Columns, filtered.Columns)
}

func TestFilterTableCaseInsensitiveSearch(t *testing.T) {
	table := sampleTable(t)

	filtered, err := FilterTable(table, "name", "helvetia")

	require.NoError(t, err)
	require.Len(t, filtered.Rows, 1)
	assert.Equal(t, "Helvetia Zurich", filtered.Rows[0].Values["name"])
}

func TestFilterTableRegexAlternation(t *testing.T) {
	table := sampleTable(t)

	filtered, err := FilterTable(table, "name", "zurich|basel")

	require.NoError(t, err)
	require.Len(t, filtered.Rows, 2)
	// row order is preserved
	assert.Equal(t, 0, filtered.Rows[0].Feature)
	assert.Equal(t, 1, filtered.Rows[1].Feature)
}

func TestFilterTableNullNeverMatches(t *testing.T) {
	table := sampleTable(t)

	// the null-properties feature has a nil name cell; a match-all pattern
	// must not pick it up
	filtered, err := FilterTable(table, "name", ".*")

	require.NoError(t, err)
	assert.Len(t, filtered.Rows, 3)
}

func TestFilterTableNumberColumn(t *testing.T) {
	table := sampleTable(t)

	filtered, err := FilterTable(table, "floors", `7\.5`)

	require.NoError(t, err)
	require.Len(t, filtered.Rows, 1)
	assert.Equal(t, "Baloise Basel", filtered.Rows[0].Values["name"])
}

func TestFilterTableUnknownColumn(t *testing.T) {
	table := sampleTable(t)

	filtered, err := FilterTable(table, "no_such_column", "x")

	require.NoError(t, err)
	assert.Empty(t, filtered.Rows)
	assert.Equal(t, table.Columns, filtered.Columns)
}

func TestFilterTableBadPatternLeavesTableUntouched(t *testing.T) {
	table := sampleTable(t)
	rowsBefore := len(table.Rows)

	filtered, err := FilterTable(table, "name", "(")

	var filterErr *FilterError
	require.ErrorAs(t, err, &filterErr)
	assert.Nil(t, filtered)
	assert.Len(t, table.Rows, rowsBefore)
}

func TestFilterTableIsPure(t *testing.T) {
	table := sampleTable(t)

	first, err := FilterTable(table, "kind", "insurance")
	require.NoError(t, err)
	second, err := FilterTable(table, "kind", "insurance")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Helvetia", "Helvetia"},
		{"json number keeps literal", json.Number("7.50"), "7.50"},
		{"bool", true, "true"},
		{"float", 7.5, "7.5"},
		{"float without fraction", 12.0, "12"},
		{"nested list", []interface{}{json.Number("1"), "a"}, `[1,"a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.value))
		})
	}
}
