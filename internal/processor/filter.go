package processor

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// FilterTable returns the rows whose stringified value in column matches
// pattern, in the original row order with the same columns. An empty
// pattern keeps every row including null cells; an unknown column yields an
// empty table. A pattern that does not compile fails with FilterError and
// leaves the input table untouched. Filtering is pure: the same inputs
// always produce the same result.
func FilterTable(table *PropertyTable, column, pattern string) (*PropertyTable, error) {
	if pattern == "" {
		return table, nil
	}

	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	out := &PropertyTable{Columns: table.Columns, Rows: []PropertyRow{}}
	if !table.HasColumn(column) {
		return out, nil
	}

	for _, row := range table.Rows {
		value := row.Values[column]
		if value == nil {
			continue
		}
		if re.MatchString(Stringify(value)) {
			out.Rows = append(out.Rows, row)
		}
	}

	return out, nil
}

// compilePattern compiles a user pattern as a case-insensitive search
// expression. Matching is a find, not a full match.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, &FilterError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// Stringify renders a property value the way the table displays it, which
// is also the text patterns are matched against. Numbers keep their source
// literal, nested values fall back to their JSON encoding.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
