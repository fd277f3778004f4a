package processor

import "github.com/woozymasta/geoprop/internal/geo"

// PropertyRow holds the property values of one feature. Feature is the
// index of the originating feature in the collection, so selections made on
// a (possibly filtered) table can be resolved back for viewport and export.
type PropertyRow struct {
	Feature int                    `json:"feature"`
	Values  map[string]interface{} `json:"values"`
}

// PropertyTable is the tabular view over the properties of a feature
// collection. Every row has an entry, possibly nil, for every column.
// Tables are read-only once built.
type PropertyTable struct {
	Columns []string      `json:"columns"`
	Rows    []PropertyRow `json:"rows"`
}

// HasColumn reports whether name is one of the table columns.
func (t *PropertyTable) HasColumn(name string) bool {
	for _, column := range t.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// BuildTable extracts the property table of a feature collection. Columns
// are the union of all property keys in first-encountered order across
// features; a feature without a given key, or without properties at all,
// gets nil cells. An empty collection yields an empty table.
func BuildTable(fc *geo.FeatureCollection) *PropertyTable {
	table := &PropertyTable{
		Columns: []string{},
		Rows:    make([]PropertyRow, 0, len(fc.Features)),
	}

	seen := make(map[string]bool)
	for i := range fc.Features {
		for _, key := range fc.Features[i].Properties.Keys() {
			if !seen[key] {
				seen[key] = true
				table.Columns = append(table.Columns, key)
			}
		}
	}

	for i := range fc.Features {
		row := PropertyRow{
			Feature: i,
			Values:  make(map[string]interface{}, len(table.Columns)),
		}
		for _, column := range table.Columns {
			value, _ := fc.Features[i].Properties.Get(column)
			row.Values[column] = value
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// DefaultFilterColumn picks the column a filter control should preselect:
// "name" when present, otherwise the first column, otherwise empty.
func DefaultFilterColumn(table *PropertyTable) string {
	if table.HasColumn("name") {
		return "name"
	}
	if len(table.Columns) > 0 {
		return table.Columns[0]
	}
	return ""
}
