// Package processor turns raw GeoJSON uploads into property tables,
// filtered subsets and export documents.
package processor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoprop/internal/geo"
)

// Parse decodes raw bytes as a GeoJSON FeatureCollection. It fails with
// InvalidGeoJSONError when the payload is not JSON, the top-level type is
// not "FeatureCollection", or the features array is missing or not an
// array. Garbage or truncated input never yields a partial collection.
func Parse(data []byte) (*geo.FeatureCollection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fc geo.FeatureCollection
	if err := dec.Decode(&fc); err != nil {
		return nil, &InvalidGeoJSONError{Reason: "malformed document", Err: err}
	}
	if dec.More() {
		return nil, &InvalidGeoJSONError{Reason: "trailing data after document"}
	}

	if fc.Type != "FeatureCollection" {
		return nil, &InvalidGeoJSONError{
			Reason: fmt.Sprintf("top-level type is %q, want FeatureCollection", fc.Type),
		}
	}
	if fc.Features == nil {
		return nil, &InvalidGeoJSONError{Reason: "missing features array"}
	}

	log.Debug().
		Int("features", len(fc.Features)).
		Str("name", fc.Name).
		Msg("Parsed feature collection")

	return &fc, nil
}

// Validate reports non-fatal structural findings for each feature. The
// collection stays usable regardless; warnings are informational only.
func Validate(fc *geo.FeatureCollection) []Warning {
	var warnings []Warning
	for i := range fc.Features {
		f := &fc.Features[i]

		if f.Type != "Feature" {
			warnings = append(warnings, Warning{
				Feature: i,
				Message: fmt.Sprintf("type is %q, want Feature", f.Type),
			})
		}
		if f.Geometry == nil || f.Geometry.Type == "" {
			warnings = append(warnings, Warning{Feature: i, Message: "missing geometry"})
		}
		if f.Properties.IsNull() {
			warnings = append(warnings, Warning{Feature: i, Message: "missing properties"})
		}
	}

	return warnings
}

// Export wraps the given features in a well-formed FeatureCollection
// envelope and serializes it as UTF-8 JSON, indented unless compact is
// requested. The output parses back to an equivalent collection.
func Export(features []geo.Feature, compact bool) ([]byte, error) {
	fc := geo.FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.Feature, len(features)),
	}
	copy(fc.Features, features)

	for i := range fc.Features {
		if fc.Features[i].Type == "" {
			fc.Features[i].Type = "Feature"
		}
	}

	if compact {
		return json.Marshal(fc)
	}
	return json.MarshalIndent(fc, "", "  ")
}

// FilterFeatures returns the features whose stringified value for column
// matches pattern, with the same semantics as FilterTable: empty pattern
// keeps everything, matching is a case-insensitive search, and a null or
// missing value never matches a non-empty pattern.
func FilterFeatures(fc *geo.FeatureCollection, column, pattern string) ([]geo.Feature, error) {
	if pattern == "" {
		return fc.Features, nil
	}

	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	out := make([]geo.Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		value, ok := f.Properties.Get(column)
		if !ok || value == nil {
			continue
		}
		if re.MatchString(Stringify(value)) {
			out = append(out, f)
		}
	}

	return out, nil
}

// SelectFeatures resolves table row indices back to their originating
// features, preserving the given order. Out-of-range indices are skipped.
func SelectFeatures(fc *geo.FeatureCollection, rows []int) []geo.Feature {
	out := make([]geo.Feature, 0, len(rows))
	for _, idx := range rows {
		if idx < 0 || idx >= len(fc.Features) {
			continue
		}
		out = append(out, fc.Features[idx])
	}

	return out
}
