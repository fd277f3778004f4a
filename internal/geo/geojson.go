// Package geo handles geographic data structures and viewport math.
package geo

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Name     string    `json:"name,omitempty"`
	Features []Feature `json:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
// Geometry may be nil and Properties may be null, both are valid input.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry represents the geometry of a feature (Point, Polygon, etc.).
// Coordinates keeps the raw nesting of the source document so that any
// geometry type survives a parse/export round-trip untouched.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Viewport is a map center with a discrete zoom level.
type Viewport struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}
