package geo

import (
	"encoding/json"
	"errors"

	"github.com/paulmach/orb"
)

// ErrNoGeometry reports that a feature set contained no usable coordinates.
// Callers treat it as a warning: the viewport returned alongside it is the
// fallback, and the operation continues.
var ErrNoGeometry = errors.New("no usable coordinates in features")

// DefaultViewport is the world view used when no fallback is configured.
var DefaultViewport = Viewport{Lat: 0, Lon: 0, Zoom: 2}

// ComputeViewport returns the map center and zoom level for a set of
// features. The center is the arithmetic mean of every coordinate pair
// found in the feature geometries; the zoom narrows for small selections
// and widens with the geographic spread. Features without usable geometry
// are skipped. If no coordinates remain at all, the fallback viewport is
// returned together with ErrNoGeometry.
func ComputeViewport(features []Feature, fallback Viewport) (Viewport, error) {
	points := make([]orb.Point, 0, len(features))
	for i := range features {
		if features[i].Geometry == nil {
			continue
		}
		points = append(points, flattenCoordinates(features[i].Geometry.Coordinates)...)
	}

	if len(points) == 0 {
		return fallback, ErrNoGeometry
	}

	var sumLat, sumLon float64
	bound := orb.Bound{Min: points[0], Max: points[0]}
	for _, pt := range points {
		sumLon += pt.Lon()
		sumLat += pt.Lat()
		bound = bound.Extend(pt)
	}

	spread := bound.Max.Lon() - bound.Min.Lon()
	if d := bound.Max.Lat() - bound.Min.Lat(); d > spread {
		spread = d
	}

	n := float64(len(points))

	return Viewport{
		Lat:  sumLat / n,
		Lon:  sumLon / n,
		Zoom: zoomFor(len(features), spread),
	}, nil
}

// zoomFor maps feature count and coordinate spread in degrees to a zoom
// level. Count rules are checked before the spread thresholds so that small
// selections stay tightly zoomed even when thresholds overlap; the first
// matching rule wins and the order must not change.
func zoomFor(count int, spread float64) int {
	switch {
	case count == 1:
		return 16
	case count >= 2 && count <= 3 && spread < 0.01:
		return 14
	case count >= 2 && count <= 5 && spread < 0.1:
		return 12
	case spread < 0.5:
		return 10
	case spread < 2.0:
		return 8
	default:
		return 6
	}
}

// flattenCoordinates extracts every [lon, lat] pair from an arbitrarily
// nested GeoJSON coordinates value: a Point is a single pair, Polygon and
// MultiPolygon nest pairs in rings and parts. A slice whose first two
// elements are numbers is taken as one position; anything else is descended
// into. Malformed nodes contribute nothing.
func flattenCoordinates(node interface{}) []orb.Point {
	arr, ok := node.([]interface{})
	if !ok {
		return nil
	}

	if len(arr) >= 2 {
		lon, okLon := coordNumber(arr[0])
		lat, okLat := coordNumber(arr[1])
		if okLon && okLat {
			return []orb.Point{{lon, lat}}
		}
	}

	var points []orb.Point
	for _, child := range arr {
		points = append(points, flattenCoordinates(child)...)
	}

	return points
}

func coordNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}

	return 0, false
}
