package processor

import "fmt"

// InvalidGeoJSONError reports input that is not a usable GeoJSON
// FeatureCollection. The load attempt is aborted as a whole; no partial
// collection is ever returned alongside it.
type InvalidGeoJSONError struct {
	Reason string
	Err    error
}

func (e *InvalidGeoJSONError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid GeoJSON: %s: %v", e.Reason, e.Err)
	}
	return "invalid GeoJSON: " + e.Reason
}

func (e *InvalidGeoJSONError) Unwrap() error { return e.Err }

// FilterError reports a filter pattern that could not be compiled. Only the
// current filter attempt fails; the table it was applied to is unchanged.
type FilterError struct {
	Pattern string
	Err     error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Pattern, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// Warning is a non-fatal validation finding for a single feature.
type Warning struct {
	Feature int    `json:"feature"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("feature %d: %s", w.Feature, w.Message)
}
