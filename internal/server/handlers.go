// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/woozymasta/geoprop/internal/geo"
	"github.com/woozymasta/geoprop/internal/processor"
)

// inspectResponse is the payload returned by HandleInspect and HandleFilter.
type inspectResponse struct {
	Columns       []string                `json:"columns"`
	Rows          []processor.PropertyRow `json:"rows"`
	Warnings      []processor.Warning     `json:"warnings,omitempty"`
	FeatureCount  int                     `json:"feature_count"`
	FilteredCount int                     `json:"filtered_count"`
	DefaultColumn string                  `json:"default_column,omitempty"`
}

// viewportResponse is the payload returned by HandleViewport.
type viewportResponse struct {
	Center struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Zoom    int    `json:"zoom"`
	Warning string `json:"warning,omitempty"`
}

// HandleInspect parses an uploaded FeatureCollection and returns its
// property table together with validation warnings.
func (s *ServerContext) HandleInspect(w http.ResponseWriter, r *http.Request) {
	fc, ok := s.readCollection(w, r)
	if !ok {
		return
	}

	table := processor.BuildTable(fc)

	writeJSON(w, http.StatusOK, inspectResponse{
		Columns:       table.Columns,
		Rows:          table.Rows,
		Warnings:      processor.Validate(fc),
		FeatureCount:  len(fc.Features),
		FilteredCount: len(table.Rows),
		DefaultColumn: s.defaultColumn(table),
	})
}

// HandleFilter parses an uploaded FeatureCollection and returns the rows of
// its property table matching the column/pattern query parameters.
func (s *ServerContext) HandleFilter(w http.ResponseWriter, r *http.Request) {
	fc, ok := s.readCollection(w, r)
	if !ok {
		return
	}

	table := processor.BuildTable(fc)
	column := r.URL.Query().Get("column")
	if column == "" {
		column = s.defaultColumn(table)
	}

	filtered, err := processor.FilterTable(table, column, r.URL.Query().Get("pattern"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectResponse{
		Columns:       filtered.Columns,
		Rows:          filtered.Rows,
		FeatureCount:  len(fc.Features),
		FilteredCount: len(filtered.Rows),
	})
}

// HandleExport returns the filtered, or explicitly row-selected, subset of
// an uploaded FeatureCollection as a downloadable GeoJSON document.
func (s *ServerContext) HandleExport(w http.ResponseWriter, r *http.Request) {
	fc, ok := s.readCollection(w, r)
	if !ok {
		return
	}

	features, ok := s.resolveSubset(w, r, fc)
	if !ok {
		return
	}

	data, err := processor.Export(features, s.Config.ExportCompact)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered.geojson"`)
	_, _ = w.Write(data)
}

// HandleViewport computes the map center and zoom for the filtered or
// row-selected subset of an uploaded FeatureCollection.
func (s *ServerContext) HandleViewport(w http.ResponseWriter, r *http.Request) {
	fc, ok := s.readCollection(w, r)
	if !ok {
		return
	}

	features, ok := s.resolveSubset(w, r, fc)
	if !ok {
		return
	}

	viewport, err := geo.ComputeViewport(features, s.Config.Viewport())

	var resp viewportResponse
	resp.Center.Lat = viewport.Lat
	resp.Center.Lon = viewport.Lon
	resp.Zoom = viewport.Zoom
	if errors.Is(err, geo.ErrNoGeometry) {
		resp.Warning = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleFavicon serves the site icon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.svg" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// readCollection reads and parses the request body as a FeatureCollection,
// enforcing the configured upload size limit. On failure the error response
// is already written and false is returned.
func (s *ServerContext) readCollection(w http.ResponseWriter, r *http.Request) (*geo.FeatureCollection, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return nil, false
	}

	body := http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
		} else {
			writeError(w, http.StatusBadRequest, err)
		}
		return nil, false
	}

	fc, err := processor.Parse(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}

	return fc, true
}

// resolveSubset picks the feature subset a request refers to: explicit row
// selection via the rows parameter when present, otherwise the
// column/pattern filter. On failure the error response is already written.
func (s *ServerContext) resolveSubset(w http.ResponseWriter, r *http.Request, fc *geo.FeatureCollection) ([]geo.Feature, bool) {
	if rowsParam := r.URL.Query().Get("rows"); rowsParam != "" {
		rows, err := parseRows(rowsParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, false
		}
		return processor.SelectFeatures(fc, rows), true
	}

	column := r.URL.Query().Get("column")
	if column == "" {
		column = s.defaultColumn(processor.BuildTable(fc))
	}

	features, err := processor.FilterFeatures(fc, column, r.URL.Query().Get("pattern"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}

	return features, true
}

// defaultColumn prefers the configured filter column when the table has it.
func (s *ServerContext) defaultColumn(table *processor.PropertyTable) string {
	if preferred := s.Config.DefaultFilterColumn; preferred != "" && table.HasColumn(preferred) {
		return preferred
	}
	return processor.DefaultFilterColumn(table)
}

// parseRows parses a comma-separated list of table row indices.
func parseRows(param string) ([]int, error) {
	parts := strings.Split(param, ",")
	rows := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q", part)
		}
		rows = append(rows, idx)
	}
	return rows, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
