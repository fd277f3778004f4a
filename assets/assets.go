// Package assets embeds the prebuilt web UI.
//
// index.html is generated from index.html.tpl, style.css and script.js by
// cmd/minify; edit the sources and regenerate instead of editing it directly.
package assets

import _ "embed"

// Index is the single-page upload/filter UI served at the root path.
//
//go:embed index.html
var Index []byte

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon []byte
