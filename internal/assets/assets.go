// Package assets carries the binary resources embedded into generated
// documents. The brand mark is loaded once at build time and injected into
// the exporter rather than referenced from the emitters directly, so the
// emitters stay testable with arbitrary fixtures.
package assets

import _ "embed"

//go:embed brandmark.png
var brandMark []byte

// BrandMark returns the PNG brand mark placed on every generated document.
func BrandMark() []byte {
	return brandMark
}
