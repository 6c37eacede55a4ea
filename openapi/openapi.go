// Package openapi embeds and validates the service's OpenAPI document at
// startup, serving it verbatim at /openapi.json (spec_full.md A9).
package openapi

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Document holds the loaded and validated OpenAPI document.
type Document struct {
	doc *openapi3.T
}

// Load parses and validates the embedded OpenAPI document. A failure here
// means the checked-in document itself is malformed; it never runs
// per-request.
func Load() (*Document, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("openapi: parse embedded spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("openapi: validate embedded spec: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Handler serves the loaded document as JSON.
func (d *Document) Handler() http.HandlerFunc {
	body, err := d.doc.MarshalJSON()
	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			http.Error(w, "failed to render openapi document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}
