package report

import (
	"encoding/json"
	"io"

	"github.com/tinytelemetry/faina/internal/model"
)

// WriteJSON renders the report as an indented JSON document.
func WriteJSON(w io.Writer, r model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(normalize(r))
}

// normalize replaces nil sections with empty ones so encoders emit [] instead of null.
func normalize(r model.Report) model.Report {
	if r.Keys == nil {
		r.Keys = []model.RankedItem{}
	}
	if r.Commands == nil {
		r.Commands = []model.RankedItem{}
	}
	return r
}
