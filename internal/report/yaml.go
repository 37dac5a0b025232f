package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/faina/internal/model"
)

// WriteYAML renders the report as a YAML document.
func WriteYAML(w io.Writer, r model.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(r)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}
