package render

import (
	"encoding/json"
	"fmt"
	"io"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

// JSON renders the document model as indented JSON.
type JSON struct{}

func (JSON) Render(w io.Writer, c *changelog.Changelog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	return nil
}

// YAML renders the document model as YAML, following the JSON field names.
type YAML struct{}

func (YAML) Render(w io.Writer, c *changelog.Changelog) error {
	data, err := sigsyaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	return nil
}
