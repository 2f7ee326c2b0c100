package render

import (
	"fmt"
	"io"
	"reflect"

	invopopjsonschema "github.com/invopop/jsonschema"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

// WriteSchema emits the JSON schema describing the JSON rendering of a
// document.
func WriteSchema(w io.Writer) error {
	r := &invopopjsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: true,
	}

	js := r.ReflectFromType(reflect.TypeOf(changelog.Changelog{}))
	js.Description = "A chronological, append-only release-notes document."

	data, err := js.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal json schema: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json schema: %w", err)
	}

	return nil
}
