package render

import (
	"encoding/json"
	"fmt"

	"github.com/scorewell/engrave/pkg/layout"
)

// RenderJSON serializes resolved systems as indented JSON, for engravers that
// do their own drawing from the solved geometry.
func RenderJSON(results []*layout.Result) ([]byte, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return data, nil
}
