// SPDX-License-Identifier: Apache-2.0

package docval

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Decode parses a JSON or YAML document into a Value. Mappings are
// decoded in ordered mode so that key encounter order survives into the
// tree; without this, job-identifier discovery order would vary between
// runs on the same input.
func Decode(data []byte) (Value, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return Value{}, fmt.Errorf("decode document: %w", err)
	}
	return From(raw), nil
}

// DecodeJSON parses a document that must be valid JSON. YAML accepts
// almost any text as a bare scalar, which would let a corrupt .json file
// masquerade as a one-leaf document; rejecting invalid JSON up front
// keeps malformed files on the no-metadata path.
func DecodeJSON(data []byte) (Value, error) {
	if !json.Valid(data) {
		return Value{}, fmt.Errorf("decode document: not valid JSON")
	}
	return Decode(data)
}
