// SPDX-License-Identifier: Apache-2.0

// Package schema pins the manifest output contract as a CUE definition.
// Input evidence is never schema-checked; only the manifest this engine
// emits has a declared shape.
package schema

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed manifest.cue
var manifestSchema string

// Validate checks serialized manifest JSON against the embedded
// contract: schema version, digest shape, positive shot counts, and
// job-identifier token shape.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(manifestSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Manifest"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup manifest definition: %w", err)
	}

	// JSON is a subset of CUE, so the document compiles directly.
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("compile manifest document: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("manifest does not satisfy schema: %w", err)
	}
	return nil
}
