// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion is the manifest schema version emitted by this engine.
const SchemaVersion = 2

// Manifest is the aggregate of all evidence records plus run-level
// metadata. Record order follows enumeration order; the assembler does
// not sort.
type Manifest struct {
	SchemaVersion int      `json:"schema_version"`
	GeneratedUTC  string   `json:"generated_utc"`
	GitCommit     string   `json:"git_commit"`
	EvidenceSets  []Record `json:"evidence_sets"`
}

// Assemble builds the manifest from the given sources. The same source
// set with the same revision and generation time yields byte-identical
// Encode output.
func (b *Builder) Assemble(sources []Source, generated time.Time) Manifest {
	records := make([]Record, 0, len(sources))
	for _, src := range sources {
		records = append(records, b.Record(src))
	}
	return Manifest{
		SchemaVersion: SchemaVersion,
		GeneratedUTC:  generated.UTC().Format(time.RFC3339),
		GitCommit:     b.revision,
		EvidenceSets:  records,
	}
}

// Encode serializes the manifest with two-space indentation and a
// trailing newline.
func (m Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a previously encoded manifest.
func Decode(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
