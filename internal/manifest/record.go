// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"github.com/evmanproj/evman/internal/extract"
)

// Record is the per-file evidence summary. Optional fields carry
// omitempty so absent evidence never serializes as a null placeholder;
// the missing-field lint depends on true absence.
type Record struct {
	File            string   `json:"file"`
	SHA256          string   `json:"sha256"`
	SizeBytes       int64    `json:"size_bytes"`
	GitCommit       string   `json:"git_commit"`
	EvidenceGroupID string   `json:"evidence_group_id"`
	Backend         string   `json:"backend,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
	Shots           int      `json:"shots,omitempty"`
	JobIDs          []string `json:"job_ids,omitempty"`
}

// DigestFunc computes the content digest for a file's exact bytes. The
// algorithm is a collaborator contract; the engine only requires the
// value to be stable across runs on unchanged bytes.
type DigestFunc func([]byte) string

// Builder turns Sources into Records and Manifests. It holds the
// heuristics, the digest collaborator, and the source-control revision
// for the run; it never fails on a source the caller enumerated.
type Builder struct {
	heur     extract.Heuristics
	digest   DigestFunc
	revision string
}

// NewBuilder creates a Builder.
func NewBuilder(h extract.Heuristics, digest DigestFunc, revision string) *Builder {
	return &Builder{heur: h, digest: digest, revision: revision}
}

// Record builds the evidence record for one source. When the source has
// no decoded document the record carries digest, size, revision, and the
// file-name grouping key only.
func (b *Builder) Record(src Source) Record {
	rec := Record{
		File:            src.Path,
		SHA256:          b.digest(src.Content),
		SizeBytes:       int64(len(src.Content)),
		GitCommit:       b.revision,
		EvidenceGroupID: src.Stem(),
	}
	if src.Doc == nil {
		return rec
	}

	doc := *src.Doc
	rec.EvidenceGroupID = b.heur.GroupID(doc, src.Stem())
	if backend, ok := b.heur.Backend(doc); ok {
		rec.Backend = backend
	}
	if ts, ok := b.heur.Timestamp(doc); ok {
		rec.Timestamp = ts
	}
	if shots, ok := b.heur.Shots(doc); ok {
		rec.Shots = shots
	}
	if ids := b.heur.JobIDs(doc); len(ids) > 0 {
		rec.JobIDs = ids
	}
	return rec
}
