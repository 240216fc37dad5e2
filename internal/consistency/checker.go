// SPDX-License-Identifier: Apache-2.0

// Package consistency cross-checks an assembled manifest: job
// identifiers mentioned in narrative dashboard documents must appear in
// some structured record, and structured records are linted for absent
// provenance fields. Findings are informational; nothing here fails a
// run.
package consistency

import (
	"path"
	"sort"
	"strings"

	"github.com/evmanproj/evman/internal/extract"
	"github.com/evmanproj/evman/internal/manifest"
)

// Report holds the checker's findings. All lists are sorted so rendered
// reports are reproducible. A single record can appear in several
// missing-field lists.
type Report struct {
	// UnmatchedJobIDs are identifiers found in narrative documents but
	// absent from every structured record's job-identifier set.
	UnmatchedJobIDs []string `json:"unmatched_job_ids,omitempty"`

	MissingBackend   []string `json:"missing_backend,omitempty"`
	MissingShots     []string `json:"missing_shots,omitempty"`
	MissingTimestamp []string `json:"missing_timestamp,omitempty"`
	MissingJobIDs    []string `json:"missing_job_ids,omitempty"`
}

// Clean reports whether the checker found nothing to flag.
func (r Report) Clean() bool {
	return len(r.UnmatchedJobIDs) == 0 &&
		len(r.MissingBackend) == 0 &&
		len(r.MissingShots) == 0 &&
		len(r.MissingTimestamp) == 0 &&
		len(r.MissingJobIDs) == 0
}

// Check computes the consistency report for a manifest. sources must be
// the same set the manifest was assembled from; narrative documents are
// re-scanned from their raw text, structured records are inspected via
// their extracted fields. The manifest is never mutated.
func Check(m manifest.Manifest, sources []manifest.Source, h extract.Heuristics) Report {
	raw := make(map[string][]byte, len(sources))
	for _, src := range sources {
		raw[src.Path] = src.Content
	}

	structuredIDs := make(map[string]struct{})
	narrativeIDs := make(map[string]struct{})

	var rep Report
	for _, rec := range m.EvidenceSets {
		ext := extOf(rec.File)

		if h.IsNarrativeExt(ext) {
			text := string(raw[rec.File])
			if strings.Contains(strings.ToLower(text), strings.ToLower(h.NarrativeMarker)) {
				for _, id := range h.JobIDsFromText(text) {
					narrativeIDs[id] = struct{}{}
				}
			}
		}

		if !h.IsStructuredExt(ext) {
			continue
		}
		for _, id := range rec.JobIDs {
			structuredIDs[strings.ToLower(id)] = struct{}{}
		}
		if rec.Backend == "" {
			rep.MissingBackend = append(rep.MissingBackend, rec.File)
		}
		if rec.Shots == 0 {
			rep.MissingShots = append(rep.MissingShots, rec.File)
		}
		if rec.Timestamp == "" {
			rep.MissingTimestamp = append(rep.MissingTimestamp, rec.File)
		}
		if len(rec.JobIDs) == 0 {
			rep.MissingJobIDs = append(rep.MissingJobIDs, rec.File)
		}
	}

	for id := range narrativeIDs {
		if _, ok := structuredIDs[id]; !ok {
			rep.UnmatchedJobIDs = append(rep.UnmatchedJobIDs, id)
		}
	}

	sort.Strings(rep.UnmatchedJobIDs)
	sort.Strings(rep.MissingBackend)
	sort.Strings(rep.MissingShots)
	sort.Strings(rep.MissingTimestamp)
	sort.Strings(rep.MissingJobIDs)
	return rep
}

// extOf lower-cases the extension of a manifest-relative slash path.
func extOf(p string) string {
	return strings.ToLower(path.Ext(p))
}
