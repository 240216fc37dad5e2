// SPDX-License-Identifier: Apache-2.0

// Package extract holds the best-effort heuristics that locate
// provenance fields inside arbitrarily shaped evidence documents. Every
// heuristic is a method on an explicit Heuristics value, so test suites
// and config files can swap prefix sets and key paths without touching
// package state.
package extract

// Heuristics configures the field extractors and the job-identifier
// recognizer. Zero-value fields fall back to nothing; use Default as
// the base and override selectively.
type Heuristics struct {
	// JobIDPrefixes are the case-folded prefixes a token must start
	// with to count as a job identifier.
	JobIDPrefixes []string
	// JobIDKeys are direct mapping keys holding a single identifier.
	JobIDKeys []string
	// JobIDListKeys are direct mapping keys holding a list of
	// identifiers.
	JobIDListKeys []string
	// JobIDPaths are nested key paths holding a single identifier.
	JobIDPaths [][]string

	// BackendPaths are candidate locations for the backend name,
	// tried in order.
	BackendPaths [][]string
	// BackendScanPrefix is the literal prefix used to spot backend
	// names in free-floating strings once the paths are exhausted.
	BackendScanPrefix string

	// ShotPaths are candidate locations for the shot count.
	ShotPaths [][]string
	// ShotKey is the per-run shot field consulted inside run lists.
	ShotKey string
	// RunListKeys name top-level collections of sub-runs to recurse
	// into when no path produced a shot count.
	RunListKeys []string

	// TimestampKeys and TimestampPaths are candidate locations for the
	// run timestamp, accepted verbatim without parsing.
	TimestampKeys  []string
	TimestampPaths [][]string

	// GroupKey is the mapping key declaring an explicit grouping key.
	GroupKey string

	// NarrativeMarker is the case-insensitive word that flags a
	// narrative document as dashboard evidence.
	NarrativeMarker string

	// StructuredExts and NarrativeExts classify files by extension
	// (lower case, including the dot).
	StructuredExts []string
	NarrativeExts  []string
}

// Default returns the heuristics tuned for quantum benchmark evidence:
// IBM runtime job ids (d0…/c0…), ibm_* backend names, and the field
// spellings common across exporter output.
func Default() Heuristics {
	return Heuristics{
		JobIDPrefixes: []string{"d0", "c0"},
		JobIDKeys:     []string{"job_id", "jobId", "runtime_job_id"},
		JobIDListKeys: []string{"job_ids", "jobIds", "jobs", "ibm_job_ids"},
		JobIDPaths: [][]string{
			{"execution_metadata", "job_id"},
			{"execution_metadata", "jobId"},
			{"proof", "execution_metadata", "job_id"},
			{"proof", "execution_metadata", "jobId"},
			{"ibm", "job_id"},
			{"ibm", "jobId"},
		},
		BackendPaths: [][]string{
			{"backend"},
			{"hardware", "backend"},
			{"execution_metadata", "backend"},
			{"proof", "execution_metadata", "backend"},
			{"ibm", "backend"},
			{"summary", "backend"},
		},
		BackendScanPrefix: "ibm_",
		ShotPaths: [][]string{
			{"shots"},
			{"summary", "shots"},
			{"execution_metadata", "shots"},
			{"proof", "execution_metadata", "shots"},
			{"ibm", "shots"},
		},
		ShotKey:     "shots",
		RunListKeys: []string{"runs", "results", "jobs", "executions"},
		TimestampKeys: []string{
			"timestamp", "created_utc", "created", "time", "date",
		},
		TimestampPaths: [][]string{
			{"summary", "timestamp"},
			{"metadata", "timestamp"},
			{"execution_metadata", "timestamp"},
		},
		GroupKey:        "evidence_group_id",
		NarrativeMarker: "dashboard",
		StructuredExts:  []string{".json", ".yaml", ".yml"},
		NarrativeExts:   []string{".md"},
	}
}

// IsStructuredExt reports whether ext (lower case, with dot) names a
// structured evidence format.
func (h Heuristics) IsStructuredExt(ext string) bool {
	return containsString(h.StructuredExts, ext)
}

// IsNarrativeExt reports whether ext names a narrative format.
func (h Heuristics) IsNarrativeExt(ext string) bool {
	return containsString(h.NarrativeExts, ext)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
