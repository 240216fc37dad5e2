// SPDX-License-Identifier: Apache-2.0

// Package render turns manifests and consistency reports into the text
// artifacts written next to the evidence: SHA256SUMS, INDEX.md, and
// WARNINGS.md.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evmanproj/evman/internal/consistency"
	"github.com/evmanproj/evman/internal/manifest"
)

// SHA256Sums renders the records in coreutils sha256sum -c format,
// sorted by file path.
func SHA256Sums(records []manifest.Record) []byte {
	sorted := make([]manifest.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].File < sorted[j].File })

	var b strings.Builder
	for _, rec := range sorted {
		fmt.Fprintf(&b, "%s  %s\n", rec.SHA256, rec.File)
	}
	return []byte(b.String())
}

// IndexMarkdown renders a human-readable index of the manifest.
// evidenceDir is only used in the title.
func IndexMarkdown(m manifest.Manifest, evidenceDir string) []byte {
	lines := []string{
		"# Evidence Index — " + evidenceDir,
		"",
		"- Generated: " + m.GeneratedUTC,
		"- Git commit: `" + m.GitCommit + "`",
		"",
		"## Files",
		"",
	}

	sorted := make([]manifest.Record, len(m.EvidenceSets))
	copy(sorted, m.EvidenceSets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].File < sorted[j].File })

	for _, rec := range sorted {
		lines = append(lines, "### "+rec.File)
		lines = append(lines, "- SHA256: `"+rec.SHA256+"`")
		if rec.Backend != "" {
			lines = append(lines, "- Backend: `"+rec.Backend+"`")
		}
		if rec.Shots != 0 {
			lines = append(lines, fmt.Sprintf("- Shots: `%d`", rec.Shots))
		}
		if rec.Timestamp != "" {
			lines = append(lines, "- Timestamp: `"+rec.Timestamp+"`")
		}
		if len(rec.JobIDs) > 0 {
			lines = append(lines, fmt.Sprintf("- Job IDs (%d):", len(rec.JobIDs)))
			for _, id := range rec.JobIDs {
				lines = append(lines, "  - `"+id+"`")
			}
		}
		lines = append(lines, "- evidence_group_id: `"+rec.EvidenceGroupID+"`")
		lines = append(lines, "")
	}
	return []byte(strings.Join(lines, "\n"))
}

// WarningsMarkdown renders the consistency report for human review.
func WarningsMarkdown(m manifest.Manifest, rep consistency.Report) []byte {
	lines := []string{
		"# Evidence Warnings / Consistency Report",
		"",
		"- Generated: " + m.GeneratedUTC,
		"- Git commit: `" + m.GitCommit + "`",
		"",
	}

	if len(rep.UnmatchedJobIDs) > 0 {
		lines = append(lines,
			"## Dashboard job IDs not found in JSON evidence",
			"These job IDs appear in dashboard markdown(s) but were not found in any JSON evidence file:",
			"",
		)
		for _, id := range rep.UnmatchedJobIDs {
			lines = append(lines, "- `"+id+"`")
		}
		lines = append(lines,
			"",
			"Recommendation: add `evidence_group_id` and ensure the dashboard MD references the same group + job_id as the JSON artifact.",
			"",
		)
	}

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, "## "+title)
		for _, item := range items {
			lines = append(lines, "- "+item)
		}
		lines = append(lines, "")
	}
	section("JSON evidence missing `backend` field", rep.MissingBackend)
	section("JSON evidence missing `shots` field", rep.MissingShots)
	section("JSON evidence missing `timestamp` field", rep.MissingTimestamp)
	section("JSON evidence missing `job_ids` field", rep.MissingJobIDs)

	if rep.Clean() {
		lines = append(lines, "No issues detected by current heuristics. ✅", "")
	}
	return []byte(strings.Join(lines, "\n"))
}
