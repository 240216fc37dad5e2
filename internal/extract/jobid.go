// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"

	"github.com/evmanproj/evman/internal/docval"
)

// jobIDToken matches a maximal alphanumeric run of plausible identifier
// length. The match alone is not acceptance; acceptJobID applies the
// prefix and length filter shared by every candidate path.
var jobIDToken = regexp.MustCompile(`\b[a-z0-9]{10,40}\b`)

const (
	minJobIDLen = 12
	maxJobIDLen = 40
)

// JobIDsFromText scans free text for job identifiers. Candidates are
// case-folded, filtered through the shared acceptance check, and
// de-duplicated preserving first occurrence.
func (h Heuristics) JobIDsFromText(text string) []string {
	var out orderedSet
	for _, tok := range jobIDToken.FindAllString(strings.ToLower(text), -1) {
		if h.acceptJobID(tok) {
			out.add(tok)
		}
	}
	return out.values()
}

// JobIDs extracts every job identifier from a structured document.
// Structured fields are consulted first (direct keys, list keys, nested
// paths), then every scalar leaf is concatenated and scanned as text to
// catch identifiers buried in prose, logs, or URLs. Both paths feed one
// final filter, so a declared field value that does not look like a job
// identifier is dropped just like a text hit would be.
func (h Heuristics) JobIDs(doc docval.Value) []string {
	var candidates []string

	for _, key := range h.JobIDKeys {
		if v, ok := doc.Field(key); ok {
			if s, ok := v.Str(); ok {
				candidates = append(candidates, s)
			}
		}
	}
	for _, key := range h.JobIDListKeys {
		v, ok := doc.Field(key)
		if !ok {
			continue
		}
		for _, item := range v.Items() {
			if s, ok := item.Str(); ok {
				candidates = append(candidates, s)
			}
		}
	}
	for _, path := range h.JobIDPaths {
		if v, ok := doc.Lookup(path...); ok {
			if s, ok := v.Str(); ok {
				candidates = append(candidates, s)
			}
		}
	}

	var text strings.Builder
	doc.Walk(func(leaf docval.Value) {
		if s, ok := leaf.ScalarText(); ok {
			text.WriteString(s)
			text.WriteByte('\n')
		}
	})
	candidates = append(candidates, h.JobIDsFromText(text.String())...)

	var out orderedSet
	for _, cand := range candidates {
		folded := strings.ToLower(strings.TrimSpace(cand))
		if folded == "" || !h.acceptJobID(folded) {
			continue
		}
		out.add(folded)
	}
	return out.values()
}

// acceptJobID is the single acceptance filter for all candidate
// sources: alphanumeric, length 12–40, and carrying a recognized
// prefix. tok must already be case-folded.
func (h Heuristics) acceptJobID(tok string) bool {
	if len(tok) < minJobIDLen || len(tok) > maxJobIDLen {
		return false
	}
	for _, r := range tok {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	for _, prefix := range h.JobIDPrefixes {
		if strings.HasPrefix(tok, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
