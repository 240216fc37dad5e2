// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strconv"
	"strings"

	"github.com/evmanproj/evman/internal/docval"
)

// Backend returns the execution backend name. Candidate paths are tried
// in order; a present-but-wrong-typed value is treated as absent. When
// the paths are exhausted, every leaf string is scanned for the backend
// naming convention prefix and the first hit wins.
func (h Heuristics) Backend(doc docval.Value) (string, bool) {
	for _, path := range h.BackendPaths {
		if v, ok := doc.Lookup(path...); ok {
			if s, ok := v.Str(); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	if h.BackendScanPrefix == "" {
		return "", false
	}
	var found string
	doc.Walk(func(leaf docval.Value) {
		if found != "" {
			return
		}
		if s, ok := leaf.Str(); ok && strings.HasPrefix(s, h.BackendScanPrefix) {
			found = s
		}
	})
	return found, found != ""
}

// Shots returns the positive shot count. Candidate paths accept either
// a native integer or a string of decimal digits. If no path matched
// and the document holds a list of sub-runs under one of the run-list
// keys, each item's own shot field is consulted one level deep.
func (h Heuristics) Shots(doc docval.Value) (int, bool) {
	for _, path := range h.ShotPaths {
		v, ok := doc.Lookup(path...)
		if !ok {
			continue
		}
		if n, ok := v.Int(); ok && n > 0 {
			return int(n), true
		}
		if s, ok := v.Str(); ok && isDigits(s) {
			if n, err := strconv.Atoi(s); err == nil {
				return n, true
			}
		}
	}
	for _, key := range h.RunListKeys {
		v, ok := doc.Field(key)
		if !ok {
			continue
		}
		for _, item := range v.Items() {
			if vv, ok := item.Lookup(h.ShotKey); ok {
				if n, ok := vv.Int(); ok && n > 0 {
					return int(n), true
				}
			}
		}
	}
	return 0, false
}

// Timestamp returns the run timestamp verbatim. Producers disagree on
// format, so any non-empty string at a candidate location is accepted
// without parsing or validation.
func (h Heuristics) Timestamp(doc docval.Value) (string, bool) {
	for _, key := range h.TimestampKeys {
		if v, ok := doc.Field(key); ok {
			if s, ok := v.Str(); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	for _, path := range h.TimestampPaths {
		if v, ok := doc.Lookup(path...); ok {
			if s, ok := v.Str(); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	return "", false
}

// GroupID returns the declared grouping key, or fallback when the
// document does not declare one. Every record ends up with a grouping
// key; this never reports absence.
func (h Heuristics) GroupID(doc docval.Value, fallback string) string {
	if v, ok := doc.Field(h.GroupKey); ok {
		if s, ok := v.Str(); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fallback
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
