// SPDX-License-Identifier: Apache-2.0

// Package config loads extraction heuristics from an optional TOML
// file. The file layers overrides onto extract.Default, which is how
// the recognized job-id prefix set stays extensible without code
// changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/evmanproj/evman/internal/extract"
)

//go:embed sample_heuristics.toml
var sampleConfig string

// Sample returns the annotated sample configuration, used by
// "evman config init".
func Sample() string { return sampleConfig }

// File mirrors the TOML layout. Empty slices and strings mean "keep the
// default"; TOML cannot distinguish absent from empty here, and an
// empty override would disable the extractor anyway.
type File struct {
	JobID struct {
		Prefixes []string   `toml:"prefixes"`
		Keys     []string   `toml:"keys"`
		ListKeys []string   `toml:"list_keys"`
		Paths    [][]string `toml:"paths"`
	} `toml:"job_id"`

	Backend struct {
		Paths      [][]string `toml:"paths"`
		ScanPrefix string     `toml:"scan_prefix"`
	} `toml:"backend"`

	Shots struct {
		Paths       [][]string `toml:"paths"`
		RunListKeys []string   `toml:"run_list_keys"`
		ShotKey     string     `toml:"shot_key"`
	} `toml:"shots"`

	Timestamp struct {
		Keys  []string   `toml:"keys"`
		Paths [][]string `toml:"paths"`
	} `toml:"timestamp"`

	Grouping struct {
		Key string `toml:"key"`
	} `toml:"grouping"`

	Narrative struct {
		Marker     string   `toml:"marker"`
		Extensions []string `toml:"extensions"`
	} `toml:"narrative"`

	Structured struct {
		Extensions []string `toml:"extensions"`
	} `toml:"structured"`
}

// Load returns the default heuristics overlaid with the TOML file at
// path. An empty path, or a missing file at the default location, is
// not an error: the defaults apply.
func Load(path string) (extract.Heuristics, error) {
	h := extract.Default()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return h, nil
		}
		return h, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return h, fmt.Errorf("parse config %s: %w", path, err)
	}
	apply(&h, f)
	return h, nil
}

func apply(h *extract.Heuristics, f File) {
	if len(f.JobID.Prefixes) > 0 {
		h.JobIDPrefixes = f.JobID.Prefixes
	}
	if len(f.JobID.Keys) > 0 {
		h.JobIDKeys = f.JobID.Keys
	}
	if len(f.JobID.ListKeys) > 0 {
		h.JobIDListKeys = f.JobID.ListKeys
	}
	if len(f.JobID.Paths) > 0 {
		h.JobIDPaths = f.JobID.Paths
	}
	if len(f.Backend.Paths) > 0 {
		h.BackendPaths = f.Backend.Paths
	}
	if f.Backend.ScanPrefix != "" {
		h.BackendScanPrefix = f.Backend.ScanPrefix
	}
	if len(f.Shots.Paths) > 0 {
		h.ShotPaths = f.Shots.Paths
	}
	if len(f.Shots.RunListKeys) > 0 {
		h.RunListKeys = f.Shots.RunListKeys
	}
	if f.Shots.ShotKey != "" {
		h.ShotKey = f.Shots.ShotKey
	}
	if len(f.Timestamp.Keys) > 0 {
		h.TimestampKeys = f.Timestamp.Keys
	}
	if len(f.Timestamp.Paths) > 0 {
		h.TimestampPaths = f.Timestamp.Paths
	}
	if f.Grouping.Key != "" {
		h.GroupKey = f.Grouping.Key
	}
	if f.Narrative.Marker != "" {
		h.NarrativeMarker = f.Narrative.Marker
	}
	if len(f.Narrative.Extensions) > 0 {
		h.NarrativeExts = f.Narrative.Extensions
	}
	if len(f.Structured.Extensions) > 0 {
		h.StructuredExts = f.Structured.Extensions
	}
}
