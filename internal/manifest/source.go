// SPDX-License-Identifier: Apache-2.0

// Package manifest assembles per-file evidence records into the
// versioned manifest that downstream renderers and the consistency
// checker consume.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/evmanproj/evman/internal/docval"
	"github.com/evmanproj/evman/internal/extract"
)

// SyntheticRootKey wraps non-mapping top-level documents so extractors
// always have a mapping to search.
const SyntheticRootKey = "_root"

// Source is one enumerated evidence file: its manifest-relative path,
// raw bytes, and, for structured formats that parsed, the decoded
// document. Doc is nil for narrative files and for structured files
// whose bytes failed to parse; such files still produce a record.
type Source struct {
	Path    string
	Content []byte
	Doc     *docval.Value
}

// NewSource builds a Source, decoding structured formats. Parse
// failures are deliberately swallowed: a malformed file degrades to a
// record with no extracted metadata, never to an error.
func NewSource(path string, content []byte, h extract.Heuristics) Source {
	src := Source{Path: path, Content: content}
	ext := strings.ToLower(filepath.Ext(path))
	if !h.IsStructuredExt(ext) {
		return src
	}

	var (
		doc docval.Value
		err error
	)
	if ext == ".json" {
		doc, err = docval.DecodeJSON(content)
	} else {
		doc, err = docval.Decode(content)
	}
	if err != nil {
		return src
	}
	if !doc.IsMapping() {
		doc = docval.Wrap(SyntheticRootKey, doc)
	}
	src.Doc = &doc
	return src
}

// Stem returns the source's base name without extension, the fallback
// grouping key.
func (s Source) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
