// SPDX-License-Identifier: Apache-2.0

// Package scan supplies the engine's file-system collaborators: evidence
// enumeration, content digests, and source-control revision lookup.
package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/evmanproj/evman/internal/extract"
	"github.com/evmanproj/evman/internal/manifest"
)

// SHA256Hex is the default digest collaborator: hex-encoded SHA-256 of
// the exact file bytes.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Enumerate walks dir recursively and returns the slash-separated
// relative paths of every file with a recognized evidence extension,
// sorted for deterministic manifests.
func Enumerate(dir string, h extract.Heuristics) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if !h.IsStructuredExt(ext) && !h.IsNarrativeExt(ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load enumerates dir and reads every evidence file into a Source.
// Per-file work fans out across a bounded worker group; results are
// merged by index, so output order matches the sorted enumeration
// regardless of scheduling.
func Load(ctx context.Context, dir string, h extract.Heuristics) ([]manifest.Source, error) {
	paths, err := Enumerate(dir, h)
	if err != nil {
		return nil, err
	}

	sources := make([]manifest.Source, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				return fmt.Errorf("read %s: %w", rel, err)
			}
			sources[i] = manifest.NewSource(rel, content, h)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}
