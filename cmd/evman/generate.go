// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evmanproj/evman/internal/consistency"
	"github.com/evmanproj/evman/internal/extract"
	"github.com/evmanproj/evman/internal/manifest"
	"github.com/evmanproj/evman/internal/render"
	"github.com/evmanproj/evman/internal/scan"
)

func newGenerateCommand(cctx *commandContext) *cobra.Command {
	var writeIndex bool
	var noWarnings bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate manifest.json, SHA256SUMS, and the consistency report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}
			heur, err := cctx.heuristics()
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), logger, heur, *cctx.evidenceFlag, writeIndex, !noWarnings)
		},
	}

	cmd.Flags().BoolVar(&writeIndex, "write-index", false, "Also write INDEX.md")
	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "Do not write WARNINGS.md")
	return cmd
}

// runGenerate assembles the manifest for dir and writes the output
// artifacts next to the evidence. Consistency findings never fail the
// run; they only shape WARNINGS.md.
func runGenerate(ctx context.Context, logger *zap.Logger, heur extract.Heuristics, dir string, writeIndex, writeWarnings bool) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("evidence directory not found: %s", dir)
	}

	sources, err := scan.Load(ctx, dir, heur)
	if err != nil {
		return err
	}
	logger.Debug("evidence loaded", zap.Int("files", len(sources)), zap.String("dir", dir))

	revision := scan.GitRevision(".")
	builder := manifest.NewBuilder(heur, scan.SHA256Hex, revision)
	m := builder.Assemble(sources, time.Now())

	encoded, err := m.Encode()
	if err != nil {
		return err
	}
	if err := writeArtifact(filepath.Join(dir, "manifest.json"), encoded, logger); err != nil {
		return err
	}
	if err := writeArtifact(filepath.Join(dir, "SHA256SUMS"), render.SHA256Sums(m.EvidenceSets), logger); err != nil {
		return err
	}
	if writeIndex {
		if err := writeArtifact(filepath.Join(dir, "INDEX.md"), render.IndexMarkdown(m, dir), logger); err != nil {
			return err
		}
	}
	if writeWarnings {
		rep := consistency.Check(m, sources, heur)
		if !rep.Clean() {
			logger.Info("consistency findings",
				zap.Int("unmatched_job_ids", len(rep.UnmatchedJobIDs)),
				zap.Int("missing_backend", len(rep.MissingBackend)),
				zap.Int("missing_shots", len(rep.MissingShots)),
				zap.Int("missing_timestamp", len(rep.MissingTimestamp)),
				zap.Int("missing_job_ids", len(rep.MissingJobIDs)))
		}
		if err := writeArtifact(filepath.Join(dir, "WARNINGS.md"), render.WarningsMarkdown(m, rep), logger); err != nil {
			return err
		}
	}

	logger.Info("manifest generated",
		zap.Int("records", len(m.EvidenceSets)),
		zap.String("revision", revision))
	return nil
}

func writeArtifact(path string, data []byte, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("wrote artifact", zap.String("path", path))
	return nil
}
