// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCommand(cctx *commandContext) *cobra.Command {
	var writeIndex bool
	var noWarnings bool
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the manifest whenever evidence files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}
			heur, err := cctx.heuristics()
			if err != nil {
				return err
			}
			dir := *cctx.evidenceFlag

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			if err := runGenerate(cmd.Context(), logger, heur, dir, writeIndex, !noWarnings); err != nil {
				return err
			}
			logger.Info("watching for changes", zap.String("dir", dir))

			// Writes arrive in bursts; a quiet window coalesces them
			// into one regeneration.
			var pending *time.Timer
			trigger := make(chan struct{}, 1)
			for {
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if isArtifact(event.Name) {
						continue
					}
					if pending != nil {
						pending.Stop()
					}
					pending = time.AfterFunc(debounce, func() {
						select {
						case trigger <- struct{}{}:
						default:
						}
					})
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Warn("watch error", zap.Error(err))
				case <-trigger:
					if err := runGenerate(cmd.Context(), logger, heur, dir, writeIndex, !noWarnings); err != nil {
						logger.Error("regeneration failed", zap.Error(err))
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&writeIndex, "write-index", false, "Also write INDEX.md")
	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "Do not write WARNINGS.md")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet window before regenerating")
	return cmd
}

// isArtifact filters out the files this tool writes itself, so a
// regeneration does not trigger the next one.
func isArtifact(name string) bool {
	for _, out := range []string{"manifest.json", "SHA256SUMS", "INDEX.md", "WARNINGS.md"} {
		if strings.HasSuffix(name, out) {
			return true
		}
	}
	return false
}
