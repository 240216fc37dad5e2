// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/evmanproj/evman/internal/schema"
)

func newValidateCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest.json]",
		Short: "Validate an emitted manifest against the output contract",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(*cctx.evidenceFlag, "manifest.json")
			if len(args) == 1 {
				path = args[0]
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			if err := schema.Validate(data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			return nil
		},
	}
}
