// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evmanproj/evman/internal/tool"
)

const serverVersion = "0.2.0"

func newServeCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the evidence tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "evman",
				Version: serverVersion,
			}, nil)
			mcp.AddTool(server, tool.MetadataScanEvidence, tool.ScanEvidence)
			mcp.AddTool(server, tool.MetadataBuildManifest, tool.BuildManifest)

			logger.Info("serving MCP on stdio", zap.String("version", serverVersion))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
