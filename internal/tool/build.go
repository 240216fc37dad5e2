// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evmanproj/evman/internal/consistency"
	"github.com/evmanproj/evman/internal/extract"
	"github.com/evmanproj/evman/internal/manifest"
	"github.com/evmanproj/evman/internal/scan"
)

// MetadataBuildManifest describes the build_manifest tool.
var MetadataBuildManifest = &mcp.Tool{
	Name: "build_manifest",
	Description: "Build an evidence manifest for a directory of JSON/YAML/Markdown " +
		"artifacts and cross-check it for consistency. Returns the manifest " +
		"(schema_version 2) and a report of job identifiers mentioned in dashboard " +
		"documents but missing from structured evidence, plus per-file missing-field " +
		"lints. Nothing is written to disk.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"directory"},
		"properties": map[string]interface{}{
			"directory": map[string]interface{}{
				"type":        "string",
				"description": "Evidence directory to scan recursively",
			},
		},
	},
}

// InputBuildManifest is the input for the BuildManifest tool.
type InputBuildManifest struct {
	Directory string `json:"directory"`
}

// OutputBuildManifest is the output for the BuildManifest tool.
type OutputBuildManifest struct {
	Manifest manifest.Manifest  `json:"manifest"`
	Report   consistency.Report `json:"report"`
}

// BuildManifest assembles an in-memory manifest for the directory and
// runs the consistency checker over it.
func BuildManifest(ctx context.Context, _ *mcp.CallToolRequest, input InputBuildManifest) (*mcp.CallToolResult, OutputBuildManifest, error) {
	if input.Directory == "" {
		return nil, OutputBuildManifest{}, fmt.Errorf("directory is required")
	}

	h := extract.Default()
	sources, err := scan.Load(ctx, input.Directory, h)
	if err != nil {
		return nil, OutputBuildManifest{}, err
	}

	builder := manifest.NewBuilder(h, scan.SHA256Hex, scan.GitRevision(input.Directory))
	m := builder.Assemble(sources, time.Now())
	rep := consistency.Check(m, sources, h)

	return nil, OutputBuildManifest{Manifest: m, Report: rep}, nil
}
