// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the evidence engine over MCP.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evmanproj/evman/internal/extract"
	"github.com/evmanproj/evman/internal/manifest"
	"github.com/evmanproj/evman/internal/scan"
)

// MetadataScanEvidence describes the scan_evidence tool.
var MetadataScanEvidence = &mcp.Tool{
	Name: "scan_evidence",
	Description: "Extract provenance fields from a single evidence document. " +
		"Accepts JSON or YAML content and returns the execution backend, shot count, " +
		"timestamp, grouping key, and recognized job identifiers found by the " +
		"best-effort heuristics. Fields with no supporting evidence are omitted.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the evidence document",
			},
			"path": map[string]interface{}{
				"type": "string",
				"description": "Optional file path for the document. The extension selects " +
					"structured vs narrative handling and the base name is the fallback " +
					"grouping key. Defaults to evidence.json.",
			},
		},
	},
}

// InputScanEvidence is the input for the ScanEvidence tool.
type InputScanEvidence struct {
	Content string `json:"content"`
	Path    string `json:"path"`
}

// OutputScanEvidence is the output for the ScanEvidence tool.
type OutputScanEvidence struct {
	File            string   `json:"file"`
	SHA256          string   `json:"sha256"`
	SizeBytes       int64    `json:"size_bytes"`
	EvidenceGroupID string   `json:"evidence_group_id"`
	Backend         string   `json:"backend,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
	Shots           int      `json:"shots,omitempty"`
	JobIDs          []string `json:"job_ids,omitempty"`
}

// ScanEvidence runs the extractors over one inline document.
func ScanEvidence(_ context.Context, _ *mcp.CallToolRequest, input InputScanEvidence) (*mcp.CallToolResult, OutputScanEvidence, error) {
	if input.Content == "" {
		return nil, OutputScanEvidence{}, fmt.Errorf("content is required")
	}
	path := input.Path
	if path == "" {
		path = "evidence.json"
	}

	h := extract.Default()
	builder := manifest.NewBuilder(h, scan.SHA256Hex, "unknown")
	rec := builder.Record(manifest.NewSource(path, []byte(input.Content), h))

	return nil, OutputScanEvidence{
		File:            rec.File,
		SHA256:          rec.SHA256,
		SizeBytes:       rec.SizeBytes,
		EvidenceGroupID: rec.EvidenceGroupID,
		Backend:         rec.Backend,
		Timestamp:       rec.Timestamp,
		Shots:           rec.Shots,
		JobIDs:          rec.JobIDs,
	}, nil
}
