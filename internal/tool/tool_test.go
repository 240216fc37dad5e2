// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanEvidence(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          InputScanEvidence
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputScanEvidence)
	}{
		{
			name:        "empty content returns error",
			input:       InputScanEvidence{Content: ""},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name: "structured evidence yields extracted fields",
			input: InputScanEvidence{
				Content: `{"backend": "ibm_brisbane", "shots": 4096, "timestamp": "2026-08-26T00:00:00Z", "job_id": "d0a1b2c3d4e5"}`,
				Path:    "runs/bell.json",
			},
			validateOutput: func(t *testing.T, output OutputScanEvidence) {
				assert.Equal(t, "runs/bell.json", output.File)
				assert.Len(t, output.SHA256, 64)
				assert.Equal(t, "ibm_brisbane", output.Backend)
				assert.Equal(t, 4096, output.Shots)
				assert.Equal(t, "2026-08-26T00:00:00Z", output.Timestamp)
				assert.Equal(t, []string{"d0a1b2c3d4e5"}, output.JobIDs)
				assert.Equal(t, "bell", output.EvidenceGroupID)
			},
		},
		{
			name: "path defaults to structured handling",
			input: InputScanEvidence{
				Content: `{"shots": 128}`,
			},
			validateOutput: func(t *testing.T, output OutputScanEvidence) {
				assert.Equal(t, "evidence.json", output.File)
				assert.Equal(t, 128, output.Shots)
				assert.Equal(t, "evidence", output.EvidenceGroupID)
			},
		},
		{
			name: "malformed content degrades to bare record",
			input: InputScanEvidence{
				Content: "{definitely not json",
				Path:    "broken.json",
			},
			validateOutput: func(t *testing.T, output OutputScanEvidence) {
				assert.Equal(t, "broken", output.EvidenceGroupID)
				assert.Empty(t, output.Backend)
				assert.Zero(t, output.Shots)
				assert.Empty(t, output.JobIDs)
				assert.Len(t, output.SHA256, 64)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := ScanEvidence(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestBuildManifest(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	t.Run("empty directory returns error", func(t *testing.T) {
		_, _, err := BuildManifest(ctx, req, InputBuildManifest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory is required")
	})

	t.Run("directory yields manifest and report", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "run.json"),
			[]byte(`{"backend": "ibm_brisbane", "shots": 64}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.md"),
			[]byte("Dashboard: job d0a1b2c3d4e5"), 0o644))

		_, output, err := BuildManifest(ctx, req, InputBuildManifest{Directory: dir})
		require.NoError(t, err)

		assert.Equal(t, 2, output.Manifest.SchemaVersion)
		require.Len(t, output.Manifest.EvidenceSets, 2)
		assert.Equal(t, "dashboard.md", output.Manifest.EvidenceSets[0].File)
		assert.Equal(t, "run.json", output.Manifest.EvidenceSets[1].File)

		assert.Equal(t, []string{"d0a1b2c3d4e5"}, output.Report.UnmatchedJobIDs)
		assert.Equal(t, []string{"run.json"}, output.Report.MissingJobIDs)
		assert.Empty(t, output.Report.MissingBackend)
	})

	t.Run("missing directory propagates error", func(t *testing.T) {
		_, _, err := BuildManifest(ctx, req, InputBuildManifest{
			Directory: filepath.Join(t.TempDir(), "absent"),
		})
		require.Error(t, err)
	})
}
