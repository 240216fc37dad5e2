// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmanproj/evman/internal/manifest"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeEvidence(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.json"),
		[]byte(`{"backend": "ibm_brisbane", "shots": 4096, "timestamp": "2026-08-26T00:00:00Z", "job_id": "d0a1b2c3d4e5"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.md"),
		[]byte("# Summary\nDashboard shows job d0ffee00c0ffee00 as COMPLETED.\n"), 0o644))
	return dir
}

func TestGenerateCommand(t *testing.T) {
	dir := writeEvidence(t)

	_, err := runCommand(t, "generate", "--evidence", dir, "--write-index")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	m, err := manifest.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2, m.SchemaVersion)
	require.Len(t, m.EvidenceSets, 2)
	assert.Equal(t, "dashboard.md", m.EvidenceSets[0].File)
	assert.Equal(t, "run.json", m.EvidenceSets[1].File)
	assert.Equal(t, []string{"d0a1b2c3d4e5"}, m.EvidenceSets[1].JobIDs)

	sums, err := os.ReadFile(filepath.Join(dir, "SHA256SUMS"))
	require.NoError(t, err)
	assert.Contains(t, string(sums), "  run.json\n")

	index, err := os.ReadFile(filepath.Join(dir, "INDEX.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "### run.json")

	warnings, err := os.ReadFile(filepath.Join(dir, "WARNINGS.md"))
	require.NoError(t, err)
	assert.Contains(t, string(warnings), "d0ffee00c0ffee00")
}

func TestGenerateCommand_NoWarnings(t *testing.T) {
	dir := writeEvidence(t)

	_, err := runCommand(t, "generate", "--evidence", dir, "--no-warnings")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "WARNINGS.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommand_MissingDirectory(t *testing.T) {
	_, err := runCommand(t, "generate", "--evidence", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evidence directory not found")
}

func TestValidateCommand(t *testing.T) {
	dir := writeEvidence(t)

	_, err := runCommand(t, "generate", "--evidence", dir)
	require.NoError(t, err)

	out, err := runCommand(t, "validate", filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestValidateCommand_RejectsTamperedManifest(t *testing.T) {
	dir := writeEvidence(t)
	_, err := runCommand(t, "generate", "--evidence", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := bytes.Replace(data, []byte(`"schema_version": 2`), []byte(`"schema_version": 3`), 1)
	require.NotEqual(t, data, tampered)
	require.NoError(t, os.WriteFile(path, tampered, 0o644))

	_, err = runCommand(t, "validate", path)
	require.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	dir := writeEvidence(t)

	out, err := runCommand(t, "check", "--evidence", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "d0ffee00c0ffee00")
	assert.Contains(t, out, "unmatched job id")
}

func TestCheckCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.json"),
		[]byte(`{"backend": "ibm_brisbane", "shots": 16, "timestamp": "t", "job_id": "d0a1b2c3d4e5"}`), 0o644))

	out, err := runCommand(t, "check", "--evidence", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues detected")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evman.toml")

	out, err := runCommand(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[job_id]")

	// Refuses to clobber an existing file.
	_, err = runCommand(t, "config", "init", "--config", path)
	require.Error(t, err)
}
