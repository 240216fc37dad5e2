// SPDX-License-Identifier: Apache-2.0

package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmanproj/evman/internal/docval"
	"github.com/evmanproj/evman/internal/extract"
)

func mustDecode(t *testing.T, src string) docval.Value {
	t.Helper()
	doc, err := docval.Decode([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestJobIDsFromText(t *testing.T) {
	h := extract.Default()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain identifier",
			text: "job d0a1b2c3d4e5 completed",
			want: []string{"d0a1b2c3d4e5"},
		},
		{
			name: "case folded",
			text: "Job D0A1B2C3D4E5 completed",
			want: []string{"d0a1b2c3d4e5"},
		},
		{
			name: "embedded in url",
			text: "see https://quantum.example.com/jobs/d0ffee00c0ffee00 for details",
			want: []string{"d0ffee00c0ffee00"},
		},
		{
			name: "unrecognized prefix rejected",
			text: "run ab12cd34ef56 finished",
			want: nil,
		},
		{
			name: "too short rejected",
			text: "token d0a1b2c3d4 here", // 10 chars: matches the token shape, fails the length filter
			want: nil,
		},
		{
			name: "too long rejected",
			text: "d0" + "a1b2c3d4e5a1b2c3d4e5a1b2c3d4e5a1b2c3d4e5",
			want: nil,
		},
		{
			name: "duplicates collapse preserving first occurrence",
			text: "c0ffee11223344 then d0a1b2c3d4e5 then c0ffee11223344 again",
			want: []string{"c0ffee11223344", "d0a1b2c3d4e5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.JobIDsFromText(tt.text))
		})
	}
}

func TestJobIDs_StructuredFields(t *testing.T) {
	h := extract.Default()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "direct key",
			doc:  `{"job_id": "d0a1b2c3d4e5"}`,
			want: []string{"d0a1b2c3d4e5"},
		},
		{
			name: "camel case variant",
			doc:  `{"jobId": "D0A1B2C3D4E5"}`,
			want: []string{"d0a1b2c3d4e5"},
		},
		{
			name: "list key",
			doc:  `{"job_ids": ["d0a1b2c3d4e5", "c0ffee11223344"]}`,
			want: []string{"d0a1b2c3d4e5", "c0ffee11223344"},
		},
		{
			name: "nested execution metadata",
			doc:  `{"execution_metadata": {"job_id": "d0deadbeef0042"}}`,
			want: []string{"d0deadbeef0042"},
		},
		{
			name: "deeply nested proof path",
			doc:  `{"proof": {"execution_metadata": {"jobId": "c0cacola001122"}}}`,
			want: []string{"c0cacola001122"},
		},
		{
			name: "non-string values at id keys are skipped",
			doc:  `{"job_id": 12345, "job_ids": "not-a-list"}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.JobIDs(mustDecode(t, tt.doc)))
		})
	}
}

// A declared job_id that fails the prefix/length convention is dropped:
// structured-field hits share the same acceptance filter as text hits.
func TestJobIDs_StructuredFieldsShareAcceptanceFilter(t *testing.T) {
	h := extract.Default()

	assert.Empty(t, h.JobIDs(mustDecode(t, `{"job_id": "X7"}`)))
	assert.Empty(t, h.JobIDs(mustDecode(t, `{"job_id": "ff0011223344556677"}`)))
	// Prefix alone is not enough either: too short.
	assert.Empty(t, h.JobIDs(mustDecode(t, `{"job_id": "d0a1b2"}`)))
	// Whitespace is trimmed before the filter.
	assert.Equal(t, []string{"d0a1b2c3d4e5"}, h.JobIDs(mustDecode(t, `{"job_id": "  D0A1B2C3D4E5  "}`)))
}

func TestJobIDs_TextFallbackFindsProseIdentifiers(t *testing.T) {
	h := extract.Default()

	doc := mustDecode(t, `{
		"notes": "submitted as d0a1b2c3d4e5 via the runtime queue",
		"log": ["retry gave c0ffee11223344"]
	}`)
	assert.Equal(t, []string{"d0a1b2c3d4e5", "c0ffee11223344"}, h.JobIDs(doc))
}

func TestJobIDs_KeyNamesAreCandidateText(t *testing.T) {
	h := extract.Default()

	// The identifier appears only as a mapping key.
	doc := mustDecode(t, `{"d0a1b2c3d4e5": {"status": "done"}}`)
	assert.Equal(t, []string{"d0a1b2c3d4e5"}, h.JobIDs(doc))
}

func TestJobIDs_StructuredHitsPrecedeTextHits(t *testing.T) {
	h := extract.Default()

	// The text scan would find the prose id first in document order, but
	// the declared field wins the ordering.
	doc := mustDecode(t, `{
		"comment": "previous run was c0ffee11223344",
		"job_id": "d0a1b2c3d4e5"
	}`)
	assert.Equal(t, []string{"d0a1b2c3d4e5", "c0ffee11223344"}, h.JobIDs(doc))
}

func TestJobIDs_RepeatedCallsAreStable(t *testing.T) {
	h := extract.Default()
	doc := mustDecode(t, `{
		"job_ids": ["d0a1b2c3d4e5"],
		"notes": "c0ffee11223344 and d0a1b2c3d4e5"
	}`)

	first := h.JobIDs(doc)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, h.JobIDs(doc))
	}
}

func TestJobIDs_InjectedPrefixSet(t *testing.T) {
	h := extract.Default()
	h.JobIDPrefixes = []string{"zz"}

	doc := mustDecode(t, `{"job_id": "zz11223344556677", "notes": "d0a1b2c3d4e5"}`)
	assert.Equal(t, []string{"zz11223344556677"}, h.JobIDs(doc))
}
