package cmd

import (
	"bytes"
	"testing"
	"time"

	"ar-sync/feature/arsync/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRuns(t *testing.T) {
	started := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	runs := []models.SyncRun{
		{ID: 2, Trigger: "http", Status: models.RunStatusSucceeded, StartedAt: started, FinishedAt: started.Add(90 * time.Second), Updated: 41, Created: 2},
		{ID: 1, Trigger: "cli", Status: models.RunStatusFailed, DryRun: true, StartedAt: started.Add(-time.Hour), FinishedAt: started.Add(-time.Hour), Error: "netsuite: query: HTTP 401: INVALID_LOGIN"},
	}

	var buf bytes.Buffer
	require.NoError(t, renderRuns(&buf, runs))

	out := buf.String()
	assert.Contains(t, out, "2024-03-01T06:00:00Z")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "41")
	assert.Contains(t, out, "failed (dry run)")
	assert.Contains(t, out, "INVALID_LOGIN")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
