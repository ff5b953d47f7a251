// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/adobe-helper/pkg/types"
)

func newTestTracker(t *testing.T, dir string, limit int) *Tracker {
	t.Helper()
	tr, err := NewTracker(types.TrackerConfig{StateDir: dir, DailyLimit: limit}, nil)
	require.NoError(t, err)
	return tr
}

// writeUsageFile puts a hand-built record on disk, bypassing the tracker.
func writeUsageFile(t *testing.T, dir string, rec record) {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, usageFilename), data, 0o644))
}

func eventsForToday(n int) []types.ConversionEvent {
	events := make([]types.ConversionEvent, n)
	for i := range events {
		events[i] = types.ConversionEvent{Timestamp: time.Now()}
	}
	return events
}

func TestIncrementUsageCounts(t *testing.T) {
	const limit = 5
	dir := t.TempDir()
	tr := newTestTracker(t, dir, limit)

	assert.Equal(t, 0, tr.CurrentCount())
	assert.Empty(t, tr.ConversionHistory())

	for n := 1; n <= limit+5; n++ {
		tr.IncrementUsage(fmt.Sprintf("doc-%d.pdf", n))
		assert.Equal(t, n, tr.CurrentCount())
		assert.Len(t, tr.ConversionHistory(), n)
	}
}

func TestCanConvertBoundary(t *testing.T) {
	const limit = 4
	dir := t.TempDir()
	tr := newTestTracker(t, dir, limit)

	for count := 0; count <= 2*limit; count++ {
		writeUsageFile(t, dir, record{
			Date:        today(),
			Count:       count,
			Conversions: eventsForToday(count),
		})
		assert.Equal(t, count < limit, tr.CanConvert(), "count=%d", count)
	}
}

func TestDayRolloverResets(t *testing.T) {
	dir := t.TempDir()
	tr := newTestTracker(t, dir, 10)

	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	writeUsageFile(t, dir, record{
		Date:        yesterday,
		Count:       7,
		Conversions: eventsForToday(7),
	})

	assert.Equal(t, 0, tr.CurrentCount())
	assert.Empty(t, tr.ConversionHistory())
	assert.True(t, tr.CanConvert())
}

func TestCorruptFileYieldsFreshRecord(t *testing.T) {
	dir := t.TempDir()
	tr := newTestTracker(t, dir, 10)

	path := filepath.Join(dir, usageFilename)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Equal(t, 0, tr.CurrentCount())
	assert.True(t, tr.CanConvert())

	// The next increment starts over from the fresh record.
	tr.IncrementUsage("doc.pdf")
	assert.Equal(t, 1, tr.CurrentCount())
}

func TestRemainingNeverNegative(t *testing.T) {
	const limit = 3
	dir := t.TempDir()
	tr := newTestTracker(t, dir, limit)

	writeUsageFile(t, dir, record{
		Date:        today(),
		Count:       limit + 4,
		Conversions: eventsForToday(limit + 4),
	})

	assert.Equal(t, 0, tr.Remaining())
	assert.False(t, tr.CanConvert())
}

func TestCountDerivedFromHistory(t *testing.T) {
	dir := t.TempDir()
	tr := newTestTracker(t, dir, 10)

	// A hand-edited file where count and history diverge: the history wins.
	writeUsageFile(t, dir, record{
		Date:        today(),
		Count:       7,
		Conversions: eventsForToday(2),
	})

	assert.Equal(t, 2, tr.CurrentCount())
	assert.Equal(t, 2, tr.UsageSummary().Count)
}

func TestQuotaExhaustionScenario(t *testing.T) {
	const limit = 100
	dir := t.TempDir()
	tr := newTestTracker(t, dir, limit)

	for i := 0; i < limit-1; i++ {
		tr.IncrementUsage("")
	}
	assert.True(t, tr.CanConvert())
	assert.Equal(t, 1, tr.Remaining())

	tr.IncrementUsage("")
	assert.False(t, tr.CanConvert())
	assert.Equal(t, 0, tr.Remaining())
}

func TestUsageSummary(t *testing.T) {
	const limit = 4
	dir := t.TempDir()
	tr := newTestTracker(t, dir, limit)

	tr.IncrementUsage("report.pdf")

	s := tr.UsageSummary()
	assert.Equal(t, today(), s.Date)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, limit, s.Limit)
	assert.Equal(t, limit-1, s.Remaining)
	assert.InDelta(t, 25.0, s.PercentageUsed, 1e-9)
}

func TestPersistenceAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := newTestTracker(t, dir, 10)
	first.IncrementUsage("a.pdf")
	first.IncrementUsage("b.pdf")

	second := newTestTracker(t, dir, 10)
	assert.Equal(t, 2, second.CurrentCount())

	// Writes from one instance are visible to the other on the next reload.
	second.IncrementUsage("c.pdf")
	assert.Equal(t, 3, first.CurrentCount())
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	tr := newTestTracker(t, dir, 10)

	tr.IncrementUsage("a.pdf")
	tr.IncrementUsage("b.pdf")
	tr.Reset()

	assert.Equal(t, 0, tr.CurrentCount())
	assert.Empty(t, tr.ConversionHistory())

	// The reset is persisted, not just in-memory.
	assert.Equal(t, 0, newTestTracker(t, dir, 10).CurrentCount())
}

func TestFilenameRecording(t *testing.T) {
	dir := t.TempDir()
	tr := newTestTracker(t, dir, 10)

	tr.IncrementUsage("thesis.pdf")
	tr.IncrementUsage("")

	events := tr.ConversionHistory()
	require.Len(t, events, 2)
	require.NotNil(t, events[0].Filename)
	assert.Equal(t, "thesis.pdf", *events[0].Filename)
	assert.Nil(t, events[1].Filename, "missing filename stays null")

	// The on-disk document keeps the documented shape, null included.
	data, err := os.ReadFile(filepath.Join(dir, usageFilename))
	require.NoError(t, err)
	var doc struct {
		Date        string `json:"date"`
		Count       int    `json:"count"`
		Conversions []struct {
			Timestamp string  `json:"timestamp"`
			Filename  *string `json:"filename"`
		} `json:"conversions"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, today(), doc.Date)
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Conversions, 2)
	assert.Nil(t, doc.Conversions[1].Filename)

	_, err = time.Parse(time.RFC3339, doc.Conversions[0].Timestamp)
	assert.NoError(t, err, "timestamps are written as RFC 3339")
}

func TestDefaultDailyLimit(t *testing.T) {
	tr := newTestTracker(t, t.TempDir(), 0)
	assert.Equal(t, DefaultDailyLimit, tr.DailyLimit())
}

func TestMissingStateDirIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	tr := newTestTracker(t, dir, 10)

	tr.IncrementUsage("doc.pdf")

	_, err := os.Stat(filepath.Join(dir, usageFilename))
	assert.NoError(t, err)
}
