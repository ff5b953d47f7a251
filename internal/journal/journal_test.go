// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/adobe-helper/pkg/types"
)

func openTestJournal(t *testing.T, dir string) *Journal {
	t.Helper()
	j, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func event(ts time.Time, filename string) types.ConversionEvent {
	ev := types.ConversionEvent{Timestamp: ts}
	if filename != "" {
		ev.Filename = &filename
	}
	return ev
}

func TestRecordAndList(t *testing.T) {
	dir := t.TempDir()
	j := openTestJournal(t, dir)

	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	ids := make(map[string]struct{})
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		id, err := j.Record(event(base.Add(time.Duration(i)*time.Minute), name))
		require.NoError(t, err)
		ids[id] = struct{}{}
	}
	assert.Len(t, ids, 3, "every entry gets a distinct ID")

	entries, err := j.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "c.pdf", entries[0].Filename)
	assert.Equal(t, "a.pdf", entries[2].Filename)
	assert.Equal(t, "2026-08-24", entries[0].Day)
	assert.True(t, entries[0].Timestamp.Equal(base.Add(2*time.Minute)))

	limited, err := j.List(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "c.pdf", limited[0].Filename)
}

func TestZeroTimestampGetsCurrentTime(t *testing.T) {
	j := openTestJournal(t, t.TempDir())

	_, err := j.Record(event(time.Time{}, "now.pdf"))
	require.NoError(t, err)

	entries, err := j.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.WithinDuration(t, time.Now(), entries[0].Timestamp, time.Minute)
}

func TestCountByDay(t *testing.T) {
	j := openTestJournal(t, t.TempDir())

	days := []time.Time{
		time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 23, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
	for _, ts := range days {
		_, err := j.Record(event(ts, ""))
		require.NoError(t, err)
	}

	counts, err := j.CountByDay()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2026-08-23": 2, "2026-08-24": 1}, counts)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	j, err := Open(dir)
	require.NoError(t, err)
	_, err = j.Record(event(time.Now(), "kept.pdf"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	reopened := openTestJournal(t, dir)
	entries, err := reopened.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept.pdf", entries[0].Filename)
}
