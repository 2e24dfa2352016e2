package runstore

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, retention time.Duration) *Store {
	store, err := New(t.TempDir(), retention)
	require.NoError(t, err)
	return store
}

func TestCreateAndOpen(t *testing.T) {
	store := newTestStore(t, time.Hour)

	run, err := store.Create()
	require.NoError(t, err)
	assert.Regexp(t, `^\d{8}_\d{6}_[0-9a-f]{8}$`, run.ID)
	assert.DirExists(t, run.Dir)

	opened, err := store.Open(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, opened)
}

func TestCreateIDsAreUnique(t *testing.T) {
	store := newTestStore(t, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		run, err := store.Create()
		require.NoError(t, err)
		assert.False(t, seen[run.ID], "duplicate run id %s", run.ID)
		seen[run.ID] = true
	}
}

func TestOpenRejectsUnknownAndMalformedIDs(t *testing.T) {
	store := newTestStore(t, time.Hour)

	for _, id := range []string{
		"20250828_120000_deadbeef", // well-formed but never created
		"../../etc/passwd",
		"20250828_120000_DEADBEEF",
		"",
		"latest",
	} {
		_, err := store.Open(id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
}

func TestSweepDeletesOnlyExpiredRuns(t *testing.T) {
	store := newTestStore(t, time.Hour)

	old, err := store.Create()
	require.NoError(t, err)
	fresh, err := store.Create()
	require.NoError(t, err)

	// Back-date the old run past the retention window.
	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old.Dir, stale, stale))

	deleted, err := store.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.Open(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Open(fresh.ID)
	assert.NoError(t, err)
}

func TestSweepLeavesTemplateAlone(t *testing.T) {
	store := newTestStore(t, time.Nanosecond)

	_, err := store.Template()
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = store.Sweep()
	require.NoError(t, err)

	data, err := store.Template()
	require.NoError(t, err)
	assert.Equal(t, TemplateCSV, string(data))
}

func TestTemplateIsStableAcrossCalls(t *testing.T) {
	store := newTestStore(t, time.Hour)

	first, err := store.Template()
	require.NoError(t, err)
	second, err := store.Template()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, TemplateCSV, string(first))
}

func TestSnapshotListsRuns(t *testing.T) {
	store := newTestStore(t, time.Hour)

	run, err := store.Create()
	require.NoError(t, err)

	infos := store.Snapshot()
	require.Len(t, infos, 1)
	assert.Equal(t, run.ID, infos[0].ID)
	assert.GreaterOrEqual(t, infos[0].Age, time.Duration(0))
}

func TestRunArtifactPaths(t *testing.T) {
	store := newTestStore(t, time.Hour)

	run, err := store.Create()
	require.NoError(t, err)

	assert.Contains(t, run.InputPath(), run.ID)
	assert.Contains(t, run.ReportPath(), "report.pdf")
	assert.Contains(t, run.WorkbookPath(), "results.xlsx")
}
