package score

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/logger"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNewSubmissionCleansAndCaps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		score    int
		wantName string
		wantScr  int
		wantErr  error
	}{
		{"plain", "Ada", 120, "Ada", 120, nil},
		{"trimmed", "   Ada  ", 5, "Ada", 5, nil},
		{"truncated", "Abcdefghijklmnopq", 5, "Abcdefghijklmn", 5, nil},
		{"unicode counted in runes", "ÅåÄäÖöÅåÄäÖöÅåÄä", 5, "ÅåÄäÖöÅåÄäÖöÅå", 5, nil},
		{"control chars dropped", "A\x00d\ta", 5, "Ada", 5, nil},
		{"score capped", "Ada", 5_000_000, "Ada", 999999, nil},
		{"negative score", "Ada", -4, "Ada", 0, nil},
		{"empty", "   ", 5, "", 0, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSubmission("run", "player", tt.input, tt.score, 999999, "exit", "escaped", epoch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name)
			assert.LessOrEqual(t, len([]rune(s.Name)), MaxNameLen)
			assert.Equal(t, tt.wantScr, s.Score)
		})
	}
}

func TestNewSubmissionFillsRunID(t *testing.T) {
	s, err := NewSubmission("", "player", "Ada", 1, 0, "survive", "fallen", epoch)
	require.NoError(t, err)
	assert.Len(t, s.RunID, 36)

	_, err = NewSubmission("run", "", "Ada", 1, 0, "survive", "fallen", epoch)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreTopAndRateLimit(t *testing.T) {
	store := openStore(t)
	now := epoch
	store.now = func() time.Time { return now }
	ctx := context.Background()

	submit := func(run, player string, score int) error {
		s, err := NewSubmission(run, player, "p-"+player, score, 999999, "exit", "escaped", now)
		require.NoError(t, err)
		return store.Submit(ctx, s)
	}

	require.NoError(t, submit("r1", "alice", 300))
	require.NoError(t, submit("r2", "bob", 900))
	assert.ErrorIs(t, submit("r3", "alice", 1200), ErrRateLimited)

	now = now.Add(DefaultMinInterval)
	require.NoError(t, submit("r3", "alice", 1200))
	require.NoError(t, submit("r4", "carol", 900))

	top, err := store.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "r3", top[0].RunID)
	assert.Equal(t, "r2", top[1].RunID, "ties keep the older entry first")
	assert.Equal(t, "r4", top[2].RunID)
	assert.Equal(t, "p-alice", top[0].Name)
	assert.Equal(t, now.UnixMilli(), top[0].Timestamp.UnixMilli())

	err = submit("r3", "dave", 1)
	assert.Error(t, err, "run IDs are unique")
}

func TestSQLiteStoreRejectsInvalid(t *testing.T) {
	store := openStore(t)
	err := store.Submit(context.Background(), Submission{RunID: "r", PlayerID: "p", Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidName)
	err = store.Submit(context.Background(), Submission{PlayerID: "p", Name: "Ada"})
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

// recordingSubmitter fails with err and records what it was given
type recordingSubmitter struct {
	mu  sync.Mutex
	got []Submission
	err error
	block chan struct{}
}

func (r *recordingSubmitter) Submit(_ context.Context, s Submission) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
	return r.err
}

func waitNotice(t *testing.T, a *Async) Notice {
	t.Helper()
	var n Notice
	require.Eventually(t, func() bool {
		var ok bool
		n, ok = a.Poll()
		return ok
	}, time.Second, 5*time.Millisecond)
	return n
}

func TestAsyncReportsOutcomes(t *testing.T) {
	logger.Discard()
	tests := []struct {
		name   string
		err    error
		failed bool
	}{
		{"ok", nil, false},
		{"rate limited", ErrRateLimited, true},
		{"storage down", errors.New("disk full"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingSubmitter{err: tt.err}
			a := NewAsync(rec, 4)
			defer a.Close()

			assert.True(t, a.Submit(Submission{RunID: "r", Score: 10}))
			n := waitNotice(t, a)
			assert.NotEmpty(t, n.Text)
			assert.Equal(t, tt.failed, n.Err != nil)
			if tt.err != nil {
				assert.ErrorIs(t, n.Err, tt.err)
			}
		})
	}
}

func TestAsyncNeverBlocks(t *testing.T) {
	logger.Discard()
	rec := &recordingSubmitter{block: make(chan struct{})}
	a := NewAsync(rec, 1)

	// The worker holds one, the queue holds one, the third is turned away
	assert.True(t, a.Submit(Submission{RunID: "1"}))
	require.Eventually(t, func() bool { return len(a.jobs) == 0 }, time.Second, time.Millisecond)
	assert.True(t, a.Submit(Submission{RunID: "2"}))
	assert.False(t, a.Submit(Submission{RunID: "3"}))

	n := waitNotice(t, a)
	assert.Error(t, n.Err)

	close(rec.block)
	a.Close()
	assert.Len(t, rec.got, 2)
	assert.False(t, a.Submit(Submission{RunID: "4"}), "closed workers accept nothing")
}
