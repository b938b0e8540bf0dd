// Package score hands finished runs to the leaderboard. Submissions are
// validated here, persisted by a Submitter and sent from a background worker
// so the game loop never waits on storage.
package score

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// MaxNameLen is the longest display name the leaderboard accepts, in runes
const MaxNameLen = 14

var (
	// ErrInvalidName is returned for a display name that is empty after cleanup
	ErrInvalidName = errors.New("invalid display name")
	// ErrRateLimited is returned when a player submits again too soon
	ErrRateLimited = errors.New("submission rate limited")
	// ErrInvalidSubmission is returned for missing identifiers or tags
	ErrInvalidSubmission = errors.New("invalid submission")
)

// Submission is one leaderboard entry
type Submission struct {
	RunID     string
	PlayerID  string // Stable per install; the rate limit key
	Name      string
	Score     int
	Mission   string
	Result    string
	Timestamp time.Time
}

// Submitter persists submissions
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// NewSubmission builds a validated submission. The name is trimmed, stripped
// of control characters and cut to MaxNameLen runes; the score is clamped to
// [0, maxScore]. A missing run ID gets a fresh one.
func NewSubmission(runID, playerID, name string, score, maxScore int, mission, result string, now time.Time) (Submission, error) {
	clean := CleanName(name)
	if clean == "" {
		return Submission{}, ErrInvalidName
	}
	if playerID == "" || mission == "" || result == "" {
		return Submission{}, ErrInvalidSubmission
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	if maxScore > 0 && score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return Submission{
		RunID:     runID,
		PlayerID:  playerID,
		Name:      clean,
		Score:     score,
		Mission:   mission,
		Result:    result,
		Timestamp: now.UTC(),
	}, nil
}

// CleanName normalizes a display name
func CleanName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	runes := []rune(strings.TrimSpace(b.String()))
	if len(runes) > MaxNameLen {
		runes = runes[:MaxNameLen]
	}
	return strings.TrimSpace(string(runes))
}
