package score

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/nightcorridor/internal/logger"
)

const submitTimeout = 5 * time.Second

// Notice is a non-fatal message for the display layer
type Notice struct {
	Text string
	Err  error
}

// Async sends submissions from a background worker. Submit never blocks;
// outcomes come back as notices.
type Async struct {
	sub     Submitter
	jobs    chan Submission
	notices chan Notice
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsync starts the worker. queue bounds the pending submissions.
func NewAsync(sub Submitter, queue int) *Async {
	a := &Async{
		sub:     sub,
		jobs:    make(chan Submission, max(1, queue)),
		notices: make(chan Notice, max(1, queue)),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

// Submit queues a submission. It returns false, with a notice, when the
// queue is full or the worker has been closed.
func (a *Async) Submit(s Submission) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return false
	}
	select {
	case a.jobs <- s:
		return true
	default:
		a.notify(Notice{Text: "Leaderboard busy, score not sent", Err: errors.New("submission queue full")})
		return false
	}
}

// Poll returns the next notice without waiting
func (a *Async) Poll() (Notice, bool) {
	select {
	case n := <-a.notices:
		return n, true
	default:
		return Notice{}, false
	}
}

// Close stops accepting submissions and waits for queued ones to finish
func (a *Async) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.jobs)
	a.mu.Unlock()
	a.wg.Wait()
}

func (a *Async) run() {
	defer a.wg.Done()
	for s := range a.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		err := a.sub.Submit(ctx, s)
		cancel()

		log := logger.Log.WithFields(logrus.Fields{
			"run":   s.RunID,
			"score": s.Score,
		})
		if err != nil {
			log.WithError(err).Warn("Score submission failed")
		} else {
			log.Info("Score submitted")
		}
		a.notify(noticeFor(err))
	}
}

// notify drops the notice when nobody is reading
func (a *Async) notify(n Notice) {
	select {
	case a.notices <- n:
	default:
	}
}

func noticeFor(err error) Notice {
	switch {
	case err == nil:
		return Notice{Text: "Score recorded"}
	case errors.Is(err, ErrRateLimited):
		return Notice{Text: "Too many submissions, try again shortly", Err: err}
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidSubmission):
		return Notice{Text: "Score rejected: " + err.Error(), Err: err}
	default:
		return Notice{Text: "Leaderboard unavailable", Err: err}
	}
}
