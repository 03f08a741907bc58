package score

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds each background persistence call.
const DefaultTimeout = 5 * time.Second

// Recorder runs Service calls off the frame loop. Reads hand back a channel
// the loop polls without blocking; writes are fire-and-forget. Failures are
// logged and otherwise dropped.
type Recorder struct {
	svc     Service
	log     *log.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRecorder wraps svc. A nil logger uses the charmbracelet default.
func NewRecorder(svc Service, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{svc: svc, log: logger, timeout: DefaultTimeout}
}

// Fetch starts reading the high score. The returned channel receives one
// value and is closed; on error it is closed without a value. A recorder
// without a service returns nil, which a select never receives from.
func (r *Recorder) Fetch(userID, gameKey string) <-chan int {
	if r == nil || r.svc == nil {
		return nil
	}
	ch := make(chan int, 1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(ch)
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		v, err := r.svc.HighScore(ctx, userID, gameKey)
		if err != nil {
			r.log.Warn("high score read failed", "game", gameKey, "user", userID, "err", err)
			return
		}
		ch <- v
	}()
	return ch
}

// Save submits a final score in the background.
func (r *Recorder) Save(userID, gameKey string, score int) {
	if r == nil || r.svc == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.svc.SaveScore(ctx, userID, gameKey, score); err != nil {
			r.log.Warn("score save failed", "game", gameKey, "user", userID, "score", score, "err", err)
			return
		}
		r.log.Debug("score saved", "game", gameKey, "user", userID, "score", score)
	}()
}

// Wait blocks until every background call has finished.
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}
