// Package playback owns the timed phrase-advance state machine.
package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/yomitori/yomitori/internal/fsm"
	"github.com/yomitori/yomitori/internal/phrase"
)

// Interval bounds in milliseconds; out-of-range values are clamped.
const (
	MinIntervalMS = 100
	MaxIntervalMS = 1000
)

// Snapshot is a consistent read of the controller state for presentation.
type Snapshot struct {
	State    fsm.State
	Index    int
	Total    int
	Phrase   string
	Progress float64
	Interval int
}

// Controller advances through one phrase sequence at a configured cadence.
// All mutation goes through its methods; the tick goroutine is bound to a
// generation and fully joined before any reset re-seats the sequence, so a
// late tick can never touch a newer sequence's index.
type Controller struct {
	logger    *slog.Logger
	onAdvance func(Snapshot)

	mu       sync.Mutex
	state    fsm.State
	seq      phrase.Sequence
	index    int
	interval time.Duration
	gen      uint64
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewController creates an empty controller with the given interval in
// milliseconds, clamped to the supported range.
func NewController(logger *slog.Logger, intervalMS int) *Controller {
	return &Controller{
		logger:   logger,
		state:    fsm.StateEmpty,
		interval: time.Duration(clampInterval(intervalMS)) * time.Millisecond,
	}
}

// OnAdvance registers a callback invoked after each automatic advance and
// on read-through completion. It runs outside the controller lock.
func (c *Controller) OnAdvance(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAdvance = fn
}

// Reset replaces the sequence wholesale, cancelling any pending ticks
// first. A non-empty sequence lands in idle at index 0, an empty one in
// the empty state.
func (c *Controller) Reset(seq phrase.Sequence) {
	c.halt()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq = seq
	c.index = 0
	if len(seq) == 0 {
		c.state = fsm.StateEmpty
		return
	}
	c.state = fsm.StateIdle
}

// Start begins a read-through from the first phrase. No-op when the
// sequence is empty or playback is already running.
func (c *Controller) Start() bool {
	c.mu.Lock()
	if c.state != fsm.StateIdle {
		c.mu.Unlock()
		return false
	}

	next, err := fsm.Transition(c.state, fsm.EventStart)
	if err != nil {
		c.mu.Unlock()
		return false
	}
	c.state = next
	// A fresh read-through always begins at the top, even after manual
	// stepping.
	c.index = 0

	c.gen++
	gen := c.gen
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	total := len(c.seq)
	interval := c.interval
	go c.run(gen, c.stopCh, c.doneCh)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("playback started", "phrases", total, "interval_ms", interval.Milliseconds())
	}
	return true
}

// Stop halts automatic advance, keeping the current index. Reports whether
// a running read-through was actually stopped; a read-through that finishes
// on its own while Stop is underway counts as not stopped.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	if c.state != fsm.StateRunning {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	c.halt()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != fsm.StateRunning {
		return false
	}
	next, err := fsm.Transition(c.state, fsm.EventStop)
	if err != nil {
		return false
	}
	c.state = next
	return true
}

// StepForward moves one phrase ahead. Only permitted while idle; clamps at
// the last phrase.
func (c *Controller) StepForward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != fsm.StateIdle || c.index >= len(c.seq)-1 {
		return false
	}
	c.index++
	return true
}

// StepBack moves one phrase back. Only permitted while idle; clamps at the
// first phrase.
func (c *Controller) StepBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != fsm.StateIdle || c.index <= 0 {
		return false
	}
	c.index--
	return true
}

// SetInterval updates the advance cadence, clamped to the supported range,
// and returns the applied value. A running read-through picks it up on the
// next tick.
func (c *Controller) SetInterval(ms int) int {
	clamped := clampInterval(ms)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = time.Duration(clamped) * time.Millisecond
	return clamped
}

// Snapshot returns a consistent view of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:    c.state,
		Index:    c.index,
		Total:    len(c.seq),
		Interval: int(c.interval.Milliseconds()),
	}
	if len(c.seq) > 0 {
		snap.Phrase = c.seq[c.index].Text
		snap.Progress = float64(c.index+1) / float64(len(c.seq))
	}
	return snap
}

// Close stops any pending ticks; the controller stays usable afterwards.
func (c *Controller) Close() {
	c.halt()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == fsm.StateRunning {
		c.state = fsm.StateIdle
	}
}

// halt invalidates the current generation and joins the tick goroutine so
// no further ticks are deliverable once it returns.
func (c *Controller) halt() {
	c.mu.Lock()
	c.gen++
	stopCh := c.stopCh
	doneCh := c.doneCh
	c.stopCh = nil
	c.doneCh = nil
	c.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}
}

// run delivers ticks for one generation until stopped or the read-through
// completes. The interval is re-read every cycle so SetInterval applies
// from the next tick.
func (c *Controller) run(gen uint64, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	for {
		c.mu.Lock()
		interval := c.interval
		c.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}

		if finished := c.advance(gen); finished {
			return
		}
	}
}

// advance applies one tick for gen. It reports true when the goroutine
// should exit, either because the generation is stale or the read-through
// completed and rewound.
func (c *Controller) advance(gen uint64) bool {
	c.mu.Lock()
	if gen != c.gen || c.state != fsm.StateRunning {
		c.mu.Unlock()
		return true
	}

	finished := false
	c.index++
	if c.index >= len(c.seq) {
		// Read-through complete: rewind instead of parking on the last
		// phrase.
		c.index = 0
		next, err := fsm.Transition(c.state, fsm.EventFinish)
		if err == nil {
			c.state = next
		}
		finished = true
	}
	snap := c.snapshotLocked()
	notify := c.onAdvance
	c.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
	return finished
}

func clampInterval(ms int) int {
	if ms < MinIntervalMS {
		return MinIntervalMS
	}
	if ms > MaxIntervalMS {
		return MaxIntervalMS
	}
	return ms
}
