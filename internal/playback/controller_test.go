package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yomitori/yomitori/internal/fsm"
	"github.com/yomitori/yomitori/internal/phrase"
)

func threePhrases() phrase.Sequence {
	return phrase.FromTexts([]string{"犬が", "速く", "走る。"})
}

func TestResetSeatsSequence(t *testing.T) {
	c := NewController(nil, 300)
	require.Equal(t, fsm.StateEmpty, c.Snapshot().State)

	c.Reset(threePhrases())
	snap := c.Snapshot()
	require.Equal(t, fsm.StateIdle, snap.State)
	require.Equal(t, 0, snap.Index)
	require.Equal(t, 3, snap.Total)
	require.Equal(t, "犬が", snap.Phrase)

	c.Reset(phrase.Sequence{})
	snap = c.Snapshot()
	require.Equal(t, fsm.StateEmpty, snap.State)
	require.Equal(t, 0, snap.Index)
	require.Zero(t, snap.Progress)
	require.Empty(t, snap.Phrase)
}

func TestTransportNoOpsOnEmptySequence(t *testing.T) {
	c := NewController(nil, 300)
	require.False(t, c.Start())
	require.False(t, c.Stop())
	require.False(t, c.StepForward())
	require.False(t, c.StepBack())
	require.Equal(t, fsm.StateEmpty, c.Snapshot().State)
}

func TestTickCycleRewindsToIdle(t *testing.T) {
	c := NewController(nil, 300)
	c.Reset(threePhrases())

	// Drive ticks directly against the live generation, the same call the
	// timer goroutine makes.
	c.mu.Lock()
	c.state = fsm.StateRunning
	gen := c.gen
	c.mu.Unlock()

	require.False(t, c.advance(gen))
	require.Equal(t, 1, c.Snapshot().Index)
	require.Equal(t, fsm.StateRunning, c.Snapshot().State)

	require.False(t, c.advance(gen))
	require.Equal(t, 2, c.Snapshot().Index)
	require.InDelta(t, 1.0, c.Snapshot().Progress, 1e-9)

	require.True(t, c.advance(gen))
	snap := c.Snapshot()
	require.Equal(t, fsm.StateIdle, snap.State)
	require.Equal(t, 0, snap.Index)
}

func TestStaleGenerationTickIsDiscarded(t *testing.T) {
	c := NewController(nil, 300)
	c.Reset(threePhrases())

	c.mu.Lock()
	c.state = fsm.StateRunning
	stale := c.gen
	c.mu.Unlock()

	c.Reset(threePhrases())

	require.True(t, c.advance(stale))
	require.Equal(t, 0, c.Snapshot().Index)
	require.Equal(t, fsm.StateIdle, c.Snapshot().State)
}

func TestStartRewindsAndRunsToCompletion(t *testing.T) {
	c := NewController(nil, 100)
	c.Reset(threePhrases())

	var mu sync.Mutex
	var indexes []int
	c.OnAdvance(func(snap Snapshot) {
		mu.Lock()
		indexes = append(indexes, snap.Index)
		mu.Unlock()
	})

	require.True(t, c.StepForward())
	require.Equal(t, 1, c.Snapshot().Index)

	require.True(t, c.Start())
	require.Equal(t, fsm.StateRunning, c.Snapshot().State)
	require.False(t, c.Start()) // idempotent while running

	require.Eventually(t, func() bool {
		return c.Snapshot().State == fsm.StateIdle
	}, 3*time.Second, 10*time.Millisecond)

	snap := c.Snapshot()
	require.Equal(t, 0, snap.Index)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{1, 2, 0}, indexes)
}

func TestStopHaltsTicks(t *testing.T) {
	c := NewController(nil, 100)
	c.Reset(phrase.FromTexts([]string{"一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}))

	require.True(t, c.Start())
	require.True(t, c.Stop())
	require.False(t, c.Stop())

	snap := c.Snapshot()
	require.Equal(t, fsm.StateIdle, snap.State)

	// No stray tick may mutate the index after Stop returned.
	index := snap.Index
	time.Sleep(250 * time.Millisecond)
	require.Equal(t, index, c.Snapshot().Index)
}

func TestStopReportsFalseWhenReadThroughAlreadyFinished(t *testing.T) {
	c := NewController(nil, 300)
	c.Reset(threePhrases())

	// Model a read-through whose final tick completes while Stop is joining
	// the timer goroutine: the state flips to Idle after stopCh closes but
	// before doneCh does.
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	c.mu.Lock()
	c.state = fsm.StateRunning
	c.index = 2
	c.stopCh = stopCh
	c.doneCh = doneCh
	c.mu.Unlock()

	go func() {
		<-stopCh
		c.mu.Lock()
		c.state = fsm.StateIdle
		c.index = 0
		c.mu.Unlock()
		close(doneCh)
	}()

	require.False(t, c.Stop())
	snap := c.Snapshot()
	require.Equal(t, fsm.StateIdle, snap.State)
	require.Equal(t, 0, snap.Index)
}

func TestResetCancelsPendingTicks(t *testing.T) {
	c := NewController(nil, 1000)
	c.Reset(threePhrases())
	require.True(t, c.Start())

	replacement := phrase.FromTexts([]string{"新しい", "文章"})
	c.Reset(replacement)

	snap := c.Snapshot()
	require.Equal(t, fsm.StateIdle, snap.State)
	require.Equal(t, 0, snap.Index)
	require.Equal(t, 2, snap.Total)

	time.Sleep(150 * time.Millisecond)
	require.Equal(t, 0, c.Snapshot().Index)
}

func TestStepClampsAtBoundaries(t *testing.T) {
	c := NewController(nil, 300)
	c.Reset(threePhrases())

	require.False(t, c.StepBack())
	require.True(t, c.StepForward())
	require.True(t, c.StepForward())
	require.Equal(t, 2, c.Snapshot().Index)
	require.False(t, c.StepForward())
	require.Equal(t, 2, c.Snapshot().Index)
}

func TestStepDisabledWhileRunning(t *testing.T) {
	c := NewController(nil, 1000)
	c.Reset(threePhrases())
	require.True(t, c.Start())
	defer c.Close()

	require.False(t, c.StepForward())
	require.False(t, c.StepBack())
}

func TestSetIntervalClamps(t *testing.T) {
	c := NewController(nil, 400)
	require.Equal(t, 400, c.Snapshot().Interval)

	require.Equal(t, MinIntervalMS, c.SetInterval(10))
	require.Equal(t, MaxIntervalMS, c.SetInterval(90000))
	require.Equal(t, 250, c.SetInterval(250))
	require.Equal(t, 250, c.Snapshot().Interval)

	require.Equal(t, MinIntervalMS, NewController(nil, 5).Snapshot().Interval)
	require.Equal(t, MaxIntervalMS, NewController(nil, 100000).Snapshot().Interval)
}

func TestProgressFraction(t *testing.T) {
	c := NewController(nil, 300)
	c.Reset(threePhrases())

	require.InDelta(t, 1.0/3.0, c.Snapshot().Progress, 1e-9)
	c.StepForward()
	require.InDelta(t, 2.0/3.0, c.Snapshot().Progress, 1e-9)
}
