package component

import (
	"math"
	"time"
)

type TimerMode uint8

const (
	TimerModeOnce TimerMode = iota
	TimerModeRepeating
)

// Timer is a one-shot or repeating timer driven by tick deltas.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode

	finished            bool
	finishedCountInTick uint32
}

func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{duration: duration, mode: mode}
}

// Tick adds delta and records how often the timer fired.
func (t *Timer) Tick(delta time.Duration) *Timer {
	t.finishedCountInTick = 0
	if t.duration <= 0 || (t.finished && t.mode == TimerModeOnce) {
		return t
	}

	t.elapsed += delta
	if t.elapsed < t.duration {
		return t
	}

	if t.mode == TimerModeOnce {
		t.elapsed = t.duration
		t.finished = true
		t.finishedCountInTick = 1
		return t
	}

	t.finishedCountInTick = uint32(min(math.MaxUint32, int64(t.elapsed/t.duration)))
	t.elapsed %= t.duration
	return t
}

func (t *Timer) Duration() time.Duration {
	return t.duration
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Finished is only ever true for one-shot timers.
func (t *Timer) Finished() bool {
	return t.finished
}

func (t *Timer) JustFinished() bool {
	return t.finishedCountInTick > 0
}

// TimesFinishedThisTick counts repeats within the last Tick; a 1s timer
// ticked by 3.5s fires three times.
func (t *Timer) TimesFinishedThisTick() int {
	return int(t.finishedCountInTick)
}

func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.finishedCountInTick = 0
}
