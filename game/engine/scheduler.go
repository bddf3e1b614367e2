package engine

import (
	"context"
	"sync"
	"time"
)

// Mover executes a single move and reports whether it was accepted
type Mover interface {
	TryMove(dir Direction) bool
}

// StepFunc observes every dispatched action of a run
type StepFunc func(index int, action Action, accepted bool)

// Scheduler steps through an ActionScript one action at a time, waiting a
// fixed delay after each action completes. Only that delay is cancellable:
// a motion that has started always finishes before the loop notices a stop.
// The script is dropped when it is exhausted or stopped.
type Scheduler struct {
	mover      Mover
	delay      time.Duration
	onStep     StepFunc
	onComplete func(actions int)

	mu       sync.Mutex
	state    ExecutionState
	script   ActionScript
	cursor   int
	gen      uint64
	cancel   context.CancelFunc
	loopDone chan struct{}
}

// NewScheduler creates an idle scheduler. onStep and onComplete may be nil;
// onComplete runs once each time a script is exhausted and receives its
// length.
func NewScheduler(mover Mover, delay time.Duration, onStep StepFunc, onComplete func(actions int)) *Scheduler {
	return &Scheduler{
		mover:      mover,
		delay:      delay,
		onStep:     onStep,
		onComplete: onComplete,
		state:      StateIdle,
	}
}

// Run starts executing script. It is a no-op returning false while a run is
// already in progress.
func (s *Scheduler) Run(script ActionScript) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return false
	}

	s.gen++
	s.state = StateRunning
	s.script = script
	s.cursor = 0

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	done := make(chan struct{})
	s.loopDone = done

	go s.loop(ctx, s.gen, script, done)
	return true
}

func (s *Scheduler) loop(ctx context.Context, gen uint64, script ActionScript, done chan struct{}) {
	defer close(done)

	for {
		s.mu.Lock()
		if s.gen != gen || ctx.Err() != nil {
			s.mu.Unlock()
			return
		}
		if s.cursor >= script.Len() {
			s.state = StateIdle
			s.cancel = nil
			s.script = ActionScript{}
			s.cursor = 0
			s.mu.Unlock()
			if s.onComplete != nil {
				s.onComplete(script.Len())
			}
			return
		}
		index := s.cursor
		s.mu.Unlock()

		action := script.At(index)
		accepted := true
		if action.Kind == ActionMove {
			accepted = s.mover.TryMove(action.Dir)
		}

		// Stopped while the motion was playing
		if ctx.Err() != nil {
			return
		}
		if s.onStep != nil {
			s.onStep(index, action, accepted)
		}

		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.mu.Lock()
		if s.gen == gen {
			s.cursor++
		}
		s.mu.Unlock()
	}
}

// Stop cancels the pending delay and returns to IDLE. No further actions of
// the current script run. It reports whether a run was in progress.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return false
	}
	s.state = StateIdle
	s.gen++
	s.script = ActionScript{}
	s.cursor = 0
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}

// Reset stops any run and waits for its loop to exit
func (s *Scheduler) Reset() {
	s.Stop()
	s.Wait()
}

// Wait blocks until the most recent run's loop has exited
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.loopDone
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// State returns the current execution state
func (s *Scheduler) State() ExecutionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the index of the action being executed, zero when idle
func (s *Scheduler) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Script returns the script of the current run, empty when idle
func (s *Scheduler) Script() ActionScript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script
}
