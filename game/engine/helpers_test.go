package engine

import (
	"sync"
	"testing"
	"time"
)

// corridorLayout is a 6x8 maze with start (0,1) and goal (5,4) where
// DOWN x5 then FORWARD x3 reaches the goal.
var corridorLayout = []string{
	"#S######",
	"#.######",
	"#.######",
	"#.######",
	"#.######",
	"#...G###",
}

func fastConfig(layout []string) *MazeConfig {
	return &MazeConfig{
		Name:           "Fast Maze",
		Description:    "Short timings for tests",
		Layout:         layout,
		CellSize:       DefaultCellSize,
		MoveDurationMs: 2,
		StepDelayMs:    2,
	}
}

func fastRenderer() *TweenRenderer {
	return NewTweenRenderer(0, 0, 1000)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *eventRecorder) ofType(t EventType) []Event {
	var out []Event
	for _, e := range r.all() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *eventRecorder) types() []EventType {
	var out []EventType
	for _, e := range r.all() {
		out = append(out, e.Type)
	}
	return out
}

// gatedRenderer holds every animation until release is closed
type gatedRenderer struct {
	mu        sync.Mutex
	x, y      float64
	animation string
	started   chan struct{}
	release   chan struct{}
	animating int
	maxActive int
}

func newGatedRenderer() *gatedRenderer {
	return &gatedRenderer{
		animation: AnimIdle,
		started:   make(chan struct{}, 16),
		release:   make(chan struct{}),
	}
}

func (r *gatedRenderer) PlayAnimation(name string) {
	r.mu.Lock()
	r.animation = name
	r.mu.Unlock()
}

func (r *gatedRenderer) Animation() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.animation
}

func (r *gatedRenderer) AnimateTo(x, y float64, d time.Duration) {
	r.mu.Lock()
	r.animating++
	if r.animating > r.maxActive {
		r.maxActive = r.animating
	}
	r.mu.Unlock()

	r.started <- struct{}{}
	<-r.release

	r.mu.Lock()
	r.x, r.y = x, y
	r.animating--
	r.mu.Unlock()
}

func (r *gatedRenderer) CurrentPosition() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y
}

func (r *gatedRenderer) Place(x, y float64) {
	r.mu.Lock()
	r.x, r.y = x, y
	r.mu.Unlock()
}

// waitFor polls cond until it holds or a second has passed
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
