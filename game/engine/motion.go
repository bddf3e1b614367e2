package engine

import (
	"sync"
	"time"
)

// MotionController moves the actor one cell at a time. At most one motion
// is in flight; a request made while the actor is moving is rejected, never
// queued. The renderer's position is the single source of truth and only
// the controller writes it.
type MotionController struct {
	grid     *Grid
	renderer Renderer
	duration time.Duration
	onArrive func(x, y float64)

	mu     sync.Mutex
	moving bool
	done   chan struct{}
}

// NewMotionController places the actor at the start cell in the idle
// animation. onArrive runs after every completed motion and may be nil.
func NewMotionController(grid *Grid, renderer Renderer, duration time.Duration, onArrive func(x, y float64)) *MotionController {
	m := &MotionController{
		grid:     grid,
		renderer: renderer,
		duration: duration,
		onArrive: onArrive,
	}
	x, y := grid.ToWorld(grid.Start())
	renderer.Place(x, y)
	renderer.PlayAnimation(AnimIdle)
	return m
}

// TryMove moves the actor one cell in dir and blocks until the motion has
// finished. It returns false without moving when a motion is already in
// flight or the target cell is not walkable.
func (m *MotionController) TryMove(dir Direction) bool {
	dx, dy, ok := dir.Delta()
	if !ok {
		return false
	}

	m.mu.Lock()
	if m.moving {
		m.mu.Unlock()
		return false
	}
	x, y := m.renderer.CurrentPosition()
	cell := m.grid.CellSize()
	tx, ty := x+float64(dx)*cell, y+float64(dy)*cell
	target := m.grid.ToGrid(tx, ty)
	if !m.grid.IsWalkable(target.Row, target.Col) {
		m.mu.Unlock()
		return false
	}
	m.moving = true
	done := make(chan struct{})
	m.done = done
	m.mu.Unlock()

	m.renderer.PlayAnimation(AnimMoving)
	m.renderer.AnimateTo(tx, ty, m.duration)
	m.renderer.PlayAnimation(AnimIdle)

	m.mu.Lock()
	m.moving = false
	m.mu.Unlock()

	// Waiters wake only after the arrival hook has run
	if m.onArrive != nil {
		m.onArrive(tx, ty)
	}

	m.mu.Lock()
	if m.done == done {
		m.done = nil
	}
	m.mu.Unlock()
	close(done)
	return true
}

// WaitIdle blocks until no motion is in flight and the arrival hook of the
// last motion has returned
func (m *MotionController) WaitIdle() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// ReturnToStart waits for any in-flight motion and then places the actor
// at the centre of the start cell.
func (m *MotionController) ReturnToStart() {
	m.PlaceAt(m.grid.Start())
}

// PlaceAt waits for any in-flight motion and then places the actor at the
// centre of pos in the idle animation.
func (m *MotionController) PlaceAt(pos Position) {
	for {
		m.WaitIdle()
		m.mu.Lock()
		if !m.moving {
			break
		}
		m.mu.Unlock()
	}
	x, y := m.grid.ToWorld(pos)
	m.renderer.Place(x, y)
	m.renderer.PlayAnimation(AnimIdle)
	m.mu.Unlock()
}

// Moving reports whether a motion is in flight
func (m *MotionController) Moving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moving
}

// WorldPosition returns the actor's world coordinates
func (m *MotionController) WorldPosition() (x, y float64) {
	return m.renderer.CurrentPosition()
}

// Position returns the cell the actor's world position projects onto
func (m *MotionController) Position() Position {
	return m.grid.ToGrid(m.renderer.CurrentPosition())
}
