package engine

import (
	"sync"
	"time"
)

// Renderer is the handle the motion controller drives. AnimateTo blocks
// until the actor rests exactly on the target.
type Renderer interface {
	PlayAnimation(name string)
	AnimateTo(x, y float64, d time.Duration)
	CurrentPosition() (x, y float64)
	Place(x, y float64)
}

// TweenRenderer is a headless Renderer that linearly interpolates the actor
// position at a fixed frame rate.
type TweenRenderer struct {
	mu        sync.RWMutex
	x, y      float64
	animation string
	frame     time.Duration
}

// NewTweenRenderer creates a renderer resting at (x, y). A frameRate of zero
// or less uses DefaultFrameRate.
func NewTweenRenderer(x, y float64, frameRate int) *TweenRenderer {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &TweenRenderer{
		x:         x,
		y:         y,
		animation: AnimIdle,
		frame:     time.Second / time.Duration(frameRate),
	}
}

func (r *TweenRenderer) PlayAnimation(name string) {
	r.mu.Lock()
	r.animation = name
	r.mu.Unlock()
}

// Animation returns the animation currently playing
func (r *TweenRenderer) Animation() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.animation
}

func (r *TweenRenderer) CurrentPosition() (float64, float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.x, r.y
}

func (r *TweenRenderer) Place(x, y float64) {
	r.mu.Lock()
	r.x, r.y = x, y
	r.mu.Unlock()
}

func (r *TweenRenderer) AnimateTo(x, y float64, d time.Duration) {
	fromX, fromY := r.CurrentPosition()
	if d <= 0 {
		r.Place(x, y)
		return
	}

	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()

	begin := time.Now()
	for range ticker.C {
		t := float64(time.Since(begin)) / float64(d)
		if t >= 1 {
			break
		}
		r.Place(fromX+(x-fromX)*t, fromY+(y-fromY)*t)
	}
	r.Place(x, y)
}
