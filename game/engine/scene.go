package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scene owns one maze and its collaborators: the grid, the goal evaluator,
// the motion controller and the scheduler. It turns their callbacks into
// Events for the UI layer.
//
// The event handler must not call Run, Stop or Reset on the same scene.
type Scene struct {
	config    *MazeConfig
	grid      *Grid
	goal      *GoalEvaluator
	renderer  Renderer
	motion    *MotionController
	scheduler *Scheduler
	handler   EventHandler

	// runMu serialises Run, Stop, Reset and manual moves
	runMu sync.Mutex

	mu      sync.Mutex
	solved  bool
	runID   string
	message string
}

// NewScene builds a scene for config. A nil renderer gets a headless
// TweenRenderer; a nil handler discards events.
func NewScene(config *MazeConfig, renderer Renderer, handler EventHandler) (*Scene, error) {
	if config == nil {
		return nil, fmt.Errorf("scene requires a maze config")
	}
	grid, err := NewGridFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("invalid maze %q: %w", config.Name, err)
	}
	if _, err := Solve(grid); err != nil {
		return nil, fmt.Errorf("invalid maze %q: %w", config.Name, err)
	}
	if renderer == nil {
		renderer = NewTweenRenderer(0, 0, DefaultFrameRate)
	}

	s := &Scene{
		config:   config,
		grid:     grid,
		goal:     NewGoalEvaluator(grid),
		renderer: renderer,
		handler:  handler,
	}
	s.motion = NewMotionController(grid, renderer, config.MoveDuration(), s.arrived)
	s.scheduler = NewScheduler(s.motion, config.StepDelay(), s.stepped, s.completed)

	return s, nil
}

// Config returns the level the scene was built from
func (s *Scene) Config() *MazeConfig { return s.config }

// Grid returns the scene's maze
func (s *Scene) Grid() *Grid { return s.grid }

// Compile compiles a block program without running it
func (s *Scene) Compile(program *Program) ActionScript {
	return Compile(program)
}

// Run compiles program and starts executing it. It returns the compiled
// script and false when a run is already in progress.
func (s *Scene) Run(program *Program) (ActionScript, bool) {
	script := Compile(program)
	return script, s.RunScript(script)
}

// RunScript starts executing an already compiled script
func (s *Scene) RunScript(script ActionScript) bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.scheduler.State() == StateRunning {
		return false
	}

	runID := uuid.NewString()
	s.mu.Lock()
	s.runID = runID
	s.solved = false
	s.mu.Unlock()

	s.emit(Event{
		Type:     EventRunStarted,
		RunID:    runID,
		Position: s.motion.Position(),
		Message:  s.config.Message(EventRunStarted),
	})

	return s.scheduler.Run(script)
}

// Stop halts the current run after any in-flight motion. It reports whether
// a run was in progress.
func (s *Scene) Stop() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	step := s.scheduler.Cursor()
	if !s.scheduler.Stop() {
		return false
	}
	s.emit(Event{
		Type:     EventStopped,
		RunID:    s.currentRunID(),
		Step:     step,
		Position: s.motion.Position(),
		Message:  s.config.Message(EventStopped),
	})
	return true
}

// Reset stops any run and returns the actor to the start cell. Calling it
// repeatedly leaves the scene in the same state.
func (s *Scene) Reset() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.scheduler.Reset()
	s.motion.ReturnToStart()

	s.mu.Lock()
	s.solved = false
	s.runID = ""
	s.mu.Unlock()

	s.emit(Event{
		Type:     EventReset,
		Position: s.grid.Start(),
		Message:  s.config.Message(EventReset),
	})
}

// Move performs a single manual move. It fails with ErrRunInProgress while
// a program is running and returns false when the move is rejected.
func (s *Scene) Move(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	if s.scheduler.State() == StateRunning {
		return false, ErrRunInProgress
	}

	accepted := s.motion.TryMove(dir)
	action := MoveAction(dir)
	s.emit(Event{
		Type:     EventMove,
		Action:   &action,
		Accepted: accepted,
		Position: s.motion.Position(),
	})
	return accepted, nil
}

// Restore places the actor on pos without animation. It is used to resume
// persisted sessions.
func (s *Scene) Restore(pos Position) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.scheduler.State() == StateRunning {
		return ErrRunInProgress
	}
	if !s.grid.IsWalkable(pos.Row, pos.Col) {
		return fmt.Errorf("%w: %s", ErrNotWalkable, pos)
	}
	s.motion.PlaceAt(pos)
	return nil
}

// Wait blocks until the current run's loop has exited
func (s *Scene) Wait() {
	s.scheduler.Wait()
}

// Solution returns the shortest solving program for the maze
func (s *Scene) Solution() (*Program, error) {
	dirs, err := Solve(s.grid)
	if err != nil {
		return nil, err
	}
	return ProgramFromDirections(dirs), nil
}

// Snapshot returns the scene's current state
func (s *Scene) Snapshot() SceneState {
	x, y := s.motion.WorldPosition()
	pos := s.grid.ToGrid(x, y)

	animation := AnimIdle
	if a, ok := s.renderer.(interface{ Animation() string }); ok {
		animation = a.Animation()
	}

	s.mu.Lock()
	solved, runID, message := s.solved, s.runID, s.message
	s.mu.Unlock()

	return SceneState{
		LevelName:    s.config.Name,
		Rows:         s.renderRows(pos),
		Position:     pos,
		X:            x,
		Y:            y,
		Start:        s.grid.Start(),
		Goal:         s.grid.Goal(),
		State:        s.scheduler.State(),
		Cursor:       s.scheduler.Cursor(),
		ScriptLength: s.scheduler.Script().Len(),
		Moving:       s.motion.Moving(),
		Animation:    animation,
		Solved:       solved,
		RunID:        runID,
		Message:      message,
	}
}

func (s *Scene) renderRows(actor Position) []string {
	rows := s.grid.Layout()
	if !s.grid.InBounds(actor.Row, actor.Col) {
		return rows
	}
	line := []byte(rows[actor.Row])
	line[actor.Col] = ActorChar
	rows[actor.Row] = string(line)
	return rows
}

// arrived runs after every completed motion
func (s *Scene) arrived(x, y float64) {
	if !s.goal.Evaluate(x, y) {
		return
	}

	s.mu.Lock()
	if s.solved {
		s.mu.Unlock()
		return
	}
	s.solved = true
	runID := s.runID
	s.mu.Unlock()

	s.emit(Event{
		Type:     EventMazeSolved,
		RunID:    runID,
		Position: s.grid.ToGrid(x, y),
		Message:  s.config.Message(EventMazeSolved),
	})
}

func (s *Scene) stepped(index int, action Action, accepted bool) {
	a := action
	s.emit(Event{
		Type:     EventStep,
		RunID:    s.currentRunID(),
		Step:     index,
		Action:   &a,
		Accepted: accepted,
		Position: s.motion.Position(),
	})
}

func (s *Scene) completed(actions int) {
	s.emit(Event{
		Type:     EventExecutionSucceeded,
		RunID:    s.currentRunID(),
		Step:     actions,
		Position: s.motion.Position(),
		Message:  s.config.Message(EventExecutionSucceeded),
	})
}

func (s *Scene) currentRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

func (s *Scene) emit(e Event) {
	e.Timestamp = time.Now()
	if e.Message != "" {
		s.mu.Lock()
		s.message = e.Message
		s.mu.Unlock()
	}
	if s.handler != nil {
		s.handler(e)
	}
}
