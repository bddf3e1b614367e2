package engine

import (
	"errors"
	"fmt"
	"time"
)

// CellKind represents the semantics of a single maze cell
type CellKind string

const (
	Wall CellKind = "wall"
	Path CellKind = "path"
	Goal CellKind = "goal"

	// Layout characters
	WallChar  = '#'
	PathChar  = '.'
	GoalChar  = 'G'
	StartChar = 'S'
	ActorChar = 'R'

	// Validation constants
	MinGridSize = 2
	MaxGridSize = 50

	DefaultCellSize     = 55.0
	DefaultMoveDuration = 500 * time.Millisecond
	DefaultStepDelay    = 300 * time.Millisecond
	DefaultFrameRate    = 60

	// Animation names played on the rendering handle
	AnimIdle   = "idle"
	AnimMoving = "moving"
)

var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrGoalUnreachable  = errors.New("goal is not reachable from start")
	ErrRunInProgress    = errors.New("a program is already running")
	ErrNotWalkable      = errors.New("cell is not walkable")
)

// Position is a (row, col) cell coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p shifted by the given row/col deltas
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Direction is a world-axis movement direction. The actor has no facing,
// so FORWARD always means +x regardless of previous moves.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
	Up       Direction = "up"
	Down     Direction = "down"
)

// Directions lists every supported direction in a stable order
var Directions = []Direction{Forward, Backward, Up, Down}

// Delta returns the unit (dx, dy) step of the direction in grid units
func (d Direction) Delta() (dx, dy int, ok bool) {
	switch d {
	case Forward:
		return 1, 0, true
	case Backward:
		return -1, 0, true
	case Up:
		return 0, -1, true
	case Down:
		return 0, 1, true
	}
	return 0, 0, false
}

// Valid reports whether d is one of the four supported directions
func (d Direction) Valid() bool {
	_, _, ok := d.Delta()
	return ok
}

// ParseDirection accepts direction names and the common aliases used by
// clients ("right"/"left" for forward/backward).
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward", "right", "move_forward", "FORWARD":
		return Forward, nil
	case "backward", "back", "left", "move_backward", "BACKWARD":
		return Backward, nil
	case "up", "move_up", "UP":
		return Up, nil
	case "down", "move_down", "DOWN":
		return Down, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// ExecutionState is the scheduler's run state
type ExecutionState string

const (
	StateIdle    ExecutionState = "idle"
	StateRunning ExecutionState = "running"
)

// EventType names a notification raised by a scene
type EventType string

const (
	EventRunStarted         EventType = "run_started"
	EventStep               EventType = "step"
	EventMove               EventType = "move"
	EventMazeSolved         EventType = "maze_solved"
	EventExecutionSucceeded EventType = "execution_succeeded"
	EventStopped            EventType = "stopped"
	EventReset              EventType = "reset"
)

// Event is a single notification surfaced to the UI layer
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Step      int       `json:"step,omitempty"`
	Action    *Action   `json:"action,omitempty"`
	Accepted  bool      `json:"accepted,omitempty"`
	Position  Position  `json:"position"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHandler receives scene events. It is called synchronously from the
// goroutine that produced the event and must not block for long.
type EventHandler func(Event)

// SceneState is a read-only snapshot of a scene
type SceneState struct {
	LevelName    string         `json:"level_name"`
	Rows         []string       `json:"rows"`
	Position     Position       `json:"position"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Start        Position       `json:"start"`
	Goal         Position       `json:"goal"`
	State        ExecutionState `json:"state"`
	Cursor       int            `json:"cursor"`
	ScriptLength int            `json:"script_length"`
	Moving       bool           `json:"moving"`
	Animation    string         `json:"animation"`
	Solved       bool           `json:"solved"`
	RunID        string         `json:"run_id,omitempty"`
	Message      string         `json:"message,omitempty"`
}
