package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// MazeConfig describes a maze level. Levels are authored either as JSON or
// as HCL; both formats share the same field names.
type MazeConfig struct {
	Name           string        `json:"name" hcl:"name"`
	Description    string        `json:"description" hcl:"description"`
	Layout         []string      `json:"layout" hcl:"layout"`
	CellSize       float64       `json:"cell_size,omitempty" hcl:"cell_size,optional"`
	OriginX        float64       `json:"origin_x,omitempty" hcl:"origin_x,optional"`
	OriginY        float64       `json:"origin_y,omitempty" hcl:"origin_y,optional"`
	MoveDurationMs int           `json:"move_duration_ms,omitempty" hcl:"move_duration_ms,optional"`
	StepDelayMs    int           `json:"step_delay_ms,omitempty" hcl:"step_delay_ms,optional"`
	Messages       *MazeMessages `json:"messages,omitempty" hcl:"messages,block"`
}

// MazeMessages holds the texts shown for scene notifications
type MazeMessages struct {
	Welcome            string `json:"welcome,omitempty" hcl:"welcome,optional"`
	MazeSolved         string `json:"maze_solved,omitempty" hcl:"maze_solved,optional"`
	ExecutionSucceeded string `json:"execution_succeeded,omitempty" hcl:"execution_succeeded,optional"`
	Stopped            string `json:"stopped,omitempty" hcl:"stopped,optional"`
	Reset              string `json:"reset,omitempty" hcl:"reset,optional"`
}

// EffectiveCellSize returns the configured cell size or the default
func (c *MazeConfig) EffectiveCellSize() float64 {
	if c.CellSize > 0 {
		return c.CellSize
	}
	return DefaultCellSize
}

// MoveDuration returns how long a single motion animates
func (c *MazeConfig) MoveDuration() time.Duration {
	if c.MoveDurationMs > 0 {
		return time.Duration(c.MoveDurationMs) * time.Millisecond
	}
	return DefaultMoveDuration
}

// StepDelay returns the pause inserted after every action of a run
func (c *MazeConfig) StepDelay() time.Duration {
	if c.StepDelayMs > 0 {
		return time.Duration(c.StepDelayMs) * time.Millisecond
	}
	return DefaultStepDelay
}

// Message returns the configured text for an event type, falling back to a
// built-in default.
func (c *MazeConfig) Message(t EventType) string {
	m := c.Messages
	if m == nil {
		m = &MazeMessages{}
	}
	pick := func(custom, fallback string) string {
		if custom != "" {
			return custom
		}
		return fallback
	}
	switch t {
	case EventMazeSolved:
		return pick(m.MazeSolved, "Congratulations! You completed the maze!")
	case EventExecutionSucceeded:
		return pick(m.ExecutionSucceeded, "Program executed successfully.")
	case EventStopped:
		return pick(m.Stopped, "Execution stopped.")
	case EventReset:
		return pick(m.Reset, "Maze reset to the start cell.")
	case EventRunStarted:
		return pick(m.Welcome, "Running program...")
	}
	return ""
}

// ValidateMazeConfig validates a level for correctness and solvability
func ValidateMazeConfig(config *MazeConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.CellSize < 0 {
		return fmt.Errorf("config validation: cell_size must be positive, got %v", config.CellSize)
	}
	if config.MoveDurationMs < 0 {
		return fmt.Errorf("config validation: move_duration_ms must not be negative, got %d", config.MoveDurationMs)
	}
	if config.StepDelayMs < 0 {
		return fmt.Errorf("config validation: step_delay_ms must not be negative, got %d", config.StepDelayMs)
	}

	grid, err := NewGridFromConfig(config)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	// The single-solution claim of a level is trusted as authored data, but
	// the goal must at least be reachable from the start.
	if _, err := Solve(grid); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	return nil
}

// LoadMazeConfig loads a level from a .json or .hcl file and validates it
func LoadMazeConfig(filename string) (*MazeConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseMazeConfig(filename, data)
	if err != nil {
		return nil, err
	}

	if err := ValidateMazeConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseMazeConfig decodes level source, picking the syntax from the file
// extension. It does not validate the result.
func ParseMazeConfig(filename string, data []byte) (*MazeConfig, error) {
	var config MazeConfig

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(filename), data, nil, &config); err != nil {
			return nil, fmt.Errorf("failed to parse level %s: %w", filepath.Base(filename), err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse level %s: %w", filepath.Base(filename), err)
		}
	}

	return &config, nil
}

// DefaultMazeConfig returns the maze shipped with the game: 6 rows by 8
// columns, start at (0,1) and goal at (5,4).
func DefaultMazeConfig() *MazeConfig {
	return &MazeConfig{
		Name:        "Robot Lab",
		Description: "Guide the robot through the lab maze to the charging pad",
		Layout: []string{
			"#S.#####",
			"##.#..##",
			"##...###",
			"###.#.##",
			"##....##",
			"####G###",
		},
		CellSize:       DefaultCellSize,
		MoveDurationMs: int(DefaultMoveDuration / time.Millisecond),
		StepDelayMs:    int(DefaultStepDelay / time.Millisecond),
		Messages: &MazeMessages{
			Welcome:            "Running your program...",
			MazeSolved:         "Congratulations! You completed the maze!",
			ExecutionSucceeded: "Program executed successfully.",
			Stopped:            "Execution stopped.",
			Reset:              "Robot returned to the start.",
		},
	}
}
