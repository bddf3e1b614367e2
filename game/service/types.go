package service

import (
	"time"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

// SessionInfo provides information about a maze session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	State          *engine.SceneState `json:"state"`
	Config         *engine.MazeConfig `json:"config"`
	Program        *engine.Program    `json:"program,omitempty"`
}

// CompileResult is the action script compiled from a block program
type CompileResult struct {
	Script  engine.ActionScript `json:"script"`
	Actions []string            `json:"actions"`
	Length  int                 `json:"length"`
}

// RunResult contains the outcome of starting (and optionally awaiting) a run
type RunResult struct {
	Started bool                `json:"started"`
	RunID   string              `json:"run_id,omitempty"`
	Script  engine.ActionScript `json:"script"`
	Waited  bool                `json:"waited,omitempty"`
	Solved  bool                `json:"solved"`
	Message string              `json:"message,omitempty"`
	State   *engine.SceneState  `json:"state"`
	Events  []engine.Event      `json:"events,omitempty"`
}

// StopResult contains the outcome of a stop request
type StopResult struct {
	Stopped bool               `json:"stopped"`
	State   *engine.SceneState `json:"state"`
}

// MoveResult contains the result of a manual move
type MoveResult struct {
	Accepted  bool               `json:"accepted"`
	Direction engine.Direction   `json:"direction"`
	From      engine.Position    `json:"from"`
	To        engine.Position    `json:"to"`
	Solved    bool               `json:"solved"`
	Message   string             `json:"message"`
	State     *engine.SceneState `json:"state"`
}

// HistoryOptions configures event log retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// EventLogResponse contains a page of a session's event log
type EventLogResponse struct {
	Events      []engine.Event `json:"events"`
	TotalEvents int            `json:"total_events"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ConfigInfo provides information about a maze level
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Format      string `json:"format"` // "json" or "hcl"
}

// SolutionInfo is the shortest solving program of a level
type SolutionInfo struct {
	ConfigID   string              `json:"config_id"`
	Directions []engine.Direction  `json:"directions"`
	Program    *engine.Program     `json:"program"`
	Script     engine.ActionScript `json:"script"`
	Moves      int                 `json:"moves"`
}
