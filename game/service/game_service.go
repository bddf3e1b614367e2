package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

// GameService defines all maze-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Program Execution
	Compile(ctx context.Context, sessionID string, program *engine.Program) (*CompileResult, error)
	Run(ctx context.Context, sessionID string, program *engine.Program, wait bool) (*RunResult, error)
	Stop(ctx context.Context, sessionID string) (*StopResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.SceneState, error)
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)

	// Scene State
	GetState(ctx context.Context, sessionID string) (*engine.SceneState, error)
	GetEventLog(ctx context.Context, sessionID string, opts HistoryOptions) (*EventLogResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MazeConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MazeConfig) error
	GetSolution(ctx context.Context, configName string) (*SolutionInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.MazeConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles maze level loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MazeConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MazeConfig
	DefaultName() string
	SaveConfig(name string, config *engine.MazeConfig) error
}

// EventSink receives every scene event of every session
type EventSink func(sessionID string, event engine.Event)

// Session represents an active maze session: one scene plus its metadata
type Session struct {
	ID             string
	ConfigID       string
	Scene          *engine.Scene
	Config         *engine.MazeConfig
	Events         *EventLog
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu      sync.Mutex
	program *engine.Program
	sink    EventSink
}

// NewSession builds a session with a fresh scene for config
func NewSession(id, configID string, config *engine.MazeConfig) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:             id,
		ConfigID:       configID,
		Config:         config,
		Events:         NewEventLog(MaxEventLogSize),
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	scene, err := engine.NewScene(config, nil, sess.handle)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	sess.Scene = scene

	return sess, nil
}

// SetEventSink forwards every future event of the session to sink
func (s *Session) SetEventSink(sink EventSink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// SetProgram records the last program submitted to the session
func (s *Session) SetProgram(program *engine.Program) {
	s.mu.Lock()
	s.program = program
	s.mu.Unlock()
}

// Program returns the last program submitted to the session
func (s *Session) Program() *engine.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

func (s *Session) handle(e engine.Event) {
	s.Events.Append(e)

	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink != nil {
		sink(s.ID, e)
	}
}
