package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new maze session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MazeConfig
	var err error
	configID := configName
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.configs.DefaultName()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession stops any running program and removes the session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, err := s.sessions.Get(sessionID); err == nil {
		sess.Scene.Stop()
	}
	return s.sessions.Delete(sessionID)
}

// Compile compiles a block program without running it
func (s *gameServiceImpl) Compile(ctx context.Context, sessionID string, program *engine.Program) (*CompileResult, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	script := sess.Scene.Compile(program)
	actions := make([]string, 0, script.Len())
	for _, a := range script.Actions() {
		actions = append(actions, a.String())
	}

	return &CompileResult{
		Script:  script,
		Actions: actions,
		Length:  script.Len(),
	}, nil
}

// Run compiles program and starts executing it. With wait set it blocks
// until the run ends or ctx is done.
func (s *gameServiceImpl) Run(ctx context.Context, sessionID string, program *engine.Program, wait bool) (*RunResult, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	script, started := sess.Scene.Run(program)
	if !started {
		state := sess.Scene.Snapshot()
		return &RunResult{
			Started: false,
			Script:  script,
			Message: engine.ErrRunInProgress.Error(),
			State:   &state,
		}, nil
	}

	sess.SetProgram(program)
	s.save(sessionID)

	state := sess.Scene.Snapshot()
	result := &RunResult{
		Started: true,
		RunID:   state.RunID,
		Script:  script,
		Message: sess.Config.Message(engine.EventRunStarted),
		State:   &state,
	}
	if !wait {
		return result, nil
	}

	done := make(chan struct{})
	go func() {
		sess.Scene.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for run %s: %w", result.RunID, ctx.Err())
	}

	s.save(sessionID)
	state = sess.Scene.Snapshot()
	result.Waited = true
	result.State = &state
	result.Solved = state.Solved
	result.Message = state.Message
	for _, e := range sess.Events.Since(0) {
		if e.RunID == result.RunID {
			result.Events = append(result.Events, e)
		}
	}

	return result, nil
}

// Stop halts the session's running program
func (s *gameServiceImpl) Stop(ctx context.Context, sessionID string) (*StopResult, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	stopped := sess.Scene.Stop()
	sess.Scene.Wait()
	s.save(sessionID)

	state := sess.Scene.Snapshot()
	return &StopResult{Stopped: stopped, State: &state}, nil
}

// Reset stops any run and returns the actor to the start cell
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.SceneState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Scene.Reset()
	s.save(sessionID)

	state := sess.Scene.Snapshot()
	return &state, nil
}

// Move performs a single manual move
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	dir, err := engine.ParseDirection(strings.TrimSpace(direction))
	if err != nil {
		return nil, err
	}

	from := sess.Scene.Snapshot().Position
	accepted, err := sess.Scene.Move(dir)
	if err != nil {
		return nil, err
	}
	state := sess.Scene.Snapshot()

	message := fmt.Sprintf("Moved %s to %s", dir, state.Position)
	if !accepted {
		message = fmt.Sprintf("Can't move %s from %s", dir, from)
	} else if state.Solved && state.Position == state.Goal {
		message = sess.Config.Message(engine.EventMazeSolved)
	}

	s.save(sessionID)

	return &MoveResult{
		Accepted:  accepted,
		Direction: dir,
		From:      from,
		To:        state.Position,
		Solved:    state.Solved,
		Message:   message,
		State:     &state,
	}, nil
}

// GetState returns a snapshot of the session's scene
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.SceneState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Scene.Snapshot()
	return &state, nil
}

// GetEventLog returns a page of the session's event log
func (s *gameServiceImpl) GetEventLog(ctx context.Context, sessionID string, opts HistoryOptions) (*EventLogResponse, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Events.Page(opts), nil
}

// ListConfigs returns all available levels
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a level by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MazeConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig validates and stores a level
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MazeConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// GetSolution returns the shortest solving program of a level
func (s *gameServiceImpl) GetSolution(ctx context.Context, configName string) (*SolutionInfo, error) {
	config := s.configs.GetDefault()
	configID := s.configs.DefaultName()
	if configName != "" {
		var err error
		if config, err = s.configs.LoadConfig(configName); err != nil {
			return nil, err
		}
		configID = configName
	}

	grid, err := engine.NewGridFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("invalid level %s: %w", configID, err)
	}
	dirs, err := engine.Solve(grid)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", configID, err)
	}

	program := engine.ProgramFromDirections(dirs)
	return &SolutionInfo{
		ConfigID:   configID,
		Directions: dirs,
		Program:    program,
		Script:     engine.Compile(program),
		Moves:      len(dirs),
	}, nil
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) save(sessionID string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s: %v", sessionID, err)
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	state := sess.Scene.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          &state,
		Config:         sess.Config,
		Program:        sess.Program(),
	}
}
