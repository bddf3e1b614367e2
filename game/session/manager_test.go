package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
	"github.com/wricardo/mcp-training/blockmaze/game/service"
)

func createTestConfig() *engine.MazeConfig {
	return &engine.MazeConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Layout: []string{
			"#S######",
			"#.######",
			"#.######",
			"#.######",
			"#.######",
			"#...G###",
		},
		MoveDurationMs: 2,
		StepDelayMs:    2,
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", "test", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.ConfigID != "test" {
			t.Errorf("Expected config ID 'test', got '%s'", session.ConfigID)
		}
		if session.Scene == nil {
			t.Error("Expected scene to be initialized")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", "test", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID == "" {
			t.Error("Expected auto-generated session ID")
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %d characters", len(session.ID))
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", "test", config)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", "test", config)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid session ID", func(t *testing.T) {
		for _, id := range []string{"../escape", "a/b", "dot.id"} {
			if _, err := manager.Create(id, "test", config); err != ErrInvalidSessionID {
				t.Errorf("Expected ErrInvalidSessionID for %q, got %v", id, err)
			}
		}
	})

	t.Run("unsolvable level", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Layout = []string{
			"#S######",
			"########",
			"####G###",
		}
		_, err := manager.Create("invalid-test", "test", invalidConfig)
		if err == nil {
			t.Error("Expected error for unsolvable level")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Create test session
	created, _ := manager.Create("get-test", "test", config)

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session.ID != created.ID {
			t.Errorf("Expected session ID '%s', got '%s'", created.ID, session.ID)
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session.ID != created.ID {
			t.Errorf("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Create test session
	manager.Create("delete-test", "test", config)

	t.Run("delete existing session", func(t *testing.T) {
		err := manager.Delete("delete-test")
		if err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}

		// Verify session is deleted
		_, err = manager.Get("delete-test")
		if err != ErrSessionNotFound {
			t.Error("Expected session to be deleted")
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		err := manager.Delete("non-existent")
		if err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("case-insensitive delete", func(t *testing.T) {
		manager.Create("case-test", "test", config)
		err := manager.Delete("CASE-TEST")
		if err != nil {
			t.Fatalf("Failed to delete with different case: %v", err)
		}
		_, err = manager.Get("case-test")
		if err != ErrSessionNotFound {
			t.Error("Expected session to be deleted regardless of case")
		}
	})

	t.Run("delete stops a running program", func(t *testing.T) {
		session, _ := manager.Create("running-delete", "test", config)
		program := engine.ProgramFromDirections([]engine.Direction{
			engine.Down, engine.Down, engine.Down, engine.Down, engine.Down,
		})
		if _, started := session.Scene.Run(program); !started {
			t.Fatal("Expected program to start")
		}

		if err := manager.Delete("running-delete"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		session.Scene.Wait()
		if state := session.Scene.Snapshot().State; state != engine.StateIdle {
			t.Errorf("Expected deleted session to be idle, got %s", state)
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Create multiple sessions
	session1, _ := manager.Create("list-1", "test", config)
	session2, _ := manager.Create("list-2", "test", config)
	session3, _ := manager.Create("list-3", "test", config)

	sessions := manager.List()

	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}

	// Verify all created sessions are in the list
	foundSessions := make(map[string]bool)
	for _, s := range sessions {
		foundSessions[s.ID] = true
	}

	for _, s := range []*service.Session{session1, session2, session3} {
		if !foundSessions[s.ID] {
			t.Errorf("Session %s not found in list", s.ID)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Create sessions with different last access times
	active, _ := manager.Create("active", "test", config)
	expired, _ := manager.Create("expired", "test", config)

	// Simulate expired session
	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	// Clean up sessions older than 1 hour
	deleted := manager.CleanupExpiredSessions(1 * time.Hour)

	if deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}

	// Verify expired session is deleted
	_, err := manager.Get("expired")
	if err != ErrSessionNotFound {
		t.Error("Expected expired session to be deleted")
	}

	// Verify active session still exists
	_, err = manager.Get("active")
	if err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session, _ := manager.Create("access-test", "test", config)
	originalTime := session.LastAccessedAt

	// Wait a bit to ensure time difference
	time.Sleep(10 * time.Millisecond)

	err := manager.UpdateLastAccessed("access-test")
	if err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}

	// Get session again to verify update
	updated, _ := manager.Get("access-test")
	if !updated.LastAccessedAt.After(originalTime) {
		t.Error("Expected LastAccessedAt to be updated")
	}

	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Exists(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	manager.Create("exists-test", "test", config)

	t.Run("existing session", func(t *testing.T) {
		if !manager.sessionExists("exists-test") {
			t.Error("Expected session to exist")
		}
	})

	t.Run("case-insensitive existence check", func(t *testing.T) {
		if !manager.sessionExists("EXISTS-TEST") {
			t.Error("Expected session to exist regardless of case")
		}
	})

	t.Run("non-existent session", func(t *testing.T) {
		if manager.sessionExists("non-existent") {
			t.Error("Expected session not to exist")
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Test concurrent session creation
	var wg sync.WaitGroup
	errors := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			// Every ID is claimed twice so duplicates race
			sessionID := fmt.Sprintf("concurrent-%d", id%50)
			_, err := manager.Create(sessionID, "test", config)
			if err != nil && err != ErrSessionAlreadyExists {
				errors <- err
			}
		}(i)
	}

	wg.Wait()
	close(errors)

	// Check for unexpected errors
	for err := range errors {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	if count := manager.Count(); count != 50 {
		t.Errorf("Expected 50 sessions, got %d", count)
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Create two sessions
	session1, _ := manager.Create("iso-1", "test", config)
	session2, _ := manager.Create("iso-2", "test", config)

	// Move the actor of session 1
	accepted, err := session1.Scene.Move(engine.Down)
	if err != nil || !accepted {
		t.Fatalf("Expected move to be accepted, got %v (%v)", accepted, err)
	}

	want := engine.Position{Row: 0, Col: 1}
	if got := session2.Scene.Snapshot().Position; got != want {
		t.Errorf("Session 2 should not be affected by session 1 moves, got %s", got)
	}

	if session1.Scene.Snapshot().Position == session2.Scene.Snapshot().Position {
		t.Error("Sessions should have independent scenes")
	}
}

func TestManager_EventSink(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	// Session created before the sink is set must be wired too
	early, _ := manager.Create("sink-early", "test", config)

	var mu sync.Mutex
	received := make(map[string][]engine.EventType)
	manager.SetEventSink(func(sessionID string, event engine.Event) {
		mu.Lock()
		defer mu.Unlock()
		received[sessionID] = append(received[sessionID], event.Type)
	})

	late, _ := manager.Create("sink-late", "test", config)

	for _, s := range []*service.Session{early, late} {
		if _, err := s.Scene.Move(engine.Down); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, id := range []string{"sink-early", "sink-late"} {
		events := received[id]
		if len(events) != 1 || events[0] != engine.EventMove {
			t.Errorf("Expected one move event for %s, got %v", id, events)
		}
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	generatedIDs := make(map[string]bool)

	// Generate multiple sessions and check for uniqueness
	for i := 0; i < 50; i++ {
		session, err := manager.Create("", "test", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true

		// Verify ID format (4 hex characters)
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character ID, got %d", len(session.ID))
		}
	}
}
