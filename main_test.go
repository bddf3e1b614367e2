package main

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServices(t *testing.T) *services {
	t.Helper()
	svc, err := initializeServices("configs", t.TempDir())
	if err != nil {
		t.Fatalf("initializeServices failed: %v", err)
	}
	go svc.hub.Run()
	return svc
}

func TestConstants(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("Expected version 1.0.0, got %s", Version)
	}
	if AppName != "Block Maze Server" {
		t.Errorf("Expected app name 'Block Maze Server', got %s", AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	svc := newTestServices(t)

	if svc.game == nil {
		t.Error("Expected game service to be initialized")
	}
	if svc.sessions == nil || svc.persistence == nil || svc.hub == nil {
		t.Fatal("Expected session manager, persistence and hub to be initialized")
	}

	configs, err := svc.game.ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) == 0 {
		t.Error("Expected the shipped levels to be listed")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, err := initializeServices("/nonexistent/directory", t.TempDir())
	if err == nil {
		t.Error("Expected error for invalid config directory")
	}
}

func TestInitializeServices_PersistsSessions(t *testing.T) {
	sessionsDir := t.TempDir()
	svc, err := initializeServices("configs", sessionsDir)
	if err != nil {
		t.Fatalf("initializeServices failed: %v", err)
	}

	info, err := svc.game.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if !svc.persistence.Exists(info.ID) {
		t.Fatalf("Expected session %s to be persisted", info.ID)
	}

	// A second process reloads it from disk
	reloaded, err := initializeServices("configs", sessionsDir)
	if err != nil {
		t.Fatalf("initializeServices failed: %v", err)
	}
	if _, err := reloaded.game.GetSession(context.Background(), info.ID); err != nil {
		t.Errorf("Expected session %s after reload: %v", info.ID, err)
	}
}

func TestSyncWithFilesystem(t *testing.T) {
	sessionsDir := t.TempDir()
	svc, err := initializeServices("configs", sessionsDir)
	if err != nil {
		t.Fatalf("initializeServices failed: %v", err)
	}

	info, err := svc.game.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if pruned := syncWithFilesystem(svc.sessions, svc.persistence); pruned != 0 {
		t.Errorf("Expected nothing pruned, got %d", pruned)
	}

	if err := os.Remove(filepath.Join(sessionsDir, info.ID+".json")); err != nil {
		t.Fatalf("Failed to remove session file: %v", err)
	}

	if pruned := syncWithFilesystem(svc.sessions, svc.persistence); pruned != 1 {
		t.Errorf("Expected 1 session pruned, got %d", pruned)
	}
	if _, err := svc.sessions.Get(info.ID); err == nil {
		t.Error("Expected the session to be gone from memory")
	}
}

func TestFlagDefaults(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"port", "8080"},
		{"host", "localhost"},
		{"debug", "false"},
		{"version", "false"},
		{"ngrok", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flag.Lookup(tt.name)
			if f == nil {
				t.Fatalf("Flag %s not registered", tt.name)
			}
			if f.DefValue != tt.want {
				t.Errorf("Expected default %s for %s, got %s", tt.want, tt.name, f.DefValue)
			}
		})
	}

	for _, name := range []string{"config-dir", "sessions-dir", "ngrok-auth", "ngrok-domain"} {
		if flag.Lookup(name) == nil {
			t.Errorf("Flag %s not registered", name)
		}
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("BLOCKMAZE_TEST_DIR", "")
	if got := envOrDefault("BLOCKMAZE_TEST_DIR", "configs"); got != "configs" {
		t.Errorf("Expected default, got %s", got)
	}

	t.Setenv("BLOCKMAZE_TEST_DIR", "/tmp/levels")
	if got := envOrDefault("BLOCKMAZE_TEST_DIR", "configs"); got != "/tmp/levels" {
		t.Errorf("Expected env value, got %s", got)
	}
}

func TestRouter_Health(t *testing.T) {
	router := newRouter(newTestServices(t), "http://localhost:0")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestRouter_MCPMethodNotAllowed(t *testing.T) {
	router := newRouter(newTestServices(t), "http://localhost:0")

	req := httptest.NewRequest("GET", "/mcp", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestRouter_MCPMessages(t *testing.T) {
	router := newRouter(newTestServices(t), "http://localhost:0")

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "initialize",
			body: `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`,
			want: []string{`"Block Maze"`, `"id":1`},
		},
		{
			name: "tools/list",
			body: `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
			want: []string{"run_program", "compile_program", "maze_state"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/mcp", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %s", ct)
			}
			for _, want := range tt.want {
				if !strings.Contains(w.Body.String(), want) {
					t.Errorf("Expected %s in response: %s", want, w.Body.String())
				}
			}
		})
	}
}
