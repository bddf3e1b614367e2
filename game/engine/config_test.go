package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidConfig() *MazeConfig {
	return &MazeConfig{
		Name:        "Test Maze",
		Description: "A valid test maze",
		Layout: []string{
			"#S###",
			"#...#",
			"###G#",
		},
		CellSize:       10,
		MoveDurationMs: 1,
		StepDelayMs:    1,
		Messages: &MazeMessages{
			MazeSolved:         "Solved!",
			ExecutionSucceeded: "Done!",
		},
	}
}

func TestValidateMazeConfig_ValidConfig(t *testing.T) {
	if err := ValidateMazeConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidateMazeConfig_DefaultConfig(t *testing.T) {
	if err := ValidateMazeConfig(DefaultMazeConfig()); err != nil {
		t.Errorf("Expected default maze to pass validation, got error: %v", err)
	}
}

func TestValidateMazeConfig_Nil(t *testing.T) {
	if err := ValidateMazeConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestValidateMazeConfig_MissingName(t *testing.T) {
	config := createValidConfig()
	config.Name = ""

	err := ValidateMazeConfig(config)
	if err == nil {
		t.Fatal("Expected error for missing name")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Expected 'name is required' error, got: %v", err)
	}
}

func TestValidateMazeConfig_MissingDescription(t *testing.T) {
	config := createValidConfig()
	config.Description = ""

	err := ValidateMazeConfig(config)
	if err == nil {
		t.Fatal("Expected error for missing description")
	}
	if !strings.Contains(err.Error(), "description is required") {
		t.Errorf("Expected 'description is required' error, got: %v", err)
	}
}

func TestValidateMazeConfig_NegativeTimings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MazeConfig)
		want   string
	}{
		{"cell size", func(c *MazeConfig) { c.CellSize = -1 }, "cell_size"},
		{"move duration", func(c *MazeConfig) { c.MoveDurationMs = -5 }, "move_duration_ms"},
		{"step delay", func(c *MazeConfig) { c.StepDelayMs = -5 }, "step_delay_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.mutate(config)
			err := ValidateMazeConfig(config)
			if err == nil {
				t.Fatalf("Expected error for negative %s", tt.name)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateMazeConfig_BadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   string
	}{
		{"too few rows", []string{"#SG#"}, "rows"},
		{"too few columns", []string{"S", "G"}, "columns"},
		{"ragged rows", []string{"#S##", "#.G"}, "row 2"},
		{"invalid character", []string{"#S##", "#.X#", "##G#"}, "invalid character"},
		{"no goal", []string{"#S##", "#..#"}, "exactly one goal"},
		{"two goals", []string{"#SG#", "#.G#"}, "exactly one goal"},
		{"two starts", []string{"#SS#", "#.G#"}, "at most one start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			config.Layout = tt.layout
			err := ValidateMazeConfig(config)
			if err == nil {
				t.Fatalf("Expected error for %s", tt.name)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateMazeConfig_Unreachable(t *testing.T) {
	config := createValidConfig()
	config.Layout = []string{
		"#S###",
		"#..##",
		"####G",
	}

	err := ValidateMazeConfig(config)
	if err == nil {
		t.Fatal("Expected error for unreachable goal")
	}
	if !errors.Is(err, ErrGoalUnreachable) {
		t.Errorf("Expected ErrGoalUnreachable, got: %v", err)
	}
}

func TestMazeConfig_Defaults(t *testing.T) {
	config := &MazeConfig{}

	if config.EffectiveCellSize() != DefaultCellSize {
		t.Errorf("Expected default cell size %v, got %v", DefaultCellSize, config.EffectiveCellSize())
	}
	if config.MoveDuration() != DefaultMoveDuration {
		t.Errorf("Expected default move duration %v, got %v", DefaultMoveDuration, config.MoveDuration())
	}
	if config.StepDelay() != DefaultStepDelay {
		t.Errorf("Expected default step delay %v, got %v", DefaultStepDelay, config.StepDelay())
	}
	if config.Message(EventMazeSolved) == "" {
		t.Error("Expected a built-in maze solved message")
	}
	if config.Message(EventStep) != "" {
		t.Error("Expected no message for step events")
	}
}

func TestMazeConfig_CustomMessages(t *testing.T) {
	config := createValidConfig()

	if got := config.Message(EventMazeSolved); got != "Solved!" {
		t.Errorf("Expected custom maze solved message, got %q", got)
	}
	if got := config.Message(EventExecutionSucceeded); got != "Done!" {
		t.Errorf("Expected custom execution message, got %q", got)
	}
	// Unset messages fall back to defaults
	if got := config.Message(EventStopped); got != "Execution stopped." {
		t.Errorf("Expected default stopped message, got %q", got)
	}
}

func TestParseMazeConfig_JSON(t *testing.T) {
	data := []byte(`{
		"name": "JSON Maze",
		"description": "Parsed from JSON",
		"layout": ["#S##", "#..#", "##G#"],
		"step_delay_ms": 50,
		"messages": {"maze_solved": "Yay"}
	}`)

	config, err := ParseMazeConfig("level.json", data)
	if err != nil {
		t.Fatalf("Failed to parse JSON level: %v", err)
	}
	if config.Name != "JSON Maze" {
		t.Errorf("Expected name 'JSON Maze', got %q", config.Name)
	}
	if len(config.Layout) != 3 {
		t.Errorf("Expected 3 layout rows, got %d", len(config.Layout))
	}
	if config.StepDelayMs != 50 {
		t.Errorf("Expected step delay 50, got %d", config.StepDelayMs)
	}
	if config.Messages == nil || config.Messages.MazeSolved != "Yay" {
		t.Errorf("Expected maze solved message 'Yay', got %+v", config.Messages)
	}
}

func TestParseMazeConfig_HCL(t *testing.T) {
	data := []byte(`
name        = "HCL Maze"
description = "Parsed from HCL"
layout = [
  "#S##",
  "#..#",
  "##G#",
]
cell_size     = 40
step_delay_ms = 120

messages {
  maze_solved = "Charged up"
}
`)

	config, err := ParseMazeConfig("level.hcl", data)
	if err != nil {
		t.Fatalf("Failed to parse HCL level: %v", err)
	}
	if config.Name != "HCL Maze" {
		t.Errorf("Expected name 'HCL Maze', got %q", config.Name)
	}
	if config.CellSize != 40 {
		t.Errorf("Expected cell size 40, got %v", config.CellSize)
	}
	if config.StepDelayMs != 120 {
		t.Errorf("Expected step delay 120, got %d", config.StepDelayMs)
	}
	if config.Messages == nil || config.Messages.MazeSolved != "Charged up" {
		t.Errorf("Expected maze solved message 'Charged up', got %+v", config.Messages)
	}
	if err := ValidateMazeConfig(config); err != nil {
		t.Errorf("Expected HCL level to validate, got %v", err)
	}
}

func TestParseMazeConfig_Invalid(t *testing.T) {
	if _, err := ParseMazeConfig("bad.json", []byte("{ not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}
	if _, err := ParseMazeConfig("bad.hcl", []byte("name = ")); err == nil {
		t.Error("Expected error for malformed HCL")
	}
}

func TestLoadMazeConfig(t *testing.T) {
	tempDir := t.TempDir()

	validPath := filepath.Join(tempDir, "valid.json")
	valid := `{"name":"File Maze","description":"From disk","layout":["#S##","#..#","##G#"]}`
	if err := os.WriteFile(validPath, []byte(valid), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}

	config, err := LoadMazeConfig(validPath)
	if err != nil {
		t.Fatalf("Failed to load level: %v", err)
	}
	if config.Name != "File Maze" {
		t.Errorf("Expected name 'File Maze', got %q", config.Name)
	}

	invalidPath := filepath.Join(tempDir, "invalid.json")
	invalid := `{"name":"Broken","description":"No goal","layout":["#S##","#..#"]}`
	if err := os.WriteFile(invalidPath, []byte(invalid), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	if _, err := LoadMazeConfig(invalidPath); err == nil {
		t.Error("Expected validation error for level without goal")
	}

	if _, err := LoadMazeConfig(filepath.Join(tempDir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
