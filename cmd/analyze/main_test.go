package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

func TestAnalyzeLevel_DefaultMaze(t *testing.T) {
	var out bytes.Buffer
	analyzeLevel(&out, engine.DefaultMazeConfig())

	output := out.String()
	expected := []string{
		"Grid Size: 6 rows x 8 cols",
		"Walkable Cells: 15  Walls: 33",
		"Shortest Solution: 8 moves (straight-line distance 8)",
		"Dead ends:",
		"(1,5)",
		"All walkable cells are reachable",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}

	if strings.Contains(output, "Detour") {
		t.Error("The default maze has no detour")
	}
}

func TestAnalyzeLevel_Detour(t *testing.T) {
	config := &engine.MazeConfig{
		Name:        "Hook",
		Description: "Goal sits right below the start behind a wall",
		Layout: []string{
			"#S..#",
			"###.#",
			"#G..#",
		},
	}

	var out bytes.Buffer
	analyzeLevel(&out, config)

	output := out.String()
	if !strings.Contains(output, "Shortest Solution: 6 moves (straight-line distance 2)") {
		t.Errorf("Unexpected solution line:\n%s", output)
	}
	if !strings.Contains(output, "Detour: 4 extra moves") {
		t.Errorf("Expected detour line:\n%s", output)
	}
	if !strings.Contains(output, "start, forward, forward, down, down, backward, backward") {
		t.Errorf("Expected solution directions:\n%s", output)
	}
}

func TestAnalyzeLevel_Unsolvable(t *testing.T) {
	config := &engine.MazeConfig{
		Name:        "Walled",
		Description: "No way through",
		Layout:      []string{"#S#", "###", "#G#"},
	}

	var out bytes.Buffer
	analyzeLevel(&out, config)

	output := out.String()
	if !strings.Contains(output, "CRITICAL") || !strings.Contains(output, "not reachable") {
		t.Errorf("Expected unreachable goal warning:\n%s", output)
	}
	if strings.Contains(output, "Shortest Solution") {
		t.Error("An unsolvable level has no solution")
	}
}

func TestAnalyzeLevel_BadLayout(t *testing.T) {
	var out bytes.Buffer
	analyzeLevel(&out, &engine.MazeConfig{Name: "Bad", Layout: []string{"#S#", "#G"}})

	if !strings.Contains(out.String(), "Error building grid") {
		t.Errorf("Expected grid error, got:\n%s", out.String())
	}
}

func TestPrintCells(t *testing.T) {
	var cells []engine.Position
	for col := 0; col < 7; col++ {
		cells = append(cells, engine.Position{Row: 2, Col: col})
	}

	var out bytes.Buffer
	printCells(&out, "unreachable", cells)

	output := out.String()
	if !strings.HasPrefix(output, "Unreachable: 7\n") {
		t.Errorf("Unexpected header:\n%s", output)
	}
	if !strings.Contains(output, "(2,4)") || strings.Contains(output, "(2,5)") {
		t.Errorf("Expected exactly %d cells listed:\n%s", maxListed, output)
	}
	if !strings.Contains(output, "... and 2 more") {
		t.Errorf("Expected truncation line:\n%s", output)
	}

	out.Reset()
	printCells(&out, "dead ends", nil)
	if out.Len() != 0 {
		t.Errorf("Expected no output for empty list, got %q", out.String())
	}
}
