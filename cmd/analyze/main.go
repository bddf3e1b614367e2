// Command analyze prints quick, human-readable heuristics about the levels
// in the project's configs directory. It summarizes dimensions, the start
// and goal cells, the shortest solution, dead ends and walkable cells that
// can never be reached.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/mcp-training/blockmaze/game/config"
	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

// maxListed caps how many cells are printed per warning
const maxListed = 5

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", configDir, err)
		os.Exit(1)
	}

	levels, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing levels: %v\n", err)
		os.Exit(1)
	}

	for _, level := range levels {
		fmt.Printf("\n=== Analyzing %s ===\n", level.Filename)
		mazeConfig, err := manager.LoadConfig(level.Filename)
		if err != nil {
			fmt.Printf("Error loading level: %v\n", err)
			continue
		}
		analyzeLevel(os.Stdout, mazeConfig)
	}
}

func analyzeLevel(w io.Writer, mazeConfig *engine.MazeConfig) {
	grid, err := engine.NewGridFromConfig(mazeConfig)
	if err != nil {
		fmt.Fprintf(w, "Error building grid: %v\n", err)
		return
	}

	stats, err := engine.AnalyzeLevel(grid)

	fmt.Fprintf(w, "Name: %s\n", mazeConfig.Name)
	fmt.Fprintf(w, "Grid Size: %d rows x %d cols\n", stats.Rows, stats.Cols)
	fmt.Fprintf(w, "Start: %s  Goal: %s\n", grid.Start(), grid.Goal())
	fmt.Fprintf(w, "Walkable Cells: %d  Walls: %d\n", stats.WalkableCells, stats.Walls)
	fmt.Fprintf(w, "Timing: move %s, step delay %s\n", mazeConfig.MoveDuration(), mazeConfig.StepDelay())

	if err != nil {
		fmt.Fprintf(w, "⚠️  CRITICAL: %v\n", err)
		return
	}

	dirs := make([]string, len(stats.Solution))
	for i, d := range stats.Solution {
		dirs[i] = string(d)
	}
	fmt.Fprintf(w, "Shortest Solution: %d moves (straight-line distance %d)\n", len(stats.Solution), stats.StraightDistance)
	fmt.Fprintf(w, "   start, %s\n", strings.Join(dirs, ", "))

	if detour := len(stats.Solution) - stats.StraightDistance; detour > 0 {
		fmt.Fprintf(w, "Detour: %d extra moves around walls\n", detour)
	}

	printCells(w, "dead ends", stats.DeadEnds)

	if len(stats.Unreachable) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d walkable cells are unreachable from the start!\n", len(stats.Unreachable))
		printCells(w, "unreachable", stats.Unreachable)
	} else {
		fmt.Fprintf(w, "✅ All walkable cells are reachable from the start\n")
	}
}

func printCells(w io.Writer, label string, cells []engine.Position) {
	if len(cells) == 0 {
		return
	}
	fmt.Fprintf(w, "%s%s: %d\n", strings.ToUpper(label[:1]), label[1:], len(cells))
	for i, p := range cells {
		if i == maxListed {
			fmt.Fprintf(w, "   ... and %d more\n", len(cells)-maxListed)
			break
		}
		fmt.Fprintf(w, "   %s\n", p)
	}
}
