// Package config provides level management for the block maze game.
//
// The config package handles:
//   - Loading maze levels from JSON or HCL files
//   - Level validation, including a reachability check of the goal
//   - Default level selection
//   - Level discovery and listing
//
// Level Format:
//
// Levels live in the configs directory, one file per level. A level defines
// a rectangular layout using '#' for walls, '.' for walkable cells, 'S' for
// the start and 'G' for the single goal, plus optional cell geometry, timing
// and message overrides. JSON and HCL files share the same field names:
//
//	name        = "Corridor"
//	description = "A straight drop followed by a short run to the goal"
//	layout      = ["#S##", "#..G"]
//	step_delay_ms = 150
//
//	messages {
//	  maze_solved = "Corridor cleared!"
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	level, err := manager.LoadConfig("corridor")
//	defaultLevel := manager.GetDefault()
//	levels, err := manager.ListConfigs()
//
// When no "classic" level is present the first valid level on disk becomes
// the default, and an empty directory falls back to the built-in maze.
package config
