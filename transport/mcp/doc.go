// Package mcp provides a Model Context Protocol server for the block maze.
//
// The server is a thin proxy: every tool call is translated into a request
// against the REST API and the JSON response is rendered as text for the
// agent.
//
// MCP Tools:
//
//   - create_session, get_session, list_sessions: session management
//   - maze_state: current maze with the robot drawn in
//   - describe_cell: inspect one cell by row and column
//   - compile_program: show the action script of a program
//   - run_program: run a program, optionally waiting for the outcome
//   - stop_program, reset_maze: run control
//   - move: single manual move while idle
//   - event_log: paginated event history
//   - list_configs, level_solution: level discovery and shortest solutions
//   - game_instructions: rules and block reference
//
// Programs are passed either as text ("start, move_down, move_forward")
// or as a list of block types.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
