package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/blockmaze/game/engine"
	"github.com/wricardo/mcp-training/blockmaze/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// APIError is a non-2xx response from the REST API
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Long enough for a waited run on a large level
			Timeout: 2 * time.Minute,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Block Maze",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Block Maze - MCP Interface

This is a thin client that proxies all requests to the REST API server.

OBJECTIVE:
Write a block program that walks the robot (R) from the start cell to the goal (G).

AVAILABLE TOOLS:
- maze_state: Get the current maze with the robot drawn in
- describe_cell: Inspect a single cell by row and column
- compile_program: Compile a program and show its action script without running it
- run_program: Run a program (optionally waiting for it to finish)
- stop_program: Stop the running program
- reset_maze: Stop and return the robot to the start cell
- move: Single manual move (forward/backward/up/down) - requires intent explanation
- event_log: View past events (steps, moves, solves)
- create_session / get_session / list_sessions: Session management
- list_configs: List available levels
- level_solution: Shortest solving program for a level
- game_instructions: Rules and block reference

NOTE: The 'intent' parameter on the move tool serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new maze session with optional level selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Level identifier from list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active maze sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Maze operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "maze_state",
		Description: "Get the current maze state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleMazeState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe the cell at a row and column (0-based, row 0 is the top)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row index, counted from the top",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column index, counted from the left",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	programProperties := map[string]interface{}{
		"session_id": sessionIDProperty(),
		"program": map[string]interface{}{
			"type":        "string",
			"description": "Blocks separated by commas or spaces, e.g. \"start, move_down, move_forward\" or \"start down forward\"",
		},
		"blocks": map[string]interface{}{
			"type":        "array",
			"description": "Alternative to program: ordered list of block types",
			"items": map[string]interface{}{
				"type": "string",
				"enum": []string{
					engine.BlockStart, engine.BlockMoveForward, engine.BlockMoveBackward,
					engine.BlockMoveUp, engine.BlockMoveDown,
				},
			},
		},
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compile_program",
		Description: "Compile a block program into its action script without running it",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: programProperties,
			Required:   []string{"session_id"},
		},
	}, c.handleCompileProgram)

	runProperties := map[string]interface{}{
		"wait": map[string]interface{}{
			"type":        "boolean",
			"description": "Wait for the program to finish and report the outcome (default true)",
		},
	}
	for k, v := range programProperties {
		runProperties[k] = v
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_program",
		Description: "Run a block program. Rejected while another program is running.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: runProperties,
			Required:   []string{"session_id"},
		},
	}, c.handleRunProgram)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "stop_program",
		Description: "Stop the running program. The robot finishes the move in flight.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleStopProgram)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_maze",
		Description: "Stop any program and put the robot back on the start cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleResetMaze)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the robot one cell while no program is running",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to move (forward is to the right)",
					"enum":        []string{"forward", "backward", "up", "down"},
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Why you are making this move",
				},
			},
			Required: []string{"session_id", "direction", "intent"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "event_log",
		Description: "Get the session's event log, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Events per page (default 20)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEventLog)

	// Levels
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available maze levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "level_solution",
		Description: "Get the shortest program that solves a level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Level identifier from list_configs",
				},
			},
			Required: []string{"config_id"},
		},
	}, c.handleLevelSolution)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the maze and the block reference",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: data}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// programText reads a program from either the "program" text or the
// "blocks" list
func programText(args map[string]interface{}) (string, error) {
	if text, _ := args["program"].(string); strings.TrimSpace(text) != "" {
		return text, nil
	}

	raw, _ := args["blocks"].([]interface{})
	blocks := make([]string, 0, len(raw))
	for _, b := range raw {
		if s, ok := b.(string); ok {
			blocks = append(blocks, s)
		}
	}
	if len(blocks) == 0 {
		return "", errors.New("program or blocks is required")
	}
	return strings.Join(blocks, ", "), nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s\n\n%s", session.ID, session.ConfigName, formatSceneState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.State != nil {
			status = fmt.Sprintf(", %s at %s", s.State.State, s.State.Position)
			if s.State.Solved {
				status += ", solved"
			}
		}
		fmt.Fprintf(&result, "- %s (Level: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleMazeState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.SceneState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSceneState(&state)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	var state engine.SceneState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeCell(&state, int(row), int(col))), nil
}

func (c *Client) handleCompileProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	text, err := programText(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.CompileResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/compile", sessionID), map[string]string{"text": text}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCompileResult(&result)), nil
}

func (c *Client) handleRunProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	text, err := programText(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	wait := true
	if w, ok := args["wait"].(bool); ok {
		wait = w
	}

	body := map[string]interface{}{
		"text": text,
		"wait": wait,
	}

	var result service.RunResult
	err = c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/run", sessionID), body, &result)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict && json.Unmarshal(apiErr.Body, &result) == nil {
		// Run rejected because another program is active
		return mcp.NewToolResultText(formatRunResult(&result)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunResult(&result)), nil
}

func (c *Client) handleStopProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.StopResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/stop", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := "No program was running"
	if result.Stopped {
		header = "⏹ Program stopped"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", header, formatSceneState(result.State))), nil
}

func (c *Client) handleResetMaze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.SceneState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatSceneState(response.State))), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	var result service.MoveResult
	err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), map[string]string{"direction": direction}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleEventLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var log service.EventLogResponse
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/events%s", sessionID, params), nil, &log); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEventLog(&log)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Levels:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&result, "• %s (config_id: %s, %s)\n  %s\n  Grid: %d rows x %d cols\n\n",
			config.Name, config.ConfigID, config.Format, config.Description, config.Rows, config.Cols)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleLevelSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configID, _ := arguments(request)["config_id"].(string)

	var solution service.SolutionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/configs/%s/solution", configID), nil, &solution); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dirs := make([]string, len(solution.Directions))
	for i, d := range solution.Directions {
		dirs[i] = string(d)
	}

	result := fmt.Sprintf("Shortest solution for %s (%d moves):\nstart, %s\n\nScript: %s",
		solution.ConfigID, solution.Moves, strings.Join(dirs, ", "), solution.Script)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🤖 Block Maze - Complete Instructions

OBJECTIVE:
Guide the robot (R) from the start cell to the goal (G) by writing a block program.

GRID LEGEND:
• R - The robot (your current position)
• S - Start cell (shown when the robot is elsewhere)
• G - Goal cell - reaching it solves the maze
• . - Path - walkable
• # - Wall - the robot refuses to enter walls and stays put

COORDINATES:
• Positions are written (row,col), both 0-based
• Row 0 is the TOP row; col 0 is the LEFT column

BLOCKS:
• start          - Entry marker, does nothing on its own
• move_forward   - One cell to the RIGHT (col + 1)
• move_backward  - One cell to the LEFT  (col - 1)
• move_up        - One cell UP   (row - 1)
• move_down      - One cell DOWN (row + 1)

The robot has no facing: forward ALWAYS means right, no matter what came before.

PROGRAMS:
• Write blocks separated by commas or spaces: "start, move_down, move_forward"
• Direction names work too: "start down down forward"
• Every block runs in order, one cell per block, with a short pause between steps
• A move into a wall is skipped; the program keeps going with the next block
• Reaching the goal solves the maze; the program still runs to its end

RUN CONTROL:
• run_program rejects a new run while one is active - stop or wait first
• stop_program halts after the move in flight; the robot stays where it stopped
• reset_maze stops and returns the robot to the start cell
• move makes a single manual step and only works while no program is running

STRATEGY:
1. Call maze_state and read the rows top to bottom
2. Locate R and G, and trace a path through '.' cells
3. Use compile_program to check your script before running it
4. run_program with wait=true to see the outcome and the final position
5. If it failed, inspect event_log to find the first rejected move

Good luck reaching the goal! 🏁`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nLevel: %s\nCreated: %s\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"))
	if session.Program != nil {
		result += fmt.Sprintf("Last program: %s\n", engine.Compile(session.Program))
	}
	return result + "\n" + formatSceneState(session.State)
}

func formatSceneState(state *engine.SceneState) string {
	if state == nil {
		return "No maze state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Level: %s | Position: %s | Goal: %s | State: %s",
		state.LevelName, state.Position, state.Goal, strings.ToUpper(string(state.State)))
	if state.ScriptLength > 0 {
		fmt.Fprintf(&result, " | Step: %d/%d", state.Cursor, state.ScriptLength)
	}
	result.WriteString("\n\n")

	for _, row := range state.Rows {
		result.WriteString(row)
		result.WriteString("\n")
	}

	if state.Solved {
		result.WriteString("\n🎉 SOLVED!")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatCompileResult(result *service.CompileResult) string {
	return fmt.Sprintf("Compiled %d actions:\n%s", result.Length, result.Script)
}

func formatRunResult(result *service.RunResult) string {
	var response strings.Builder

	switch {
	case !result.Started:
		response.WriteString("✗ Run rejected: a program is already running. Stop it or wait for it to finish.\n")
	case result.Waited && result.Solved:
		fmt.Fprintf(&response, "✓ Run %s finished - maze solved\n", result.RunID)
	case result.Waited:
		fmt.Fprintf(&response, "✗ Run %s finished - goal not reached\n", result.RunID)
	default:
		fmt.Fprintf(&response, "▶ Run %s started\n", result.RunID)
	}

	fmt.Fprintf(&response, "Script (%d actions): %s\n", result.Script.Len(), result.Script)

	if steps := formatSteps(result.Events); steps != "" {
		response.WriteString("\nSteps:\n")
		response.WriteString(steps)
	}

	if result.Message != "" {
		fmt.Fprintf(&response, "\nMessage: %s\n", result.Message)
	}

	response.WriteString("\n")
	response.WriteString(formatSceneState(result.State))
	return response.String()
}

func formatSteps(events []engine.Event) string {
	var b strings.Builder
	for _, e := range events {
		if e.Type != engine.EventStep || e.Action == nil {
			continue
		}
		status := "✓"
		if !e.Accepted {
			status = "✗ blocked"
		}
		fmt.Fprintf(&b, "  %d. %s at %s %s\n", e.Step+1, e.Action, e.Position, status)
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Accepted {
		response = fmt.Sprintf("✓ Moved %s %s→%s\n", result.Direction, result.From, result.To)
	} else {
		response = fmt.Sprintf("✗ Move %s blocked at %s\n", result.Direction, result.From)
	}

	if result.Solved {
		response += "🎉 Goal reached!\n"
	}
	if result.Message != "" {
		response += fmt.Sprintf("Message: %s\n", result.Message)
	}

	return response + "\n" + formatSceneState(result.State)
}

func formatEventLog(log *service.EventLogResponse) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Event Log (Page %d/%d, Total: %d events):\n\n",
		log.Page, log.TotalPages, log.TotalEvents)

	for _, e := range log.Events {
		fmt.Fprintf(&result, "[%s] %s", e.Timestamp.Format("15:04:05.000"), e.Type)
		if e.Action != nil {
			fmt.Fprintf(&result, " %s", e.Action)
			if !e.Accepted {
				result.WriteString(" (blocked)")
			}
		}
		fmt.Fprintf(&result, " at %s", e.Position)
		if e.Message != "" {
			fmt.Fprintf(&result, " - %s", e.Message)
		}
		result.WriteString("\n")
	}

	if log.HasNext {
		result.WriteString("\n(more events on the next page)")
	}

	return result.String()
}

func describeCell(state *engine.SceneState, row, col int) string {
	rows := len(state.Rows)
	if row < 0 || row >= rows || col < 0 || col >= len(state.Rows[row]) {
		cols := 0
		if rows > 0 {
			cols = len(state.Rows[0])
		}
		return fmt.Sprintf("Cell (%d,%d) is out of bounds. Grid is %d rows x %d cols (rows 0-%d, cols 0-%d)",
			row, col, rows, cols, rows-1, cols-1)
	}

	pos := engine.Position{Row: row, Col: col}
	char := state.Rows[row][col]

	var kind, description string
	switch {
	case pos == state.Position:
		kind = "Robot"
		description = "The robot's current position"
		if pos == state.Goal {
			description += " (on the goal)"
		}
	case char == engine.WallChar:
		kind = "Wall"
		description = "Not walkable - moves into this cell are skipped"
	case char == engine.GoalChar || pos == state.Goal:
		kind = "Goal"
		description = "Reaching this cell solves the maze"
	case char == engine.StartChar || pos == state.Start:
		kind = "Start"
		description = "Where the robot begins and returns on reset"
	default:
		kind = "Path"
		description = "Walkable"
	}

	return fmt.Sprintf("Cell (%d,%d): '%c' %s\n%s", row, col, char, kind, description)
}
