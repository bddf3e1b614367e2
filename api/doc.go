// Package api provides the HTTP REST API for the block maze game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Sessions side by side (?sessionIds=a,b or ?configName=classic)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session, stopping any run
//
// Program Execution:
//   - GET /api/sessions/{id}/state - Scene snapshot
//   - POST /api/sessions/{id}/compile - Compile a program into its action script
//   - POST /api/sessions/{id}/run - Run a program (409 while another run is active)
//   - POST /api/sessions/{id}/stop - Stop the running program
//   - POST /api/sessions/{id}/reset - Stop and return the actor to the start
//   - POST /api/sessions/{id}/move - Single manual move ({"direction": "down"})
//   - GET /api/sessions/{id}/events - Paginated event log (?page=1&limit=20&order=desc)
//
// Levels:
//   - GET /api/configs - List levels
//   - POST /api/configs - Save a level
//   - GET /api/configs/{name} - Get a level
//   - GET /api/configs/{name}/solution - Shortest solving program
//
// WebSocket:
//   - GET /ws?session={id} - Live scene events for a session
//
// Programs:
//
// Compile and run accept a block tree or a comma separated list of blocks:
//
//	{"program": {"blocks": [{"type": "start", "next": {"type": "move_down"}}]}}
//	{"text": "start, move_down, move_forward", "wait": true}
//
// A run returns 202 as soon as it starts. With "wait" set the request
// blocks until the program finishes and returns 200 with the run's events.
//
// Error Handling:
//
// Errors are returned as JSON with an appropriate HTTP status code:
//
//	{"error": "error message"}
package api
