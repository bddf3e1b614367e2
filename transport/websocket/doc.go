// Package websocket provides the WebSocket transport for the block maze game.
//
// A central Hub keeps the connected clients grouped by session. Every scene
// event of a session is pushed to that session's clients as it happens, so a
// browser can animate a running program step by step.
//
// Message Protocol:
//
// Outgoing messages are JSON objects, one per frame:
//
//	{"session_id": "ab12", "event": "step", "data": {"type": "step", "step": 3, ...}}
//	{"session_id": "ab12", "event": "state_update", "state": {...}}
//
// Clients connect with the session in the query string (/ws?session=ab12)
// and only listen; commands go through the REST API.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	sessionManager.SetEventSink(hub.BroadcastEvent)
//
// Broadcasting never blocks the caller. When the queue is full new messages
// are dropped and logged, which keeps slow clients from stalling a scene.
package websocket
