// Package session provides session management for the block maze game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Forwarding of scene events to a shared sink
//   - File persistence of sessions across restarts
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine.Scene together with metadata like
// creation time, last access time and the last submitted program.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// cryptographic randomness. Lookups are case-insensitive.
//
// Persistence:
//
// FilePersistence stores one JSON file per session holding the level id,
// timestamps, the actor's resting cell and the last program. Programs are
// not resumed on load; a restored session starts idle.
//
// Usage:
//
//	manager := session.NewManager()
//	manager.SetEventSink(hub.BroadcastEvent)
//
//	sess, err := manager.Create("", "classic", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
package session
