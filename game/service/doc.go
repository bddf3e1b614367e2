// Package service provides the business logic layer for the block maze game.
//
// The service package implements:
//   - Multi-session maze management
//   - Program compilation and execution per session
//   - Manual single-step moves
//   - A bounded event log per session
//   - Level listing, saving and solving
//
// Core Interfaces:
//
// GameService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads maze levels.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine. Each session owns one engine.Scene; runs execute in the
// background and report progress as events, which the session records and
// forwards to an optional EventSink.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	program, _ := engine.ParseProgram("start forward down down")
//	result, err := gameService.Run(ctx, info.ID, program, true)
package service
