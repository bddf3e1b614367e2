// Package engine provides the visual-program execution engine of the block
// maze game.
//
// The engine compiles a learner's block program into an ActionScript and
// executes it against a grid maze:
//   - Grid holds the static maze and maps world coordinates to cells
//   - MotionController moves the actor one cell at a time, never two at once
//   - Compile turns a block tree into an ordered list of actions
//   - Scheduler steps through a script with a fixed delay between actions
//   - GoalEvaluator checks every resting position against the goal cell
//
// Core Types:
//
// Scene owns one instance of each collaborator and reports what happens as
// Events. MazeConfig describes a level and is loaded from JSON or HCL files.
// Renderer is the rendering handle; TweenRenderer is the headless version
// used by the server.
//
// Usage:
//
//	config, err := engine.LoadMazeConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scene, err := engine.NewScene(config, nil, func(e engine.Event) {
//		log.Printf("%s %s", e.Type, e.Position)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	program, _ := engine.ParseProgram("start forward down down forward")
//	scene.Run(program)
//	scene.Wait()
//
// Movement Rules:
//
// The actor has no facing. FORWARD and BACKWARD move along +x and -x, UP and
// DOWN along -y and +y. A move into a wall or off the grid is rejected and
// the actor stays put; the program carries on with its next action after the
// usual step delay.
package engine
