// Command blockrun runs block programs against a maze level without a
// server. It compiles the program, executes it on a headless scene and
// prints each step as it happens.
//
//	blockrun run --level configs/classic.json "start, down, forward"
//	blockrun compile "start move_down move_forward"
//	blockrun solve --level configs/corridor.hcl
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

var errNotSolved = errors.New("program finished without reaching the goal")

func levelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "level file (.json or .hcl); the built-in maze when empty",
	}
}

// loadLevel reads the level named by the --level flag, applying the timing
// overrides when timing is set
func loadLevel(cmd *cli.Command, timing bool) (*engine.MazeConfig, error) {
	var mazeConfig *engine.MazeConfig
	if path := cmd.String("level"); path != "" {
		var err error
		if mazeConfig, err = engine.LoadMazeConfig(path); err != nil {
			return nil, fmt.Errorf("failed to load level: %w", err)
		}
	} else {
		mazeConfig = engine.DefaultMazeConfig()
	}

	if !timing {
		return mazeConfig, nil
	}
	if d := cmd.Duration("move-duration"); d > 0 {
		mazeConfig.MoveDurationMs = int(d / time.Millisecond)
	}
	if d := cmd.Duration("step-delay"); d > 0 {
		mazeConfig.StepDelayMs = int(d / time.Millisecond)
	}
	return mazeConfig, nil
}

// programArg parses the program given as positional arguments
func programArg(cmd *cli.Command) (*engine.Program, error) {
	text := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("a program is required, e.g. \"start, down, forward\"")
	}
	return engine.ParseProgram(text)
}

// printEvent writes a one-line description of a scene event
func printEvent(w io.Writer, e engine.Event) {
	switch e.Type {
	case engine.EventStep:
		status := "ok"
		if !e.Accepted {
			status = "blocked"
		}
		fmt.Fprintf(w, "  %2d. %-16s %-8s at %s\n", e.Step+1, e.Action, status, e.Position)
	case engine.EventMove:
		// Moves are already reported by their step
	default:
		fmt.Fprintf(w, "  [%s] %s %s\n", e.Type, e.Position, e.Message)
	}
}

// forwardEvents sends scene events to events until quit is closed, after
// which they are dropped
func forwardEvents(events chan<- engine.Event, quit <-chan struct{}) engine.EventHandler {
	return func(e engine.Event) {
		select {
		case events <- e:
		case <-quit:
		}
	}
}

// runProgram executes program on a fresh scene for mazeConfig and reports
// whether the goal was reached
func runProgram(ctx context.Context, w io.Writer, mazeConfig *engine.MazeConfig, program *engine.Program) (bool, error) {
	events := make(chan engine.Event, 64)
	quit := make(chan struct{})
	scene, err := engine.NewScene(mazeConfig, nil, forwardEvents(events, quit))
	if err != nil {
		return false, err
	}

	script := scene.Compile(program)
	fmt.Fprintf(w, "Level: %s\nScript (%d actions): %s\n\n", mazeConfig.Name, script.Len(), script)

	if !scene.RunScript(script) {
		return false, engine.ErrRunInProgress
	}

	done := make(chan struct{})
	go func() {
		scene.Wait()
		close(done)
	}()

	for {
		select {
		case e := <-events:
			printEvent(w, e)
		case <-ctx.Done():
			close(quit)
			scene.Stop()
			return false, ctx.Err()
		case <-done:
			// Drain whatever the run emitted before it settled
			for {
				select {
				case e := <-events:
					printEvent(w, e)
				default:
					state := scene.Snapshot()
					fmt.Fprintf(w, "\n%s\n", strings.Join(state.Rows, "\n"))
					fmt.Fprintf(w, "\nFinal position: %s\n", state.Position)
					return state.Solved, nil
				}
			}
		}
	}
}

func newCommand(out io.Writer) *cli.Command {
	runFlags := []cli.Flag{
		levelFlag(),
		&cli.DurationFlag{
			Name:  "move-duration",
			Usage: "override the level's move animation length",
		},
		&cli.DurationFlag{
			Name:  "step-delay",
			Usage: "override the level's pause between actions",
		},
	}

	return &cli.Command{
		Name:   "blockrun",
		Usage:  "run block programs against maze levels",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a program and report whether it reaches the goal",
				ArgsUsage: "<program>",
				Flags:     runFlags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					mazeConfig, err := loadLevel(cmd, true)
					if err != nil {
						return err
					}
					program, err := programArg(cmd)
					if err != nil {
						return err
					}

					solved, err := runProgram(ctx, out, mazeConfig, program)
					if err != nil {
						return err
					}
					if !solved {
						fmt.Fprintln(out, "✗ Goal not reached")
						return errNotSolved
					}
					fmt.Fprintln(out, "✓ Maze solved")
					return nil
				},
			},
			{
				Name:      "compile",
				Usage:     "print the action script of a program",
				ArgsUsage: "<program>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					program, err := programArg(cmd)
					if err != nil {
						return err
					}
					script := engine.Compile(program)
					fmt.Fprintf(out, "%d actions: %s\n", script.Len(), script)
					return nil
				},
			},
			{
				Name:  "solve",
				Usage: "print the shortest program that solves a level",
				Flags: []cli.Flag{levelFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					mazeConfig, err := loadLevel(cmd, false)
					if err != nil {
						return err
					}
					grid, err := engine.NewGridFromConfig(mazeConfig)
					if err != nil {
						return err
					}
					dirs, err := engine.Solve(grid)
					if err != nil {
						return err
					}

					parts := make([]string, 0, len(dirs)+1)
					parts = append(parts, engine.BlockStart)
					for _, d := range dirs {
						parts = append(parts, string(d))
					}
					fmt.Fprintf(out, "%s (%d moves)\n", strings.Join(parts, ", "), len(dirs))
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errNotSolved) {
			log.Print(err)
		}
		os.Exit(1)
	}
}
