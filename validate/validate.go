// Command validate checks maze level files (.json and .hcl) in a directory
// or given on the command line. For each level it reports:
//   - parse errors for either syntax
//   - layout problems (row widths, characters, goal and start markers)
//   - whether the goal is reachable from the start
//   - walkable cells that cannot be reached, as a warning
//
// It exits with a non-zero status when any level is invalid.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/blockmaze/game/engine"
)

var errInvalidLevels = errors.New("some levels have errors")

// ValidationResult captures the outcome of validating a single file.
// Errors make the level invalid; Notes are informational and include
// warnings that do not.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

// validateLevel loads and validates a single level file
func validateLevel(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	fail := func(format string, args ...interface{}) ValidationResult {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fail("Failed to read file: %v", err)
	}

	config, err := engine.ParseMazeConfig(filePath, data)
	if err != nil {
		return fail("Invalid syntax: %v", err)
	}

	if err := engine.ValidateMazeConfig(config); err != nil {
		return fail("%v", strings.TrimPrefix(err.Error(), "config validation: "))
	}

	grid, err := engine.NewGridFromConfig(config)
	if err != nil {
		return fail("%v", err)
	}

	stats, err := engine.AnalyzeLevel(grid)
	if err != nil {
		return fail("%v", err)
	}

	if len(stats.Unreachable) > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("⚠ %d walkable cells unreachable from start: %s",
			len(stats.Unreachable), formatPositions(stats.Unreachable)))
	}
	if config.Messages == nil {
		result.Notes = append(result.Notes, "⚠ No messages block, built-in messages will be used")
	}

	result.Notes = append(result.Notes,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Grid: %d rows x %d cols", stats.Rows, stats.Cols),
		fmt.Sprintf("✓ Start %s, goal %s", grid.Start(), grid.Goal()),
		fmt.Sprintf("✓ Walkable cells: %d, dead ends: %d", stats.WalkableCells, len(stats.DeadEnds)),
		fmt.Sprintf("✓ Shortest solution: %d moves", len(stats.Solution)),
		fmt.Sprintf("✓ Timing: move %s, step delay %s", config.MoveDuration(), config.StepDelay()),
	)

	return result
}

func formatPositions(positions []engine.Position) string {
	parts := make([]string, 0, len(positions))
	for i, p := range positions {
		if i == 5 {
			parts = append(parts, fmt.Sprintf("and %d more", len(positions)-5))
			break
		}
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

// levelFiles lists the .json and .hcl files in dir, sorted by name
func levelFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.hcl"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// report validates every file, writes the results to w and reports whether
// all of them were valid
func report(w io.Writer, files []string, quiet bool) bool {
	allValid := true
	for _, file := range files {
		result := validateLevel(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			if !quiet {
				for _, note := range result.Notes {
					fmt.Fprintln(w, "  "+note)
				}
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All levels are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some levels have errors")
	}
	return allValid
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate maze level files",
		ArgsUsage: "[level files...]",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   "configs",
				Usage:   "directory scanned when no files are given",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only print the verdict for valid levels",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				if files, err = levelFiles(cmd.String("dir")); err != nil {
					return fmt.Errorf("error finding level files: %w", err)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no level files found in %s", cmd.String("dir"))
			}

			if !report(out, files, cmd.Bool("quiet")) {
				return errInvalidLevels
			}
			return nil
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidLevels) {
			log.Print(err)
		}
		os.Exit(1)
	}
}
