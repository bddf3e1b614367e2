package engine

import (
	"fmt"
	"math"
)

// GridOptions places a grid in world space
type GridOptions struct {
	CellSize float64
	OriginX  float64
	OriginY  float64
}

// Grid is the static maze: cell semantics plus the transforms between
// world coordinates and cells. It is read-only after construction.
type Grid struct {
	cells    [][]CellKind
	start    Position
	goal     Position
	cellSize float64
	originX  float64
	originY  float64
}

// NewGridFromConfig builds the grid described by a level config
func NewGridFromConfig(config *MazeConfig) (*Grid, error) {
	return NewGrid(config.Layout, GridOptions{
		CellSize: config.EffectiveCellSize(),
		OriginX:  config.OriginX,
		OriginY:  config.OriginY,
	})
}

// NewGrid parses a layout of '#' walls, '.' paths, 'G' goal and 'S' start.
// When no start marker is present the start is the first path cell of the
// top row.
func NewGrid(layout []string, opts GridOptions) (*Grid, error) {
	if len(layout) < MinGridSize || len(layout) > MaxGridSize {
		return nil, fmt.Errorf("layout must have between %d and %d rows, got %d", MinGridSize, MaxGridSize, len(layout))
	}
	cols := len(layout[0])
	if cols < MinGridSize || cols > MaxGridSize {
		return nil, fmt.Errorf("layout must have between %d and %d columns, got %d", MinGridSize, MaxGridSize, cols)
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}

	g := &Grid{
		cells:    make([][]CellKind, len(layout)),
		cellSize: opts.CellSize,
		originX:  opts.OriginX,
		originY:  opts.OriginY,
	}

	goals, starts := 0, 0
	for row, line := range layout {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d must have %d characters, got %d", row+1, cols, len(line))
		}
		g.cells[row] = make([]CellKind, cols)
		for col := 0; col < cols; col++ {
			switch line[col] {
			case WallChar:
				g.cells[row][col] = Wall
			case PathChar:
				g.cells[row][col] = Path
			case StartChar:
				g.cells[row][col] = Path
				g.start = Position{Row: row, Col: col}
				starts++
			case GoalChar:
				g.cells[row][col] = Goal
				g.goal = Position{Row: row, Col: col}
				goals++
			default:
				return nil, fmt.Errorf("invalid character '%c' at row %d, col %d", line[col], row+1, col+1)
			}
		}
	}

	if goals != 1 {
		return nil, fmt.Errorf("layout must contain exactly one goal (G) cell, got %d", goals)
	}
	if starts > 1 {
		return nil, fmt.Errorf("layout must contain at most one start (S) cell, got %d", starts)
	}
	if starts == 0 {
		g.start = g.findStartCell()
		if !g.IsWalkable(g.start.Row, g.start.Col) {
			return nil, fmt.Errorf("layout has no start (S) cell and no path cell in the top row")
		}
	}

	return g, nil
}

// findStartCell returns the first path cell of the top row, or (0,1)
func (g *Grid) findStartCell() Position {
	for col, kind := range g.cells[0] {
		if kind == Path {
			return Position{Row: 0, Col: col}
		}
	}
	return Position{Row: 0, Col: 1}
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns
func (g *Grid) Cols() int { return len(g.cells[0]) }

// CellSize returns the world size of one cell
func (g *Grid) CellSize() float64 { return g.cellSize }

// Start returns the actor's start cell
func (g *Grid) Start() Position { return g.start }

// Goal returns the goal cell
func (g *Grid) Goal() Position { return g.goal }

// InBounds reports whether (row, col) lies within the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g.cells) && col >= 0 && col < len(g.cells[0])
}

// CellAt returns the kind of the cell, or ErrOutOfBounds
func (g *Grid) CellAt(row, col int) (CellKind, error) {
	if !g.InBounds(row, col) {
		return "", fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	return g.cells[row][col], nil
}

// IsWalkable reports whether the actor may occupy (row, col)
func (g *Grid) IsWalkable(row, col int) bool {
	kind, err := g.CellAt(row, col)
	if err != nil {
		return false
	}
	return kind == Path || kind == Goal
}

// ToGrid projects world coordinates onto a cell
func (g *Grid) ToGrid(x, y float64) Position {
	return Position{
		Row: int(math.Floor((y - g.originY) / g.cellSize)),
		Col: int(math.Floor((x - g.originX) / g.cellSize)),
	}
}

// ToWorld returns the world coordinates of the centre of a cell
func (g *Grid) ToWorld(pos Position) (x, y float64) {
	x = g.originX + float64(pos.Col)*g.cellSize + g.cellSize/2
	y = g.originY + float64(pos.Row)*g.cellSize + g.cellSize/2
	return x, y
}

// Layout renders the grid back to layout strings
func (g *Grid) Layout() []string {
	rows := make([]string, len(g.cells))
	for r, line := range g.cells {
		buf := make([]byte, len(line))
		for c, kind := range line {
			switch {
			case r == g.start.Row && c == g.start.Col:
				buf[c] = StartChar
			case kind == Goal:
				buf[c] = GoalChar
			case kind == Path:
				buf[c] = PathChar
			default:
				buf[c] = WallChar
			}
		}
		rows[r] = string(buf)
	}
	return rows
}
