package engine

// LevelStats summarises a maze for level authors
type LevelStats struct {
	Rows             int         `json:"rows"`
	Cols             int         `json:"cols"`
	WalkableCells    int         `json:"walkable_cells"`
	Walls            int         `json:"walls"`
	DeadEnds         []Position  `json:"dead_ends"`
	Unreachable      []Position  `json:"unreachable"`
	StraightDistance int         `json:"straight_distance"`
	Solution         []Direction `json:"solution"`
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// CountCells counts the cells of a specific kind in the grid
func CountCells(grid *Grid, kind CellKind) int {
	count := 0
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if k, _ := grid.CellAt(row, col); k == kind {
				count++
			}
		}
	}
	return count
}

// WalkableNeighbours returns the walkable cells orthogonally adjacent to pos
func WalkableNeighbours(grid *Grid, pos Position) []Position {
	var out []Position
	for _, dir := range Directions {
		dx, dy, _ := dir.Delta()
		next := pos.Add(dy, dx)
		if grid.IsWalkable(next.Row, next.Col) {
			out = append(out, next)
		}
	}
	return out
}

// DeadEnds lists path cells other than the start with a single way out
func DeadEnds(grid *Grid) []Position {
	var out []Position
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			pos := Position{Row: row, Col: col}
			if k, _ := grid.CellAt(row, col); k != Path || pos == grid.Start() {
				continue
			}
			if len(WalkableNeighbours(grid, pos)) <= 1 {
				out = append(out, pos)
			}
		}
	}
	return out
}

// UnreachableCells lists walkable cells that cannot be reached from start
func UnreachableCells(grid *Grid) []Position {
	walk := reachableFrom(grid, grid.Start())

	var out []Position
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			pos := Position{Row: row, Col: col}
			if !grid.IsWalkable(row, col) {
				continue
			}
			if !walk.Visited(cellNode(grid, pos)) {
				out = append(out, pos)
			}
		}
	}
	return out
}

// AnalyzeLevel gathers LevelStats for grid. An unsolvable grid yields stats
// with an empty solution together with ErrGoalUnreachable.
func AnalyzeLevel(grid *Grid) (LevelStats, error) {
	stats := LevelStats{
		Rows:             grid.Rows(),
		Cols:             grid.Cols(),
		WalkableCells:    CountCells(grid, Path) + CountCells(grid, Goal),
		Walls:            CountCells(grid, Wall),
		DeadEnds:         DeadEnds(grid),
		StraightDistance: ManhattanDistance(grid.Start(), grid.Goal()),
		Unreachable:      UnreachableCells(grid),
	}

	solution, err := Solve(grid)
	if err != nil {
		return stats, err
	}
	stats.Solution = solution
	return stats, nil
}
