package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// cellNode is the graph node of a cell
func cellNode(grid *Grid, p Position) simple.Node {
	return simple.Node(int64(p.Row*grid.Cols() + p.Col))
}

// WalkableGraph builds an undirected, unweighted graph whose nodes are the
// walkable cells and whose edges join orthogonal neighbours.
func WalkableGraph(grid *Grid) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if !grid.IsWalkable(row, col) {
				continue
			}
			here := Position{Row: row, Col: col}
			if g.Node(cellNode(grid, here).ID()) == nil {
				g.AddNode(cellNode(grid, here))
			}
			// Only right and down neighbours, so each edge is added once
			for _, next := range []Position{here.Add(0, 1), here.Add(1, 0)} {
				if !grid.IsWalkable(next.Row, next.Col) {
					continue
				}
				g.SetEdge(g.NewEdge(cellNode(grid, here), cellNode(grid, next)))
			}
		}
	}

	return g
}

// Solve returns the shortest list of directions that takes the actor from
// the start cell to the goal, or ErrGoalUnreachable. Among equally short
// solutions it prefers directions in the order of Directions.
func Solve(grid *Grid) ([]Direction, error) {
	g := WalkableGraph(grid)
	toGoal := path.DijkstraFrom(cellNode(grid, grid.Goal()), g)

	here := grid.Start()
	remaining := toGoal.WeightTo(cellNode(grid, here).ID())
	if math.IsInf(remaining, 1) {
		return nil, fmt.Errorf("%w: %s to %s", ErrGoalUnreachable, grid.Start(), grid.Goal())
	}

	dirs := make([]Direction, 0, int(remaining))
	for here != grid.Goal() {
		dir, next, ok := closerStep(grid, toGoal, here, remaining)
		if !ok {
			return nil, fmt.Errorf("%w: no step towards the goal from %s", ErrGoalUnreachable, here)
		}
		dirs = append(dirs, dir)
		here = next
		remaining--
	}

	return dirs, nil
}

// closerStep picks the first direction whose neighbour is one move closer
// to the goal
func closerStep(grid *Grid, toGoal path.Shortest, from Position, remaining float64) (Direction, Position, bool) {
	for _, dir := range Directions {
		dx, dy, _ := dir.Delta()
		next := from.Add(dy, dx)
		if !grid.IsWalkable(next.Row, next.Col) {
			continue
		}
		if toGoal.WeightTo(cellNode(grid, next).ID()) == remaining-1 {
			return dir, next, true
		}
	}
	return "", Position{}, false
}

// reachableFrom walks the walkable cells breadth first from start
func reachableFrom(grid *Grid, start Position) *traverse.BreadthFirst {
	g := WalkableGraph(grid)
	var walk traverse.BreadthFirst
	walk.Walk(g, cellNode(grid, start), nil)
	return &walk
}
