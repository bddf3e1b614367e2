package engine

// GoalEvaluator decides whether a resting position is on the goal cell
type GoalEvaluator struct {
	grid *Grid
}

// NewGoalEvaluator creates an evaluator for grid
func NewGoalEvaluator(grid *Grid) *GoalEvaluator {
	return &GoalEvaluator{grid: grid}
}

// Evaluate reports whether world position (x, y) lies on the goal cell
func (g *GoalEvaluator) Evaluate(x, y float64) bool {
	pos := g.grid.ToGrid(x, y)
	kind, err := g.grid.CellAt(pos.Row, pos.Col)
	return err == nil && kind == Goal
}
