package influence

// Grid holds unnormalised, per-side accumulated influence for every square,
// indexed as grid[row][col][side].
type Grid [BoardSize][BoardSize][NumSides]float64

// Add accumulates weight for side on sq.
func (g *Grid) Add(sq Square, side Side, weight float64) {
	g[sq.Row()][sq.Col()][side] += weight
}

// At returns the accumulated influence of side on sq.
func (g *Grid) At(sq Square, side Side) float64 {
	return g[sq.Row()][sq.Col()][side]
}

// Total sums one side's channel over the whole board.
func (g *Grid) Total(side Side) float64 {
	var sum float64
	for row := range g {
		for col := range g[row] {
			sum += g[row][col][side]
		}
	}
	return sum
}

// Share returns the fraction of the total influence on sq held by side, and
// false when neither side reaches the square.
func (g *Grid) Share(sq Square, side Side) (float64, bool) {
	cell := g[sq.Row()][sq.Col()]
	total := cell[First] + cell[Second]
	if total == 0 {
		return 0, false
	}
	return cell[side] / total, true
}

// IsZero reports whether no square carries any influence.
func (g *Grid) IsZero() bool {
	return *g == Grid{}
}
