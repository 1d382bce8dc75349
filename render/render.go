// Package render turns influence grids into viewable artifacts.
package render

import (
	gm "chess-influence/goosemg"
	"chess-influence/influence"
)

// Renderer consumes one grid together with the position it was computed on.
// index is the 1-based move number the position follows.
type Renderer interface {
	Render(grid *influence.Grid, board *gm.Board, index int) error
}
