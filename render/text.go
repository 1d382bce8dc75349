package render

import (
	"fmt"
	"io"
	"strings"

	gm "chess-influence/goosemg"
	"chess-influence/influence"

	"github.com/pkg/errors"
)

// TextRenderer prints a grid as two 8x8 tables, rank 8 first, with the
// piece letter (lower case for Second) after each value.
type TextRenderer struct {
	W io.Writer
}

func (r TextRenderer) Render(grid *influence.Grid, board *gm.Board, index int) error {
	_, err := io.WriteString(r.W, Text(grid, board, index))
	return errors.Wrap(err, "write influence table")
}

// Text formats one frame.
func Text(grid *influence.Grid, board *gm.Board, index int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "move %d\n", index)
	for _, side := range []influence.Side{influence.First, influence.Second} {
		fmt.Fprintf(&sb, "%s (total %.2f)\n", side, grid.Total(side))
		for row := influence.BoardSize - 1; row >= 0; row-- {
			fmt.Fprintf(&sb, "%d ", row+1)
			for col := 0; col < influence.BoardSize; col++ {
				sq := influence.SquareAt(row, col)
				fmt.Fprintf(&sb, " %6.2f%s", grid.At(sq, side), glyph(board, sq))
			}
			sb.WriteByte('\n')
		}
		sb.WriteString("  ")
		for col := 0; col < influence.BoardSize; col++ {
			fmt.Fprintf(&sb, " %6c ", 'a'+col)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(board *gm.Board, sq influence.Square) string {
	p := board.PieceAt(gm.Square(sq))
	if p == gm.NoPiece {
		return "."
	}
	if p.Color() == gm.Black {
		return strings.ToLower(p.Letter())
	}
	return p.Letter()
}
