package influence

import (
	gm "chess-influence/goosemg"

	"github.com/pkg/errors"
)

// Position is the board surface the Calculator walks. Relocations are
// stack-disciplined: every undo returned by Relocate must be called, most
// recent first, before the caller sees the position again.
type Position interface {
	// Occupant reports the side of the piece on sq, if any.
	Occupant(sq Square) (Side, bool)
	// Reachable lists the squares the piece on sq attacks. An empty square reaches nothing.
	Reachable(sq Square) ([]Square, error)
	// Relocate moves the piece on from to to without legality checks and
	// returns the undo that puts both squares back.
	Relocate(from, to Square) (func(), error)
}

// SideOf maps board colors onto influence channels: White is First, Black is Second.
func SideOf(c gm.Color) Side {
	if c == gm.Black {
		return Second
	}
	return First
}

// BoardPosition adapts a goosemg board. It mutates the board in place during
// a walk and is therefore single-goroutine only; clone the board per worker.
type BoardPosition struct {
	board *gm.Board
}

var _ Position = (*BoardPosition)(nil)

func NewBoardPosition(b *gm.Board) *BoardPosition {
	return &BoardPosition{board: b}
}

func (p *BoardPosition) Occupant(sq Square) (Side, bool) {
	if !sq.Valid() {
		return First, false
	}
	piece := p.board.PieceAt(gm.Square(sq))
	if piece == gm.NoPiece {
		return First, false
	}
	return SideOf(piece.Color()), true
}

func (p *BoardPosition) Reachable(sq Square) ([]Square, error) {
	if !sq.Valid() {
		return nil, errors.Wrapf(ErrSquareOutOfRange, "reachable from %d", int(sq))
	}
	attacked := p.board.AttackedSquares(gm.Square(sq))
	out := make([]Square, len(attacked))
	for i, s := range attacked {
		out[i] = Square(s)
	}
	return out, nil
}

func (p *BoardPosition) Relocate(from, to Square) (func(), error) {
	if !from.Valid() || !to.Valid() {
		return nil, errors.Wrapf(ErrSquareOutOfRange, "relocate %d-%d", int(from), int(to))
	}
	return p.board.Relocate(gm.Square(from), gm.Square(to)), nil
}
