package game

import (
	gm "chess-influence/goosemg"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Step is the position reached after one move.
type Step struct {
	Index int    // 1-based move number within the record
	SAN   string // the move in algebraic notation
	UCI   string // the move in UCI notation
	FEN   string
	Board *gm.Board
}

// Sequencer replays a Record one move at a time. It is lazy and cannot be
// rewound; ask the Record for a new Sequencer to start over.
type Sequencer struct {
	rec  *Record
	pos  *chess.Position
	next int
}

// Next plays the following move. It returns false once every move has been
// played, and keeps returning false afterwards.
func (s *Sequencer) Next() (Step, bool, error) {
	if s.next >= len(s.rec.moves) {
		return Step{}, false, nil
	}
	m := s.rec.moves[s.next]
	san := chess.AlgebraicNotation{}.Encode(s.pos, m)
	uci := chess.UCINotation{}.Encode(s.pos, m)
	pos := s.pos.Update(m)
	fen := pos.String()
	board, err := gm.ParseFEN(fen)
	if err != nil {
		return Step{}, false, errors.Wrapf(err, "position after move %d (%s)", s.next+1, san)
	}
	s.pos = pos
	s.next++
	return Step{
		Index: s.next,
		SAN:   san,
		UCI:   uci,
		FEN:   fen,
		Board: board,
	}, true, nil
}

// Remaining is the number of moves not yet played.
func (s *Sequencer) Remaining() int { return len(s.rec.moves) - s.next }
