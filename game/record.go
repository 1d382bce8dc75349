// Package game turns a recorded chess game into the ordered positions reached
// after each move.
package game

import (
	"io"
	"os"

	gm "chess-influence/goosemg"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// ErrIllegalMove is returned when a move in a move list cannot be played.
var ErrIllegalMove = errors.New("game: illegal move")

// Record is a starting position plus the moves played from it.
type Record struct {
	start *chess.Position
	moves []*chess.Move
}

// ParsePGN reads the first game of a PGN stream.
func ParsePGN(r io.Reader) (*Record, error) {
	opt, err := chess.PGN(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse pgn")
	}
	g := chess.NewGame(opt)
	positions := g.Positions()
	if len(positions) == 0 {
		return nil, errors.New("parse pgn: game has no starting position")
	}
	return &Record{start: positions[0], moves: g.Moves()}, nil
}

// ReadPGNFile opens path and parses its first game.
func ReadPGNFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open game record %s", path)
	}
	defer f.Close()
	rec, err := ParsePGN(f)
	if err != nil {
		return nil, errors.Wrapf(err, "game record %s", path)
	}
	return rec, nil
}

// NewRecordFromMoves replays moves from startFEN (gm.FENStartPos if empty).
// Each move may be UCI ("g1f3") or SAN ("Nf3") and must be legal where played.
func NewRecordFromMoves(startFEN string, moves []string) (*Record, error) {
	if startFEN == "" {
		startFEN = gm.FENStartPos
	}
	opt, err := chess.FEN(startFEN)
	if err != nil {
		return nil, errors.Wrapf(err, "start position %q", startFEN)
	}
	pos := chess.NewGame(opt).Position()
	rec := &Record{start: pos}
	for i, text := range moves {
		m, err := decodeMove(pos, text)
		if err != nil {
			return nil, errors.Wrapf(err, "move %d (%s)", i+1, text)
		}
		rec.moves = append(rec.moves, m)
		pos = pos.Update(m)
	}
	return rec, nil
}

// decodeMove accepts UCI or SAN and returns the matching legal move of pos.
func decodeMove(pos *chess.Position, text string) (*chess.Move, error) {
	m, err := chess.UCINotation{}.Decode(pos, text)
	if err != nil {
		if m, err = (chess.AlgebraicNotation{}).Decode(pos, text); err != nil {
			return nil, errors.Wrap(ErrIllegalMove, "not UCI or SAN")
		}
	}
	for _, legal := range pos.ValidMoves() {
		if legal.S1() == m.S1() && legal.S2() == m.S2() && legal.Promo() == m.Promo() {
			return legal, nil
		}
	}
	return nil, ErrIllegalMove
}

// Len is the number of moves in the record.
func (r *Record) Len() int { return len(r.moves) }

// StartFEN is the FEN of the position before the first move.
func (r *Record) StartFEN() string { return r.start.String() }

// Sequencer returns a fresh one-shot replay of the record.
func (r *Record) Sequencer() *Sequencer {
	return &Sequencer{rec: r, pos: r.start}
}
