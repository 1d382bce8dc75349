package goosemg

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Precomputed attack masks for knights and kings from each square.
var knightMoves [64]uint64
var kingMoves [64]uint64

// Pawn attack masks: pawnAttacks[color][sq] gives bitboard of squares that a pawn of 'color' attacks from 'sq'.
var pawnAttacks [2][64]uint64

func init() {
	initAttackTables()
}

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// offsetMask collects every on-board square reachable from sq by one of the offsets.
func offsetMask(sq int, offsets [][2]int) uint64 {
	rank, file := sq/8, sq%8
	var mask uint64
	for _, off := range offsets {
		rf := rank + off[0]
		ff := file + off[1]
		if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
			mask |= uint64(1) << (rf*8 + ff)
		}
	}
	return mask
}

// initAttackTables precomputes attack bitboards for knights, kings, and pawn captures.
func initAttackTables() {
	for sq := 0; sq < 64; sq++ {
		knightMoves[sq] = offsetMask(sq, knightOffsets[:])
		kingMoves[sq] = offsetMask(sq, kingOffsets[:])
		// White pawns capture upward, black pawns downward.
		pawnAttacks[White][sq] = offsetMask(sq, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(sq, [][2]int{{-1, -1}, {-1, 1}})
	}
}

// Attacks returns the attack bitboard of the piece standing on sq, or 0 for an
// empty square. Slider rays stop on (and include) the first occupied square of
// either color.
func (b *Board) Attacks(sq Square) uint64 {
	p := b.pieces[int(sq)]
	occ := b.AllOccupancy()
	switch p.Type() {
	case PieceTypePawn:
		return pawnAttacks[colorOf(p)][int(sq)]
	case PieceTypeKnight:
		return knightMoves[int(sq)]
	case PieceTypeKing:
		return kingMoves[int(sq)]
	case PieceTypeBishop:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ)
	case PieceTypeRook:
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	case PieceTypeQueen:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ) |
			dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)
	}
	return 0
}

// AttackedSquares lists the squares attacked from sq in ascending order.
func (b *Board) AttackedSquares(sq Square) []Square {
	mask := b.Attacks(sq)
	out := make([]Square, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, Square(popLSB(&mask)))
	}
	return out
}

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	s := int(sq)
	byIdx := int(by)
	occ := b.AllOccupancy()

	// Pawn attacks via reverse mask
	if pawnAttacks[1-byIdx][s]&b.pawns[byIdx] != 0 {
		return true
	}
	if knightMoves[s]&b.knights[byIdx] != 0 {
		return true
	}
	if kingMoves[s]&b.kings[byIdx] != 0 {
		return true
	}
	rq := b.rooks[byIdx] | b.queens[byIdx]
	if dragontoothmg.CalculateRookMoveBitboard(uint8(s), occ)&rq != 0 {
		return true
	}
	bq := b.bishops[byIdx] | b.queens[byIdx]
	return dragontoothmg.CalculateBishopMoveBitboard(uint8(s), occ)&bq != 0
}

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(color Color) bool {
	kingBB := b.kings[int(color)]
	if kingBB == 0 {
		return false
	}
	return b.IsSquareAttacked(Square(bits.TrailingZeros64(kingBB)), 1-color)
}
