package goosemg

import "math/rand"

// zobristKeys holds one random key per hashed board feature.
type zobristKeys struct {
	piece       [15][64]uint64
	castling    [16]uint64
	epFile      [8]uint64
	blackToMove uint64
}

// The seed is fixed so a position hashes the same in every process.
var zobrist = newZobristKeys(0xC0DE)

func newZobristKeys(seed int64) *zobristKeys {
	rnd := rand.New(rand.NewSource(seed))
	k := &zobristKeys{}
	for p := range k.piece {
		for sq := range k.piece[p] {
			k.piece[p][sq] = rnd.Uint64()
		}
	}
	for i := range k.castling {
		k.castling[i] = rnd.Uint64()
	}
	for i := range k.epFile {
		k.epFile[i] = rnd.Uint64()
	}
	k.blackToMove = rnd.Uint64()
	return k
}

// ComputeZobrist hashes the board from scratch. Hash returns the same value
// kept up to date by SetPiece, ClearSquare and Relocate.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	occ := b.AllOccupancy()
	for occ != 0 {
		sq := popLSB(&occ)
		key ^= zobrist.piece[b.pieces[sq]][sq]
	}
	if b.sideToMove == Black {
		key ^= zobrist.blackToMove
	}
	key ^= zobrist.castling[b.castlingRights&15]
	if b.enPassantSquare != NoSquare {
		key ^= zobrist.epFile[b.enPassantSquare.File()]
	}
	return key
}
