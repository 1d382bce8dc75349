package goosemg

import "math/bits"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return colorOf(p) }

// Letter returns the upper-case glyph of the piece type ("P", "N", ...), or "" for NoPiece.
func (p Piece) Letter() string {
	switch p.Type() {
	case PieceTypePawn:
		return "P"
	case PieceTypeKnight:
		return "N"
	case PieceTypeBishop:
		return "B"
	case PieceTypeRook:
		return "R"
	case PieceTypeQueen:
		return "Q"
	case PieceTypeKing:
		return "K"
	}
	return ""
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Castling rights bit flags
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ
)

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// Rank returns the 0-based rank (row) of the square.
func (sq Square) Rank() int { return int(sq) / 8 }

// File returns the 0-based file (column) of the square.
func (sq Square) File() int { return int(sq) % 8 }

// String returns the algebraic name of the square ("e4").
func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Board represents the chess board state, including piece placement and game state.
type Board struct {
	// Piece bitboards for each piece type and color (index 0 = white, 1 = black)
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	occupancy [2]uint64

	// Piece placement array for each square (0 = NoPiece, otherwise a Piece constant)
	pieces [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int

	// Zobrist hash key for the current piece placement and game state
	zobristKey uint64
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	b := &Board{enPassantSquare: NoSquare, fullmoveNumber: 1}
	b.zobristKey = b.ComputeZobrist()
	return b
}

// Clone returns an independent copy of the board. Boards hold no pointers,
// so a value copy is a full snapshot.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[0] | b.occupancy[1] }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[int(sq)] }

// OccupiedSquares lists every occupied square in ascending order.
func (b *Board) OccupiedSquares() []Square {
	occ := b.AllOccupancy()
	out := make([]Square, 0, bits.OnesCount64(occ))
	for occ != 0 {
		out = append(out, Square(popLSB(&occ)))
	}
	return out
}

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// typeBoard returns the per-type bitboard pair a piece belongs to.
func (b *Board) typeBoard(p Piece) *[2]uint64 {
	switch p.Type() {
	case PieceTypePawn:
		return &b.pawns
	case PieceTypeKnight:
		return &b.knights
	case PieceTypeBishop:
		return &b.bishops
	case PieceTypeRook:
		return &b.rooks
	case PieceTypeQueen:
		return &b.queens
	case PieceTypeKing:
		return &b.kings
	}
	return nil
}

// addPiece places a piece on an empty square and updates bitboards, occupancy and zobrist.
func (b *Board) addPiece(sq Square, p Piece) {
	set := b.typeBoard(p)
	if set == nil {
		return
	}
	ci := int(colorOf(p))
	b.pieces[int(sq)] = p
	b.occupancy[ci] |= bb(sq)
	set[ci] |= bb(sq)
	b.zobristKey ^= zobrist.piece[p][int(sq)]
}

// removePiece removes a piece from a square and updates bitboards, occupancy and zobrist.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	set := b.typeBoard(p)
	if set == nil {
		return NoPiece
	}
	ci := int(colorOf(p))
	b.pieces[int(sq)] = NoPiece
	b.occupancy[ci] &^= bb(sq)
	set[ci] &^= bb(sq)
	b.zobristKey ^= zobrist.piece[p][int(sq)]
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece, and keeps state in sync.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// Relocate moves the piece on 'from' to 'to', replacing whatever stands on 'to'.
// No legality is checked: side to move, castling and clocks are left alone.
// The returned closure undoes the relocation; closures must be called in LIFO order.
func (b *Board) Relocate(from, to Square) func() {
	if from == to || b.pieces[int(from)] == NoPiece {
		return func() {}
	}
	prevKey := b.zobristKey
	captured := b.removePiece(to)
	moving := b.removePiece(from)
	b.addPiece(to, moving)
	return func() {
		b.removePiece(to)
		b.addPiece(from, moving)
		b.addPiece(to, captured)
		b.zobristKey = prevKey
	}
}

// Validate checks internal consistency between pieces[], per-piece bitboards, and occupancy.
func (b *Board) Validate() bool {
	var shadow Board
	for sq := 0; sq < 64; sq++ {
		shadow.addPiece(Square(sq), b.pieces[sq])
	}
	if shadow.occupancy != b.occupancy {
		return false
	}
	if shadow.pawns != b.pawns || shadow.knights != b.knights || shadow.bishops != b.bishops ||
		shadow.rooks != b.rooks || shadow.queens != b.queens || shadow.kings != b.kings {
		return false
	}
	return b.zobristKey == b.ComputeZobrist()
}
