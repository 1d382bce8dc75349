package goosemg

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENEmpty is a board with no pieces at all.
const FENEmpty = "8/8/8/8/8/8/8/8 w - - 0 1"

const fenPieces = "PNBRQK"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	if i := strings.IndexRune(fenPieces, ch); i >= 0 {
		return PieceFromType(White, PieceType(i+1))
	}
	if i := strings.IndexRune(strings.ToLower(fenPieces), ch); i >= 0 {
		return PieceFromType(Black, PieceType(i+1))
	}
	return NoPiece
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	letter := p.Letter()
	if letter == "" {
		return '?'
	}
	if p.Color() == Black {
		letter = strings.ToLower(letter)
	}
	return rune(letter[0])
}

// ParseFEN parses a FEN string and returns a new Board set up to that position.
// Only the placement, side to move, castling and en passant fields are required.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.Errorf("invalid FEN %q: not enough fields", fen)
	}

	board := &Board{enPassantSquare: NoSquare, fullmoveNumber: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.Errorf("invalid FEN %q: incorrect number of ranks", fen)
	}
	for i, rankStr := range ranks {
		rankIndex := 7 - i // first rank in the string is rank 8
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, errors.Errorf("invalid FEN %q: unrecognized piece character %q", fen, ch)
			}
			if file >= 8 {
				return nil, errors.Errorf("invalid FEN %q: too many squares in rank %d", fen, rankIndex+1)
			}
			board.addPiece(Square(rankIndex*8+file), piece)
			file++
		}
		if file != 8 {
			return nil, errors.Errorf("invalid FEN %q: rank %d does not have 8 columns", fen, rankIndex+1)
		}
	}

	switch fields[1] {
	case "w":
		board.sideToMove = White
	case "b":
		board.sideToMove = Black
	default:
		return nil, errors.Errorf("invalid FEN %q: side to move must be 'w' or 'b'", fen)
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				board.castlingRights |= CastlingWhiteK
			case 'Q':
				board.castlingRights |= CastlingWhiteQ
			case 'k':
				board.castlingRights |= CastlingBlackK
			case 'q':
				board.castlingRights |= CastlingBlackQ
			default:
				return nil, errors.Errorf("invalid FEN %q: invalid castling rights character %q", fen, ch)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid FEN %q: en passant square", fen)
		}
		board.enPassantSquare = sq
	}

	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, errors.Errorf("invalid FEN %q: halfmove clock is not a number", fen)
		}
		board.halfmoveClock = halfmove
	}
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, errors.Errorf("invalid FEN %q: fullmove number is not a number", fen)
		}
		board.fullmoveNumber = fullmove
	}

	board.zobristKey = board.ComputeZobrist()
	return board, nil
}

// ParseSquare converts an algebraic square name ("e4") to a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, errors.Errorf("invalid square %q", alg)
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, errors.Errorf("square %q out of range", alg)
	}
	return Square(int(rank-'1')*8 + int(file-'a')), nil
}

// ToFEN produces the FEN string representation of the board's current state.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[rank*8+file]
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(charFromPiece(p))
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for i, ch := range "KQkq" {
			if b.castlingRights&(CastlingRights(1)<<uint(i)) != 0 {
				sb.WriteRune(ch)
			}
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
