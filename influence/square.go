package influence

import "fmt"

// Side identifies one of the two players and one channel of a Grid.
type Side int

const (
	First Side = iota
	Second
)

// NumSides is the number of channels in a Grid.
const NumSides = 2

func (s Side) String() string {
	switch s {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Opponent returns the other side.
func (s Side) Opponent() Side { return 1 - s }

// Square is a board index in [0, 63]; row = index / 8, column = index % 8.
type Square int

const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// SquareAt returns the square at the given row and column.
func SquareAt(row, col int) Square { return Square(row*BoardSize + col) }

func (s Square) Row() int { return int(s) / BoardSize }

func (s Square) Col() int { return int(s) % BoardSize }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// String returns the algebraic name with row 0 as rank 1 and column 0 as file a.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	return string([]byte{'a' + byte(s.Col()), '1' + byte(s.Row())})
}
