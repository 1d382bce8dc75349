package influence

import "github.com/pkg/errors"

var (
	// ErrInvalidDepth is returned when the requested propagation depth is below one.
	ErrInvalidDepth = errors.New("influence: max depth must be at least 1")
	// ErrDepthBeyondWeights is returned when the depth exceeds the configured weight table.
	ErrDepthBeyondWeights = errors.New("influence: max depth exceeds the depth-weight table")
	// ErrInvalidWeights is returned for a malformed depth-weight table.
	ErrInvalidWeights = errors.New("influence: invalid depth-weight table")
	// ErrSquareOutOfRange is returned by positions asked about a square off the board.
	ErrSquareOutOfRange = errors.New("influence: square out of range")
)
