package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runShell(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	newShell(&out).loop(strings.NewReader(script))
	return out.String()
}

func TestShellStartPositionDepthOne(t *testing.T) {
	out := runShell(t, "position startpos\ngo depth 1\nquit\ngo depth 1\n")
	require.Equal(t, 1, strings.Count(out, "move 0"), "commands after quit are ignored")
	require.Contains(t, out, "first (total 38.00)")
}

func TestShellPositionWithMoves(t *testing.T) {
	out := runShell(t, "position startpos moves e2e4 e7e5 Nf3\nshow\n")
	require.Contains(t, out, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq")

	out = runShell(t, "position fen 8/8/8/8/8/8/8/R3K2k w - - 0 1 moves a1a2\nshow\n")
	require.Contains(t, out, "8/8/8/8/8/8/R7/4K2k b")
}

func TestShellReportsErrors(t *testing.T) {
	out := runShell(t, strings.Join([]string{
		"position startpos moves e2e5",
		"go depth 0",
		"go depth 9",
		"weights 1 x",
		"weights 1 -1",
		"bogus",
		"position",
	}, "\n"))
	require.Equal(t, 7, strings.Count(out, "info string"))
	require.Contains(t, out, "illegal move")
	require.Contains(t, out, "max depth must be at least 1")
	require.Contains(t, out, "Unknown command: bogus")
}

func TestShellWeights(t *testing.T) {
	// Rook a1 sees 14 squares and king h1 three, each worth 2 at the only depth.
	out := runShell(t, "position fen 7k/8/8/8/8/8/8/R6K w - - 0 1\nweights 2\ngo\n")
	require.Contains(t, out, "first (total 34.00)")
	require.Contains(t, out, "second (total 6.00)")
}
