package influence_test

import (
	"bytes"
	"context"
	"math/bits"
	"testing"

	gm "chess-influence/goosemg"
	"chess-influence/influence"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// randomBoard scatters a few pieces of both colors over an otherwise empty board.
func randomBoard(rng *rand.Rand, pieces int) *gm.Board {
	b := gm.NewBoard()
	kinds := []gm.PieceType{gm.PieceTypePawn, gm.PieceTypeKnight, gm.PieceTypeBishop,
		gm.PieceTypeRook, gm.PieceTypeQueen, gm.PieceTypeKing}
	for placed := 0; placed < pieces; {
		sq := gm.Square(rng.Intn(64))
		if b.PieceAt(sq) != gm.NoPiece {
			continue
		}
		color := gm.Color(rng.Intn(2))
		b.SetPiece(sq, gm.PieceFromType(color, kinds[rng.Intn(len(kinds))]))
		placed++
	}
	return b
}

func TestStartPositionFirstHop(t *testing.T) {
	b, err := gm.ParseFEN(gm.FENStartPos)
	require.NoError(t, err)

	grid, err := influence.NewCalculator(influence.DefaultWeights()).ComputeBoard(b, 1)
	require.NoError(t, err)
	// 14 pawn + 6 knight + 4 bishop + 4 rook + 5 queen + 5 king attacks per side.
	require.Equal(t, 38.0, grid.Total(influence.First))
	require.Equal(t, 38.0, grid.Total(influence.Second))

	f3 := influence.SquareAt(2, 5)
	require.Equal(t, 3.0, grid.At(f3, influence.First), "e2 and g2 pawns plus g1 knight")
	require.Zero(t, grid.At(f3, influence.Second))
}

func TestLoneRookTwoHops(t *testing.T) {
	b := gm.NewBoard()
	b.SetPiece(0, gm.WhiteRook)

	grid, err := influence.NewCalculator(influence.DefaultWeights()).ComputeBoard(b, 2)
	require.NoError(t, err)
	// A lone rook always sees 14 squares; every first-hop square opens another 14.
	require.InDelta(t, 14+14*14*0.65, grid.Total(influence.First), 1e-9)
	require.Zero(t, grid.Total(influence.Second))
	require.Equal(t, gm.WhiteRook, b.PieceAt(0))
}

func TestEmptyBoardIsZero(t *testing.T) {
	grid, err := influence.NewCalculator(influence.DefaultWeights()).ComputeBoard(gm.NewBoard(), 3)
	require.NoError(t, err)
	require.True(t, grid.IsZero())
}

func TestRandomBoardProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(20240917))
	calc := influence.NewCalculator(influence.DefaultWeights())

	for i := 0; i < 25; i++ {
		b := randomBoard(rng, 2+rng.Intn(10))
		fen, hash := b.ToFEN(), b.Hash()

		var grids [4]*influence.Grid
		for depth := 1; depth <= 3; depth++ {
			grid, err := calc.ComputeBoard(b, depth)
			require.NoError(t, err)
			require.Equal(t, fen, b.ToFEN(), "board changed by depth %d walk", depth)
			require.Equal(t, hash, b.Hash())
			require.True(t, b.Validate())
			grids[depth] = grid
		}

		// First hop equals the number of attackers per side on each square.
		var counts [influence.NumSides][64]float64
		for _, sq := range b.OccupiedSquares() {
			side := influence.SideOf(b.PieceAt(sq).Color())
			mask := b.Attacks(sq)
			for mask != 0 {
				counts[side][bits.TrailingZeros64(mask)]++
				mask &= mask - 1
			}
		}
		for sq := influence.Square(0); sq < influence.NumSquares; sq++ {
			for _, side := range []influence.Side{influence.First, influence.Second} {
				require.Equal(t, counts[side][sq], grids[1].At(sq, side))
				require.LessOrEqual(t, grids[1].At(sq, side), grids[2].At(sq, side))
				require.LessOrEqual(t, grids[2].At(sq, side), grids[3].At(sq, side))
			}
		}

		again, err := calc.ComputeBoard(b, 3)
		require.NoError(t, err)
		require.Equal(t, *grids[3], *again, "compute must be deterministic")
	}
}

func TestComputeAllMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	calc := influence.NewCalculator(influence.DefaultWeights())

	boards := make([]*gm.Board, 12)
	hashes := make([]uint64, len(boards))
	for i := range boards {
		boards[i] = randomBoard(rng, 8)
		hashes[i] = boards[i].Hash()
	}

	grids, err := calc.ComputeAll(context.Background(), boards, 3, 4)
	require.NoError(t, err)
	require.Len(t, grids, len(boards))
	for i, b := range boards {
		require.Equal(t, hashes[i], b.Hash())
		want, err := calc.ComputeBoard(b, 3)
		require.NoError(t, err)
		require.Equal(t, *want, *grids[i])
	}

	_, err = calc.ComputeAll(context.Background(), boards, 0, 2)
	require.ErrorIs(t, err, influence.ErrInvalidDepth)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{0, 1, 4} {
		grids, err := calc.ComputeAll(ctx, boards, 3, workers)
		require.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
		require.Nil(t, grids)
	}
	for i, b := range boards {
		require.Equal(t, hashes[i], b.Hash())
	}
}

func TestCalculatorReportsToInjectedLogger(t *testing.T) {
	board, err := gm.ParseFEN(gm.FENStartPos)
	require.NoError(t, err)

	var buf bytes.Buffer
	calc := influence.NewCalculator(influence.DefaultWeights(),
		influence.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	_, err = calc.ComputeBoard(board, 1)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"message":"influence computed"`)
	require.Contains(t, buf.String(), `"max_depth":1`)
	require.NotContains(t, buf.String(), `"move"`)

	buf.Reset()
	tagged := calc.WithOptions(influence.WithLogger(calc.Logger().With().Int("move", 7).Logger()))
	_, err = tagged.ComputeBoard(board, 1)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"move":7`)

	buf.Reset()
	_, err = calc.ComputeBoard(board, 1)
	require.NoError(t, err)
	require.NotContains(t, buf.String(), `"move"`, "WithOptions must not change the original")
}
