// Package pipeline replays a game, computes one influence grid per position
// and hands the frames to a renderer in move order.
package pipeline

import (
	"context"
	"time"

	"chess-influence/game"
	gm "chess-influence/goosemg"
	"chess-influence/influence"
	"chess-influence/render"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrBoardChanged reports a position whose hash differs after its grid was
// computed. Every hypothetical relocation must be undone.
var ErrBoardChanged = errors.New("pipeline: board changed by influence walk")

// Frame pairs a position with the grid computed on it.
type Frame struct {
	Index int
	SAN   string
	Board *gm.Board
	Grid  *influence.Grid
}

// Collection is the ordered list of frames of one run, owned by the caller.
type Collection struct {
	Frames []Frame
}

func (c *Collection) Len() int { return len(c.Frames) }

// Render hands every frame to r in order.
func (c *Collection) Render(ctx context.Context, r render.Renderer) error {
	for _, f := range c.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Render(f.Grid, f.Board, f.Index); err != nil {
			return errors.Wrapf(err, "render move %d", f.Index)
		}
	}
	return nil
}

// Options controls a Run.
type Options struct {
	MaxDepth int
	// Workers > 1 materialises every position first and computes grids in
	// parallel; otherwise positions are computed as they are replayed.
	Workers int
}

// Collect replays seq to the end and computes a grid for every position.
func Collect(ctx context.Context, seq *game.Sequencer, calc *influence.Calculator, opts Options) (*Collection, error) {
	start := time.Now()
	coll := &Collection{Frames: make([]Frame, 0, seq.Remaining())}
	log.Debug().Int("moves", seq.Remaining()).Int("max_depth", opts.MaxDepth).Msg("replaying game")
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step, ok, err := seq.Next()
		if err != nil {
			return nil, errors.Wrap(err, "replay")
		}
		if !ok {
			break
		}
		frame := Frame{Index: step.Index, SAN: step.SAN, Board: step.Board}
		if opts.Workers <= 1 {
			if frame.Grid, err = computeStep(calc, step, opts.MaxDepth); err != nil {
				return nil, err
			}
		}
		coll.Frames = append(coll.Frames, frame)
	}

	if opts.Workers > 1 {
		boards := make([]*gm.Board, len(coll.Frames))
		for i, f := range coll.Frames {
			boards[i] = f.Board
		}
		grids, err := calc.ComputeAll(ctx, boards, opts.MaxDepth, opts.Workers)
		if err != nil {
			return nil, err
		}
		for i := range coll.Frames {
			coll.Frames[i].Grid = grids[i]
		}
	}

	log.Info().Int("positions", coll.Len()).Int("max_depth", opts.MaxDepth).
		Dur("elapsed", time.Since(start)).Msg("influence computed")
	return coll, nil
}

// computeStep computes the grid of one replayed position in place and checks
// the board hash survived the walk.
func computeStep(calc *influence.Calculator, step game.Step, maxDepth int) (*influence.Grid, error) {
	logger := calc.Logger().With().Int("move", step.Index).Str("san", step.SAN).Logger()
	before := step.Board.Hash()
	grid, err := calc.WithOptions(influence.WithLogger(logger)).ComputeBoard(step.Board, maxDepth)
	if err != nil {
		return nil, errors.Wrapf(err, "move %d (%s)", step.Index, step.SAN)
	}
	if after := step.Board.Hash(); after != before {
		return nil, errors.Wrapf(ErrBoardChanged, "move %d (%s): %016x != %016x", step.Index, step.SAN, after, before)
	}
	return grid, nil
}

// Run collects every frame of seq and renders them with r.
func Run(ctx context.Context, seq *game.Sequencer, calc *influence.Calculator, r render.Renderer, opts Options) (*Collection, error) {
	coll, err := Collect(ctx, seq, calc, opts)
	if err != nil {
		return nil, err
	}
	if err := coll.Render(ctx, r); err != nil {
		return nil, err
	}
	return coll, nil
}
