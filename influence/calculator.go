package influence

import (
	"context"

	gm "chess-influence/goosemg"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Calculator turns a position into a per-side influence grid by walking
// hypothetical piece relocations up to a bounded depth.
type Calculator struct {
	weights         Weights
	captureBlocking bool
	logger          zerolog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithCaptureBlocking stops the walk from continuing through a square held by
// the opposing side. The square itself is still credited.
func WithCaptureBlocking() Option {
	return func(c *Calculator) { c.captureBlocking = true }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) { c.logger = l }
}

func NewCalculator(weights Weights, opts ...Option) *Calculator {
	c := &Calculator{weights: weights, logger: log.Logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithOptions returns a copy of c with opts applied on top of its settings.
func (c *Calculator) WithOptions(opts ...Option) *Calculator {
	cp := *c
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Logger returns the logger Compute reports to.
func (c *Calculator) Logger() zerolog.Logger { return c.logger }

// Weights returns the depth-weight table in use.
func (c *Calculator) Weights() Weights { return c.weights }

// Compute returns the influence grid of pos. Every square reached at hop depth
// d adds weight(d) to the channel of the side owning the piece the walk started
// from. All relocations made during the walk are undone before Compute
// returns, including when a collaborator fails.
func (c *Calculator) Compute(pos Position, maxDepth int) (*Grid, error) {
	if maxDepth <= 0 {
		return nil, errors.Wrapf(ErrInvalidDepth, "got %d", maxDepth)
	}
	if maxDepth > c.weights.MaxDepth() {
		return nil, errors.Wrapf(ErrDepthBeyondWeights, "depth %d, table covers %d", maxDepth, c.weights.MaxDepth())
	}

	grid := &Grid{}
	for sq := Square(0); sq < NumSquares; sq++ {
		side, ok := pos.Occupant(sq)
		if !ok {
			continue
		}
		w := walk{calc: c, pos: pos, grid: grid, side: side, maxDepth: maxDepth}
		if err := w.spread(sq, 1); err != nil {
			return nil, errors.Wrapf(err, "influence of piece on %s", sq)
		}
	}
	c.logger.Debug().Int("max_depth", maxDepth).
		Float64("first", grid.Total(First)).Float64("second", grid.Total(Second)).
		Msg("influence computed")
	return grid, nil
}

// ComputeBoard is Compute over a goosemg board.
func (c *Calculator) ComputeBoard(b *gm.Board, maxDepth int) (*Grid, error) {
	return c.Compute(NewBoardPosition(b), maxDepth)
}

// ComputeAll computes one grid per board using up to workers goroutines
// (workers <= 0 means unbounded). Each job walks a private clone, so the
// input boards are never touched. Results keep input order.
func (c *Calculator) ComputeAll(ctx context.Context, boards []*gm.Board, maxDepth, workers int) ([]*Grid, error) {
	grids := make([]*Grid, len(boards))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, b := range boards {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, err := c.ComputeBoard(b.Clone(), maxDepth)
			if err != nil {
				return errors.Wrapf(err, "position %d", i)
			}
			grids[i] = grid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grids, nil
}

// walk is the state of one piece's propagation.
type walk struct {
	calc     *Calculator
	pos      Position
	grid     *Grid
	side     Side
	maxDepth int
}

// spread credits every square reachable from 'from' at depth, then follows
// each of them one hop deeper.
func (w *walk) spread(from Square, depth int) error {
	reached, err := w.pos.Reachable(from)
	if err != nil {
		return errors.Wrapf(err, "reachable from %s at depth %d", from, depth)
	}
	weight := w.calc.weights.Weight(depth)
	for _, to := range reached {
		w.grid.Add(to, w.side, weight)
	}
	if depth == w.maxDepth {
		return nil
	}
	for _, to := range reached {
		if w.calc.captureBlocking {
			if occupant, ok := w.pos.Occupant(to); ok && occupant != w.side {
				continue
			}
		}
		if err := w.hop(from, to, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// hop relocates the walking piece, spreads from its new square and always
// puts it back.
func (w *walk) hop(from, to Square, depth int) error {
	undo, err := w.pos.Relocate(from, to)
	if err != nil {
		return errors.Wrapf(err, "relocate %s-%s at depth %d", from, to, depth)
	}
	defer undo()
	return w.spread(to, depth)
}
