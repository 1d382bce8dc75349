package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chess-influence/game"
	gm "chess-influence/goosemg"
	"chess-influence/influence"
	"chess-influence/render"
)

// shell is a line-oriented command loop for querying influence of a single
// position:
//
//	position startpos [moves e2e4 ...]
//	position fen <fen> [moves ...]
//	weights 1 0.65 0.2
//	blocking on|off
//	go [depth N]
//	show
//	quit
type shell struct {
	out      io.Writer
	board    *gm.Board
	index    int
	weights  influence.Weights
	blocking bool
	depth    int
}

func newShell(out io.Writer) *shell {
	b, _ := gm.ParseFEN(gm.FENStartPos)
	w := influence.DefaultWeights()
	return &shell{out: out, board: b, weights: w, depth: w.MaxDepth()}
}

func (s *shell) info(args ...any) {
	fmt.Fprintln(s.out, append([]any{"info string"}, args...)...)
}

func (s *shell) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit":
			return
		case "position":
			s.position(tokens[1:])
		case "weights":
			s.setWeights(tokens[1:])
		case "blocking":
			if len(tokens) < 2 {
				s.info("Malformed blocking command")
				continue
			}
			s.blocking = strings.EqualFold(tokens[1], "on")
		case "go":
			s.compute(tokens[1:])
		case "show":
			fmt.Fprintln(s.out, s.board.ToFEN())
		default:
			s.info("Unknown command:", line)
		}
	}
}

func (s *shell) position(args []string) {
	if len(args) == 0 {
		s.info("Malformed position command")
		return
	}
	var fen string
	var moves []string
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = gm.FENStartPos
		args = args[1:]
	case "fen":
		i := 1
		for i < len(args) && strings.ToLower(args[i]) != "moves" {
			i++
		}
		fen = strings.Join(args[1:i], " ")
		args = args[i:]
		if fen == "" {
			s.info("Invalid fen position")
			return
		}
	default:
		s.info("Invalid position subcommand")
		return
	}
	if len(args) > 0 && strings.ToLower(args[0]) == "moves" {
		moves = args[1:]
	}

	rec, err := game.NewRecordFromMoves(fen, moves)
	if err != nil {
		s.info(err)
		return
	}
	board, err := gm.ParseFEN(rec.StartFEN())
	if err != nil {
		s.info(err)
		return
	}
	s.board, s.index = board, 0
	seq := rec.Sequencer()
	for {
		step, ok, err := seq.Next()
		if err != nil {
			s.info(err)
			return
		}
		if !ok {
			break
		}
		s.board, s.index = step.Board, step.Index
	}
}

func (s *shell) setWeights(args []string) {
	entries := make([]influence.DepthWeight, 0, len(args))
	for i, a := range args {
		w, err := strconv.ParseFloat(a, 64)
		if err != nil {
			s.info("Malformed weight", a)
			return
		}
		entries = append(entries, influence.DepthWeight{Depth: i + 1, Weight: w})
	}
	w, err := influence.NewWeights(entries...)
	if err != nil {
		s.info(err)
		return
	}
	s.weights, s.depth = w, w.MaxDepth()
}

func (s *shell) compute(args []string) {
	depth := s.depth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.info("Malformed go command option depth")
				return
			}
			d, err := strconv.Atoi(args[i+1])
			if err != nil {
				s.info("Malformed go command option; could not convert depth")
				return
			}
			depth = d
			i++
		default:
			s.info("Unknown go subcommand", args[i])
		}
	}

	var opts []influence.Option
	if s.blocking {
		opts = append(opts, influence.WithCaptureBlocking())
	}
	grid, err := influence.NewCalculator(s.weights, opts...).ComputeBoard(s.board, depth)
	if err != nil {
		s.info(err)
		return
	}
	if err := (render.TextRenderer{W: s.out}).Render(grid, s.board, s.index); err != nil {
		s.info(err)
	}
}
