package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"chess-influence/config"
	"chess-influence/game"
	"chess-influence/influence"
	"chess-influence/pipeline"
	"chess-influence/render"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	pgnPath := flag.String("pgn", "", "PGN game record to analyse")
	moves := flag.String("moves", "", "Space separated UCI/SAN moves (alternative to -pgn)")
	fen := flag.String("fen", "", "Start position for -moves (defaults to the initial position)")
	cfgPath := flag.String("config", "", "Optional YAML config file")
	depth := flag.Int("depth", 0, "Override max propagation depth")
	out := flag.String("out", "", "Override output directory")
	workers := flag.Int("workers", -1, "Override number of parallel workers")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	if *depth != 0 {
		cfg.MaxDepth = *depth
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var rec *game.Record
	switch {
	case *pgnPath != "":
		rec, err = game.ReadPGNFile(*pgnPath)
	case *moves != "":
		rec, err = game.NewRecordFromMoves(*fen, strings.Fields(*moves))
	default:
		fmt.Fprintln(os.Stderr, "one of -pgn or -moves is required")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("loading game")
	}

	calc, err := cfg.Calculator(influence.WithLogger(log.With().Str("component", "influence").Logger()))
	if err != nil {
		log.Fatal().Err(err).Msg("building calculator")
	}
	renderer := render.NewPNGRenderer(cfg.OutputDir, cfg.CellSize)
	if err := renderer.Prepare(); err != nil {
		log.Fatal().Err(err).Msg("preparing output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("moves", rec.Len()).Int("max_depth", cfg.MaxDepth).Str("out", cfg.OutputDir).Msg("analysing game")
	coll, err := pipeline.Run(ctx, rec.Sequencer(), calc, renderer, pipeline.Options{MaxDepth: cfg.MaxDepth, Workers: cfg.Workers})
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}
	fmt.Printf("Analysis complete. %d board states have been saved in the '%s' directory.\n", coll.Len(), cfg.OutputDir)
}
