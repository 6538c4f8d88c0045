package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/santavirus/internal/config"
	"github.com/tomz197/santavirus/internal/window"
)

func main() {
	// Flags and config files are unavailable in the browser, so only defaults
	// and environment variables apply here.
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}

	opts := window.Options{
		Width:  cfg.Game.Width,
		Height: cfg.Game.Height,
		Music:  cfg.Game.Music,
		Logger: logger,
	}
	if cfg.Game.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Game.Seed))
	}

	game, err := window.New(opts)
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("Santa vs Virus")
	ebiten.SetWindowSize(cfg.Game.Width, cfg.Game.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Game.FPS)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
