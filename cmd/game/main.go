package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/pflag"
	"github.com/tomz197/santavirus/internal/audio"
	"github.com/tomz197/santavirus/internal/audio/device"
	"github.com/tomz197/santavirus/internal/config"
	"github.com/tomz197/santavirus/internal/loop/client"
	"golang.org/x/term"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file if one is set.
	logOut, closeLog, err := config.OpenLogFile(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger, err := config.NewLogger(cfg.Log, logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}

	var out audio.Output = audio.NewSilent(cfg.Game.Music)
	engine := audio.NewEngine(audio.DefaultSampleRate, cfg.Game.Music)
	if err := device.Open(engine); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
	} else {
		out = engine
		defer device.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := client.ClientOptions{
		Width:  cfg.Game.Width,
		Height: cfg.Game.Height,
		FPS:    cfg.Game.FPS,
		Audio:  out,
		Logger: logger,
	}
	if cfg.Game.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Game.Seed))
	}

	c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, opts)
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
