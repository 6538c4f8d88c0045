package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/pflag"
	"github.com/tomz197/santavirus/internal/audio"
	"github.com/tomz197/santavirus/internal/config"
	"github.com/tomz197/santavirus/internal/draw"
	"github.com/tomz197/santavirus/internal/loop/client"
)

const (
	hubShutdownTimeout    = 15 * time.Second
	serverShutdownTimeout = 5 * time.Second
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "addr", cfg.SSH.Addr(), "hostKey", cfg.SSH.HostKey,
		"maxSessions", cfg.SSH.MaxSessions, "workingDir", workingDir)

	hub := client.NewHub(cfg.SSH.MaxSessions, logger.WithPrefix("hub"))

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Addr()),
		wish.WithMiddleware(
			gameMiddleware(hub, cfg.Game, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", cfg.SSH.Addr())
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", hub.Len())

	// Notify players and wait for them to disconnect
	if remaining := hub.Shutdown(hubShutdownTimeout); remaining > 0 {
		logger.Warn("sessions still connected at shutdown", "sessions", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs a game client for each.
func gameMiddleware(hub *client.Hub, game config.GameConfig, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			session, err := hub.Register(sess.User())
			if err != nil {
				fmt.Fprintf(sess, "Sorry, %v. Please try again later.\n", err)
				logger.Warn("session refused", "user", sess.User(), "err", err)
				return
			}

			logger.Info("new game session", "session", session.ID, "user", sess.User(),
				"terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			clientOpts := client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Width:        game.Width,
				Height:       game.Height,
				FPS:          game.FPS,
				Audio:        audio.NewSilent(game.Music),
				Hub:          hub,
				Session:      session,
				Logger:       logger,
			}
			if game.Seed != 0 {
				clientOpts.Rand = rand.New(rand.NewSource(game.Seed))
			}

			c := client.NewClient(bufio.NewReader(sess), sess, clientOpts)
			if err := c.Run(); err != nil {
				logger.Error("game error", "session", session.ID, "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "session", session.ID, "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
