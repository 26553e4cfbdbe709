package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"panedeck/internal/config"
	"panedeck/internal/editor"
	"panedeck/internal/jobs"
	"panedeck/internal/prompt"
	"panedeck/internal/splash"
	"panedeck/internal/term"
	"panedeck/internal/trace"
	"panedeck/internal/ui"
	"panedeck/internal/viewer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Printf("panedeck: starting, config=%q workers=%d", cfg.ConfigFile, cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	tp, err := trace.Setup(ctx)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			log.Printf("panedeck: trace shutdown: %v", err)
		}
	}()

	themes, err := ui.NewThemeSet(ui.DefaultThemes())
	if err != nil {
		return err
	}
	if cfg.Theme != "" {
		if err := themes.Select(cfg.Theme); err != nil {
			return fmt.Errorf("%w (available: %v)", err, themes.Names())
		}
	}

	screen, err := term.Open("")
	if err != nil {
		return err
	}
	defer screen.Close()

	pool := jobs.NewPool(cfg.Workers)
	defer func() {
		pool.Close()
		pool.Wait()
	}()

	p := prompt.New()
	keys := ui.DefaultGlobalKeys()
	hints := append([]key.Binding{p.Keys().Open}, keys.ShortHelp()...)

	ed := editor.New(editor.Config{
		Screen: screen,
		Input:  screen,
		Jobs:   pool,
		Themes: themes,
		Prompt: p,
		Splash: splash.New("panedeck", hints...),
		Open:   viewer.New,
		Keys:   &keys,
		Timing: editor.Timing{
			RedrawInterval: cfg.RedrawInterval,
			SustainedInput: cfg.SustainedInput,
			IdleSleep:      cfg.IdleSleep,
		},
	})
	for _, path := range cfg.Files {
		if err := ed.Open(path); err != nil {
			log.Printf("panedeck: %v", err)
			p.LogError(err.Error())
		}
	}

	err = ed.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// setupLogging sends log output to path, or discards it when path is empty.
// The terminal belongs to the editor, so nothing may be written to stderr
// while it runs.
func setupLogging(path string) (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
