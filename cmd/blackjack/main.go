package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/config"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/game"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/randutil"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/scheduler"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/strategytrack"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/tui"
)

type CLI struct {
	Config   string `short:"c" help:"Path to HCL config file" default:"blackjack.hcl"`
	Decks    int    `help:"Number of decks in the shoe (overrides config)"`
	Bankroll int    `help:"Starting bankroll (overrides config)"`
	Seed     int64  `help:"Shuffle seed for reproducible sessions (overrides config)"`
	Debug    bool   `help:"Enable debug logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("A blackjack trainer that grades every decision against basic strategy."))

	if err := run(cli); err != nil {
		log.Fatal("Failed to run trainer", "error", err)
	}
	ctx.Exit(0)
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cli.Decks != 0 {
		cfg.Game.Decks = cli.Decks
	}
	if cli.Bankroll != 0 {
		cfg.Game.Bankroll = cli.Bankroll
	}
	if cli.Seed != 0 {
		cfg.Game.Seed = cli.Seed
	}

	// Log to a file so the TUI owns the terminal
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logLevel := log.InfoLevel
	if cli.Debug {
		logLevel = log.DebugLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           logLevel,
	})

	seed := randutil.NewSeed(cfg.Game.Seed)
	logger.Info("Starting session",
		"decks", cfg.Game.Decks,
		"bankroll", cfg.Game.Bankroll,
		"minBet", cfg.Game.MinBet,
		"seed", seed)

	engine := game.NewEngine(
		game.WithRules(cfg.Rules()),
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
	)
	tracker := strategytrack.New()

	// The scheduler dispatches into the TUI's message loop so every
	// transition is applied on the one goroutine that owns the state.
	var program *tea.Program
	sched := scheduler.New(quartz.NewReal(), cfg.DealerDelay(), logger, func(action game.Action) {
		program.Send(tui.DealerStepMsg{Action: action})
	})

	model := tui.NewModel(engine, sched, tracker, logger)
	program = tea.NewProgram(model, tea.WithAltScreen())

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, runCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			program.Quit()
		case <-runCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("TUI exited with error: %w", err)
	}
	sched.Stop()
	logger.Info("Session over", "decisions", tracker.Decisions(), "correct", tracker.Correct())
	return nil
}
