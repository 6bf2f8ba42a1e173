package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/logging"
	"github.com/olivier-w/swipe/internal/profiles"
	"github.com/olivier-w/swipe/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to YAML config (default: ~/.config/swipe/config.yaml if present)")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
		logFile    = flag.String("log-file", "", "write JSON logs to this file")
		fps        = flag.Int("fps", 0, "animation frames per second")
		threshold  = flag.Float64("velocity-threshold", 0, "release velocity needed to swipe, in points per second")
		tilt       = flag.Float64("tilt", 0, "maximum card tilt in degrees")
		cues       = flag.Bool("cues", false, "play a short sound on each swipe")
		out        = flag.String("out", "", "write the decisions to this YAML file on exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: swipe [flags] [deck-file]\n\ndeck formats: %s\n\n", profiles.SupportedExtsList())
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		return errors.New("at most one deck file may be given")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// Only flags given explicitly override the file.
	var overrides config.FlagOverrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			overrides.LogLevel = logLevel
		case "log-file":
			overrides.LogFile = logFile
		case "fps":
			overrides.FPS = fps
		case "velocity-threshold":
			overrides.VelocityThreshold = threshold
		case "tilt":
			overrides.TiltDegrees = tilt
		case "cues":
			overrides.CuesEnabled = cues
		}
	})
	overrides.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Logging.Level, config.ExpandPath(cfg.Logging.File))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	startup := newStartupModel(dir, flag.Arg(0), cfg, log)
	program := tea.NewProgram(startup, tea.WithAltScreen(), tea.WithMouseCellMotion())

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	deckModel, ok := finalModel.(ui.Model)
	if !ok {
		// closed before a deck was opened
		if s, ok := finalModel.(startupModel); ok && s.errMsg != "" {
			return errors.New(s.errMsg)
		}
		return nil
	}

	d := deckModel.Deck()
	log.Info("session finished",
		zap.Int("swiped", d.Swiped()),
		zap.Int("remaining", d.Len()))

	if *out != "" {
		if err := profiles.WriteDecisions(config.ExpandPath(*out), d.History()); err != nil {
			return err
		}
	}
	if d.Swiped() > 0 {
		fmt.Println(ui.DirectionSummary(d))
	}
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}

	path = config.DefaultPath()
	if path == "" {
		return config.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfigFile(path)
}
