package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/zappabad/candleview/internal/config"
	"github.com/zappabad/candleview/internal/dataset"
	"github.com/zappabad/candleview/internal/logging"
	"github.com/zappabad/candleview/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, flush, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	defer flush()

	kind, err := cfg.Kind()
	if err != nil {
		return err
	}

	// Load the dataset, or generate a sample series
	title := "sample"
	var ds *dataset.Dataset
	if cfg.DataPath != "" {
		title = filepath.Base(cfg.DataPath)
		ds, err = dataset.Load(cfg.DataPath)
	} else {
		ds, err = dataset.Generate(cfg.Generate())
	}
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		zap.String("source", title),
		zap.Int("bars", ds.Len()),
		zap.Int("chunks", ds.NumChunks()))

	opts, err := config.LoadOptions(cfg.OptionsPath, tui.TerminalOptions())
	if err != nil {
		return err
	}

	// Create and run TUI
	model, err := tui.NewModel(title, kind, ds, opts, cfg.FrameInterval, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
