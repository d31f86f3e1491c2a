package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gantry/internal/cli"
	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/logging"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	logger, closer, err := logging.Initialize(cfg.Debug, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", "path", cfg.DBPath)

	planner := service.NewPlannerService(
		db.NewSQLiteUnitOfWork(database),
		service.PlannerOptions{
			DefaultPhaseDays: cfg.DefaultPhaseDays,
			LegacyStatePath:  cfg.LegacyStatePath,
			Logger:           logger,
		},
		service.NewLogUseCaseObserver(logger),
	)

	app := &cli.App{
		Planner:      planner,
		CellWidth:    cfg.ChartCellWidth,
		ChartMaxDays: cfg.ChartMaxDays,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
