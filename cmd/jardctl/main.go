package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hmshaban/jard-backend/internal/config"
	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/report"
	"github.com/hmshaban/jard-backend/internal/workbook"
	"github.com/hmshaban/jard-backend/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "jardctl",
		Usage: "reconcile inventory workbooks from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			processCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

func processCommand() *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: "run a full reconciliation and export the report workbook",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "source .xlsx workbook"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "destination .xlsx report"},
			&cli.TimestampFlag{Name: "today", Layout: "2006-01-02", Usage: "as-of date (defaults to now)"},
			&cli.IntFlag{Name: "window", Usage: "sales window in days", Value: 0},
			&cli.DurationFlag{Name: "timeout", Usage: "run deadline", Value: 0},
		},
		Action: runProcess,
	}
}

func runProcess(c *cli.Context) error {
	input, err := workbook.ParseFile(c.String("input"))
	if err != nil {
		return err
	}

	cfg := config.Load()
	opts := engine.Options{
		ChunkSize:       cfg.Engine.ChunkSize,
		Timeout:         cfg.Engine.Timeout(),
		SalesWindowDays: cfg.Engine.SalesWindowDays,
		MaxWarnings:     cfg.Engine.MaxWarnings,
	}
	if today := c.Timestamp("today"); today != nil {
		opts.Today = today.UTC()
	}
	if window := c.Int("window"); window > 0 {
		opts.SalesWindowDays = window
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		opts.Timeout = timeout
	}

	run := engine.NewRun(opts)
	go func() {
		for p := range run.Progress() {
			logger.Log.Info().
				Str("stage", string(p.Stage)).
				Int("processed", p.Processed).
				Int("total", p.Total).
				Float64("percent", p.Percent).
				Msg("progress")
		}
	}()

	started := time.Now()
	result, err := run.Execute(context.Background(), input)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		logger.Log.Warn().Str("warning", w.String()).Msg("coercion warning")
	}
	if result.Stats.WarningsTruncated > 0 {
		logger.Log.Warn().Int("dropped", result.Stats.WarningsTruncated).Msg("further warnings dropped")
	}

	out, err := os.Create(c.String("output"))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := workbook.Export(out, report.BuildAll(result)); err != nil {
		return err
	}

	logger.Log.Info().
		Int("rows", result.Stats.TotalRows).
		Int("warnings", result.Stats.WarningCount).
		Dur("elapsed", time.Since(started)).
		Str("output", c.String("output")).
		Msg("reconciliation complete")
	return nil
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "show what a workbook contains without processing it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "source .xlsx workbook"},
		},
		Action: runInspect,
	}
}

func runInspect(c *cli.Context) error {
	input, err := workbook.ParseFile(c.String("input"))
	if err != nil {
		return err
	}

	sheets := []struct {
		key  string
		rows int
	}{
		{workbook.SheetPurchases, len(input.Purchases.Rows)},
		{workbook.SheetSales, len(input.Sales.Rows)},
		{workbook.SheetPhysical, len(input.Physical.Rows)},
		{workbook.SheetBalances, len(input.Balances.Rows)},
	}

	for _, s := range sheets {
		if s.rows == 0 {
			fmt.Printf("%-20s (not found)\n", s.key)
			continue
		}
		fmt.Printf("%-20s %d rows\n", s.key, s.rows)
	}
	return nil
}
