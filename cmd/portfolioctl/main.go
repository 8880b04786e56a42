package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/app"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/config"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "portfolioctl",
		Usage: "Maintain the portfolio database from the command line",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema",
				Action: runMigrate,
			},
			{
				Name:  "import",
				Usage: "Replace the portfolio with an .xlsx workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the workbook",
						Required: true,
					},
				},
				Action: runImport,
			},
			{
				Name:  "export",
				Usage: "Write the portfolio to an .xlsx workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
				},
				Action: runExport,
			},
			{
				Name:  "rates",
				Usage: "Exchange rate maintenance",
				Subcommands: []*cli.Command{
					{
						Name:   "refresh",
						Usage:  "Fetch current rates from the configured provider",
						Action: runRatesRefresh,
					},
					{
						Name:   "list",
						Usage:  "Print the newest rate of every currency",
						Action: runRatesList,
					},
				},
			},
		},
	}
}

// open loads configuration and wires the application. The caller closes it.
func open() (*app.App, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	log, err := logger.New(logger.Options{Env: cfg.LogEnv, Level: cfg.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialising application: %w", err)
	}
	return a, log, nil
}

func runMigrate(c *cli.Context) error {
	a, log, err := open()
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("schema is up to date")
	return nil
}

func runImport(c *cli.Context) error {
	a, log, err := open()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	result, err := a.Import.ImportWorkbook(c.Context, f)
	if err != nil {
		return errors.New(result.Message)
	}
	log.Info(result.Message)
	fmt.Fprintln(c.App.Writer, result.Message)
	return nil
}

func runExport(c *cli.Context) error {
	a, log, err := open()
	if err != nil {
		return err
	}
	defer a.Close()

	file, err := a.Export.ExportWorkbook(c.Context)
	if err != nil {
		return fmt.Errorf("exporting workbook: %w", err)
	}

	path := filepath.Join(c.String("out"), file.Filename)
	if err := os.WriteFile(path, file.Bytes, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info("workbook written", zap.String("path", path), zap.Int("bytes", len(file.Bytes)))
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func runRatesRefresh(c *cli.Context) error {
	a, _, err := open()
	if err != nil {
		return err
	}
	defer a.Close()

	stored, err := a.Rates.Refresh(c.Context)
	if err != nil {
		return err
	}
	for _, r := range stored {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", r.FromCurrency, r.Rate.String(), r.Source)
	}
	return nil
}

func runRatesList(c *cli.Context) error {
	a, _, err := open()
	if err != nil {
		return err
	}
	defer a.Close()

	latest, err := a.Rates.ListLatest(c.Context)
	if err != nil {
		return err
	}
	for _, r := range latest {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\t%s\n", r.FromCurrency, r.Rate.String(), r.EffectiveDate.Format("2006-01-02"), r.Source)
	}
	return nil
}
