package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	app "github.com/gradefold/gradefold/internal/app"
	"github.com/gradefold/gradefold/internal/config"
	"github.com/gradefold/gradefold/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("gradefold: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	inputDir := flag.String("input-dir", "", "directory holding the exported workbooks (default from config)")
	output := flag.String("output", "", "path of the consolidated workbook (default from config)")
	sheet := flag.String("sheet", "", "output worksheet name (default from config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (default from config)")
	workers := flag.Int("workers", 0, "parallel assignment parsers (default from config)")
	noPDF := flag.Bool("no-pdf", false, "skip the PDF export step")
	flag.Parse()

	if err := logger.Init(); err != nil {
		return err
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env), then let flags win.
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *sheet != "" {
		cfg.SheetName = *sheet
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *workers > 0 {
		cfg.WorkerCount = *workers
	}
	if *noPDF {
		cfg.PDFExport = false
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithInputDir(cfg.InputDir),
		app.WithOutput(cfg.Output),
		app.WithSheetName(cfg.SheetName),
		app.WithHeaderMarker(cfg.HeaderMarker),
		app.WithExclusionTerms(cfg.ExclusionTerms),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithPDFExport(cfg.PDFExport),
		app.WithStrictMatching(cfg.StrictMatching),
		app.WithColumnOverrides(cfg.ColumnOverrides),
	)
	return svc.Run(ctx)
}
