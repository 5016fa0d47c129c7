package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/hcl"
	"github.com/specialistvlad/gridcalc/internal/metrics"
	"github.com/specialistvlad/gridcalc/internal/sheet"
	"github.com/specialistvlad/gridcalc/internal/workbook"
	"github.com/specialistvlad/gridcalc/internal/yamldoc"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	inR    io.Reader
	outW   io.Writer
	logger *slog.Logger
	config *Config

	sheet    *sheet.Sheet
	mode     sheet.DisplayMode
	books    *workbook.Registry
	recovery *workbook.RecoveryStore
	metrics  *metrics.Collector
	commands map[string]*command

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Commands are read
// from inR (unless the config names a script), results are written to outW
// and logs to logW.
func NewApp(inR io.Reader, outW, logW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	mode, err := sheet.ParseDisplayMode(config.DisplayMode)
	if err != nil {
		mode = sheet.DisplayValues
	}

	a := &App{
		ctx:     ctxlog.WithLogger(context.Background(), logger),
		inR:     inR,
		outW:    outW,
		logger:  logger,
		config:  config,
		sheet:   sheet.New(sheet.WithHistoryCapacity(config.HistoryCapacity)),
		mode:    mode,
		books:   workbook.NewRegistry(hcl.NewCodec(), yamldoc.NewCodec()),
		metrics: metrics.NewCollector(),
	}
	if config.RecoveryDir != "" {
		a.recovery = workbook.NewRecoveryStore(config.RecoveryDir, hcl.NewCodec())
		logger.Debug("Autosave enabled.", "path", a.recovery.Path())
	}
	a.commands = newCommandTable()
	return a
}

// Sheet returns the session's sheet. This is primarily for testing.
func (a *App) Sheet() *sheet.Sheet {
	return a.sheet
}

// Metrics returns the session's collectors. This is primarily for testing.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

// printf writes one line of command output.
func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.outW, format+"\n", args...)
}

// sheetChanged is called after every successful mutation. It refreshes
// metrics and writes the recovery file when autosave is enabled.
func (a *App) sheetChanged(ctx context.Context) {
	a.metrics.Mutations.Inc()
	a.metrics.Cells.Set(float64(a.sheet.Len()))

	if a.recovery == nil {
		return
	}
	if err := a.recovery.Save(ctx, workbook.FromEntries(a.sheet.Export())); err != nil {
		ctxlog.FromContext(ctx).Warn("Autosave failed.", "error", err)
	}
}
