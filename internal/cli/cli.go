package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/app"
	"github.com/specialistvlad/gridcalc/internal/history"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("gridcalc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridcalc - an interactive spreadsheet calculator.

Usage:
  gridcalc [options] [SCRIPT_PATH]

Arguments:
  SCRIPT_PATH
    File of shell commands to run instead of reading standard input.

Options:
`)
		flagSet.PrintDefaults()
	}

	scriptFlag := flagSet.String("script", "", "Path to a file of shell commands.")
	sFlag := flagSet.String("s", "", "Path to a file of shell commands (shorthand).")
	loadFlag := flagSet.String("load", "", "Workbook (.hcl, .yaml, .yml) to load on startup.")
	historyFlag := flagSet.Int("history", history.DefaultCapacity, "Number of undo steps kept.")
	displayFlag := flagSet.String("display", "values", "Initial display mode. Options: 'values' or 'formulas'.")
	recoveryFlag := flagSet.String("recovery-dir", "", "Directory for autosaved recovery files. Empty disables autosave.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one script path, got %d arguments", flagSet.NArg())}
	}

	script := *scriptFlag
	if script == "" {
		script = *sFlag
	}
	if script == "" && flagSet.NArg() == 1 {
		script = flagSet.Arg(0)
	}

	config, err := app.NewConfig(app.Config{
		ScriptPath:      script,
		LoadPath:        *loadFlag,
		HistoryCapacity: *historyFlag,
		DisplayMode:     strings.ToLower(*displayFlag),
		RecoveryDir:     *recoveryFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
