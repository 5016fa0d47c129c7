package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
)

// errQuit ends the command loop without an error.
var errQuit = errors.New("quit")

// Run executes the command shell until its input is exhausted or a quit
// command is read. Individual command failures are reported on the output
// and never end the loop; only startup and input errors are returned.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}

	if a.config.LoadPath != "" {
		doc, err := a.books.Load(ctx, a.config.LoadPath)
		if err != nil {
			return fmt.Errorf("failed to load workbook: %w", err)
		}
		if err := a.sheet.Import(ctx, doc.Entries()); err != nil {
			return fmt.Errorf("failed to load workbook: %w", err)
		}
		a.metrics.Cells.Set(float64(a.sheet.Len()))
		a.logger.Info("Workbook loaded.", "path", a.config.LoadPath, "cells", a.sheet.Len())
	}

	in := a.inR
	if a.config.ScriptPath != "" {
		f, err := os.Open(a.config.ScriptPath)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	if err := a.runLoop(ctx, in); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// runLoop executes commands read from in until the input ends, a quit
// command is read or ctx is cancelled. Lines are read in a separate
// goroutine so that cancellation does not wait for the next line.
func (a *App) runLoop(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Interrupted, stopping the shell.", "line", lineNo)
			return nil
		case text, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read commands: %w", err)
				}
				return nil
			}
			lineNo++
			line := strings.TrimSpace(text)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if err := a.Execute(ctx, line); errors.Is(err, errQuit) {
				a.logger.Debug("Quit requested.", "line", lineNo)
				return nil
			}
		}
	}
}

// splitArgs splits a command line shell-style. When verbatimFrom is positive,
// only the first verbatimFrom words are split and the rest of the line is
// kept as one argument, so quotes and '#' inside a cell value survive. Such a
// value loses one pair of enclosing quotes.
func splitArgs(line string, verbatimFrom int) ([]string, error) {
	if verbatimFrom <= 0 {
		return shlex.Split(line)
	}

	args := make([]string, 0, verbatimFrom+1)
	rest := strings.TrimSpace(line)
	for len(args) < verbatimFrom && rest != "" {
		word, tail := rest, ""
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			word, tail = rest[:i], strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
		}
		args = append(args, word)
		rest = tail
	}
	if rest != "" {
		args = append(args, unquote(rest))
	}
	return args, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Execute runs a single command line. Failures are printed as
// "error: <message>" and also returned.
func (a *App) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := a.commands[name]
	if !ok {
		err := fmt.Errorf("unknown command %q (type help for a list)", fields[0])
		a.printf("error: %v", err)
		a.metrics.ObserveCommand("unknown", err)
		return err
	}
	if name == "quit" || name == "exit" {
		return errQuit
	}

	args, err := splitArgs(line, cmd.verbatimFrom)
	if err != nil {
		a.printf("error: %v", err)
		a.metrics.ObserveCommand(cmd.name, err)
		return err
	}

	ctx, logger := ctxlog.With(ctx, "command", cmd.name)
	params := args[1:]
	if len(params) < cmd.minArgs || (cmd.maxArgs >= 0 && len(params) > cmd.maxArgs) {
		err := fmt.Errorf("usage: %s", cmd.usage)
		a.printf("error: %v", err)
		a.metrics.ObserveCommand(cmd.name, err)
		return err
	}

	err = cmd.run(ctx, a, params)
	a.metrics.ObserveCommand(cmd.name, err)
	if err != nil {
		a.metrics.ObserveError(err)
		a.printf("error: %v", err)
		logger.Warn("Command failed.", "error", err)
		return err
	}
	logger.Debug("Command finished.")
	return nil
}
