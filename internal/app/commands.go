package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/specialistvlad/gridcalc/internal/cellref"
	"github.com/specialistvlad/gridcalc/internal/sheet"
	"github.com/specialistvlad/gridcalc/internal/workbook"
)

// command is one entry of the shell's command table. maxArgs of -1 means
// no upper bound. A positive verbatimFrom keeps everything after that many
// words as a single unparsed argument.
type command struct {
	name         string
	usage        string
	summary      string
	minArgs      int
	maxArgs      int
	verbatimFrom int
	run          func(ctx context.Context, a *App, args []string) error
}

func newCommandTable() map[string]*command {
	cmds := []*command{
		{name: "set", usage: "set <cell|range> <value>", summary: "store the rest of the line as a value or =formula (\"\" clears)", minArgs: 2, maxArgs: 2, verbatimFrom: 2, run: cmdSet},
		{name: "clear", usage: "clear <cell|range>", summary: "empty cells", minArgs: 1, maxArgs: 1, run: cmdClear},
		{name: "get", usage: "get <cell>", summary: "print a cell in the current display mode", minArgs: 1, maxArgs: 1, run: cmdGet},
		{name: "source", usage: "source <cell>", summary: "print a cell's raw content", minArgs: 1, maxArgs: 1, run: cmdSource},
		{name: "deps", usage: "deps <cell>", summary: "list the cells a formula reads", minArgs: 1, maxArgs: 1, run: cmdDeps},
		{name: "undo", usage: "undo", summary: "revert the last change", maxArgs: 0, run: cmdUndo},
		{name: "show", usage: "show", summary: "print every non-empty cell", maxArgs: 0, run: cmdShow},
		{name: "mode", usage: "mode [values|formulas]", summary: "print or switch the display mode", maxArgs: 1, run: cmdMode},
		{name: "save", usage: "save <path>", summary: "write the sheet to a .hcl, .yaml or .yml file", minArgs: 1, maxArgs: 1, run: cmdSave},
		{name: "load", usage: "load <path>", summary: "replace the sheet with a saved file", minArgs: 1, maxArgs: 1, run: cmdLoad},
		{name: "recover", usage: "recover", summary: "restore the newest autosaved session", maxArgs: 0, run: cmdRecover},
		{name: "reset", usage: "reset", summary: "clear the whole sheet", maxArgs: 0, run: cmdReset},
		{name: "help", usage: "help", summary: "list commands", maxArgs: 0, run: cmdHelp},
		{name: "quit", usage: "quit", summary: "leave the shell", maxArgs: 0},
	}
	for _, op := range aggregate.Reducers() {
		name := strings.ToLower(op.String())
		cmds = append(cmds, &command{
			name:    name,
			usage:   name + " <range> [target]",
			summary: fmt.Sprintf("print the %s of a range, or store it in target", name),
			minArgs: 1,
			maxArgs: 2,
			run:     reducer(op),
		})
	}

	table := make(map[string]*command, len(cmds)+1)
	for _, c := range cmds {
		table[c.name] = c
	}
	table["exit"] = table["quit"]
	return table
}

// splitRange splits "A1:B3" into its corners. A single cell yields end "".
func splitRange(text string) (start, end string) {
	start, end, _ = strings.Cut(text, ":")
	return start, end
}

func cmdSet(ctx context.Context, a *App, args []string) error {
	value := args[1]
	start, end := splitRange(args[0])
	if end == "" {
		if err := a.sheet.Set(ctx, start, value); err != nil {
			return err
		}
	} else if _, err := a.sheet.ApplyRangeOperation(ctx, aggregate.OpSet, start, end, value); err != nil {
		return err
	}
	a.sheetChanged(ctx)
	return nil
}

func cmdClear(ctx context.Context, a *App, args []string) error {
	start, end := splitRange(args[0])
	if end == "" {
		if err := a.sheet.Clear(ctx, start); err != nil {
			return err
		}
	} else if _, err := a.sheet.ApplyRangeOperation(ctx, aggregate.OpClear, start, end, ""); err != nil {
		return err
	}
	a.sheetChanged(ctx)
	return nil
}

// cmdGet prints the indicator of a failing formula before returning the failure.
func cmdGet(_ context.Context, a *App, args []string) error {
	if _, err := cellref.Parse(args[0]); err != nil {
		return err
	}
	text, err := a.sheet.DisplayValue(args[0], a.mode)
	a.printf("%s", text)
	return err
}

func cmdSource(_ context.Context, a *App, args []string) error {
	text, err := a.sheet.Source(args[0])
	if err != nil {
		return err
	}
	a.printf("%s", text)
	return nil
}

func cmdDeps(_ context.Context, a *App, args []string) error {
	refs, err := a.sheet.Precedents(args[0])
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		a.printf("%s has no references", strings.ToUpper(args[0]))
		return nil
	}
	a.printf("%s", strings.Join(refs, " "))
	return nil
}

func cmdUndo(ctx context.Context, a *App, _ []string) error {
	if err := a.sheet.Undo(ctx); err != nil {
		if errors.Is(err, calcerr.ErrUndoUnavailable) {
			a.printf("nothing to undo")
			return nil
		}
		return err
	}
	a.metrics.Undos.Inc()
	a.sheetChanged(ctx)
	return nil
}

func cmdShow(_ context.Context, a *App, _ []string) error {
	for _, addr := range a.sheet.Cells() {
		text, _ := a.sheet.DisplayValue(addr, a.mode)
		a.printf("%s\t%s", addr, text)
	}
	return nil
}

func cmdMode(_ context.Context, a *App, args []string) error {
	if len(args) == 1 {
		mode, err := sheet.ParseDisplayMode(args[0])
		if err != nil {
			return err
		}
		a.mode = mode
	}
	a.printf("mode: %s", a.mode)
	return nil
}

func cmdSave(ctx context.Context, a *App, args []string) error {
	doc := workbook.FromEntries(a.sheet.Export())
	if err := a.books.Save(ctx, args[0], doc); err != nil {
		return err
	}
	a.printf("saved %d cells to %s", len(doc.Cells), args[0])
	return nil
}

func cmdLoad(ctx context.Context, a *App, args []string) error {
	doc, err := a.books.Load(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.sheet.Import(ctx, doc.Entries()); err != nil {
		return err
	}
	a.sheetChanged(ctx)
	a.printf("loaded %d cells from %s", a.sheet.Len(), args[0])
	return nil
}

func cmdRecover(ctx context.Context, a *App, _ []string) error {
	if a.recovery == nil {
		return errors.New("autosave is disabled (start with -recovery-dir)")
	}
	doc, path, err := a.recovery.Latest(ctx)
	if err != nil {
		if errors.Is(err, workbook.ErrNoRecovery) {
			a.printf("nothing to recover")
			return nil
		}
		return err
	}
	if err := a.sheet.Import(ctx, doc.Entries()); err != nil {
		return err
	}
	a.sheetChanged(ctx)
	a.printf("recovered %d cells from %s", a.sheet.Len(), path)
	return nil
}

func cmdReset(ctx context.Context, a *App, _ []string) error {
	a.sheet.Reset(ctx)
	a.sheetChanged(ctx)
	return nil
}

func cmdHelp(_ context.Context, a *App, _ []string) error {
	names := make([]string, 0, len(a.commands))
	for name, c := range a.commands {
		if name == c.name {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		c := a.commands[name]
		a.printf("  %-28s %s", c.usage, c.summary)
	}
	return nil
}

func reducer(op aggregate.Op) func(context.Context, *App, []string) error {
	return func(ctx context.Context, a *App, args []string) error {
		start, end := splitRange(args[0])
		if len(args) == 1 {
			v, err := a.sheet.Aggregate(op, start, end)
			if err != nil {
				return err
			}
			a.printf("%s", sheet.FormatNumber(v))
			return nil
		}

		res, err := a.sheet.ApplyRangeOperation(ctx, op, start, end, args[1])
		if err != nil {
			return err
		}
		a.sheetChanged(ctx)
		a.printf("%s = %s", res.Target, sheet.FormatNumber(res.Value))
		return nil
	}
}
