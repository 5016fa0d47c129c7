package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/specialistvlad/gridcalc/internal/cellref"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/eval"
	"github.com/specialistvlad/gridcalc/internal/formula"
	"github.com/specialistvlad/gridcalc/internal/grid"
	"github.com/specialistvlad/gridcalc/internal/history"
)

// Sheet is an editable grid with undo.
type Sheet struct {
	cells   *grid.Grid
	eval    *eval.Evaluator
	history *history.Manager
}

// Option configures a Sheet.
type Option func(*options)

type options struct {
	historyCapacity int
}

// WithHistoryCapacity sets the number of undo steps kept.
func WithHistoryCapacity(n int) Option {
	return func(o *options) { o.historyCapacity = n }
}

// New creates an empty sheet.
func New(opts ...Option) *Sheet {
	o := options{historyCapacity: history.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sheet{history: history.NewManager(o.historyCapacity)}
	s.replace(grid.New())
	return s
}

func (s *Sheet) replace(g *grid.Grid) {
	s.cells = g
	s.eval = eval.New(g)
}

// commit applies mutate as one undoable step.
func (s *Sheet) commit(ctx context.Context, msg string, mutate func(*grid.Grid), args ...any) {
	s.history.Commit(s.cells, mutate)
	args = append(args, "undo_depth", s.history.Len())
	ctxlog.FromContext(ctx).Debug(msg, args...)
}

// SetLiteral stores text verbatim. Empty text clears the cell.
func (s *Sheet) SetLiteral(ctx context.Context, addr, text string) error {
	a, err := cellref.Parse(addr)
	if err != nil {
		return err
	}
	content := grid.Literal(text)
	if text == "" {
		content = grid.Content{}
	}
	s.commit(ctx, "Literal stored.", func(g *grid.Grid) { g.Set(a, content) }, "cell", a)
	return nil
}

// SetFormula stores formula source, which must start with '='. The formula
// is not checked until it is evaluated.
func (s *Sheet) SetFormula(ctx context.Context, addr, source string) error {
	a, err := cellref.Parse(addr)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(source, "=") {
		return calcerr.NewSyntax(0, "formula must start with '='")
	}
	s.commit(ctx, "Formula stored.", func(g *grid.Grid) { g.Set(a, grid.Formula(source)) }, "cell", a)
	return nil
}

// Set stores raw input: a leading '=' makes a formula, "" clears the cell.
func (s *Sheet) Set(ctx context.Context, addr, input string) error {
	a, err := cellref.Parse(addr)
	if err != nil {
		return err
	}
	content := grid.FromInput(input)
	s.commit(ctx, "Cell updated.", func(g *grid.Grid) { g.Set(a, content) }, "cell", a, "kind", content.Kind())
	return nil
}

// Clear empties a cell.
func (s *Sheet) Clear(ctx context.Context, addr string) error {
	a, err := cellref.Parse(addr)
	if err != nil {
		return err
	}
	s.commit(ctx, "Cell cleared.", func(g *grid.Grid) { g.Clear(a) }, "cell", a)
	return nil
}

// Reset empties the whole sheet as one undoable step.
func (s *Sheet) Reset(ctx context.Context) {
	s.commit(ctx, "Sheet reset.", func(g *grid.Grid) { g.Reset() })
}

// Undo restores the grid to its state before the last mutation.
func (s *Sheet) Undo(ctx context.Context) error {
	snapshot, err := s.history.Undo()
	if err != nil {
		return err
	}
	s.replace(snapshot)
	ctxlog.FromContext(ctx).Debug("Undo applied.", "undo_depth", s.history.Len(), "cells", snapshot.Len())
	return nil
}

// CanUndo reports whether Undo would succeed.
func (s *Sheet) CanUndo() bool { return s.history.CanUndo() }

// Len returns the number of occupied cells.
func (s *Sheet) Len() int { return s.cells.Len() }

// Value evaluates a cell. Empty cells are 0.
func (s *Sheet) Value(addr string) (float64, error) {
	a, err := cellref.Parse(addr)
	if err != nil {
		return 0, err
	}
	return s.eval.Cell(a)
}

// Source returns the raw content text of a cell, "" when empty.
func (s *Sheet) Source(addr string) (string, error) {
	a, err := cellref.Parse(addr)
	if err != nil {
		return "", err
	}
	c, _ := s.cells.Get(a)
	return c.Text(), nil
}

// Precedents lists the cells a formula reads directly, ranges expanded, in
// order of first appearance. Literal and empty cells have none.
func (s *Sheet) Precedents(addr string) ([]string, error) {
	a, err := cellref.Parse(addr)
	if err != nil {
		return nil, err
	}
	c, ok := s.cells.Get(a)
	if !ok || !c.IsFormula() {
		return nil, nil
	}
	node, err := formula.ParseFormula(c.Text())
	if err != nil {
		return nil, err
	}
	refs := formula.References(node)
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.String()
	}
	return out, nil
}

// DisplayValue renders a cell for the given mode. A formula that fails to
// evaluate renders as its error indicator and the failure is returned too.
func (s *Sheet) DisplayValue(addr string, mode DisplayMode) (string, error) {
	a, err := cellref.Parse(addr)
	if err != nil {
		return calcerr.Indicator(err), err
	}
	c, ok := s.cells.Get(a)
	if !ok {
		return "", nil
	}
	if mode == DisplayFormulas || !c.IsFormula() {
		return c.Text(), nil
	}
	v, err := s.eval.Cell(a)
	if err != nil {
		return calcerr.Indicator(err), err
	}
	return FormatNumber(v), nil
}

// Aggregate reduces the numeric cells of the rectangle spanned by start
// and end, in either order.
func (s *Sheet) Aggregate(op aggregate.Op, start, end string) (float64, error) {
	if !op.IsReducer() {
		return 0, fmt.Errorf("%s is not a reducing operation", op)
	}
	r, err := parseRange(start, end)
	if err != nil {
		return 0, err
	}
	return aggregate.Reduce(op, s.numericValues(r))
}

func (s *Sheet) numericValues(r cellref.Range) []float64 {
	var values []float64
	for addr := range s.cells.InRange(r) {
		if v, ok := s.eval.Numeric(addr); ok {
			values = append(values, v)
		}
	}
	return values
}

func parseRange(start, end string) (cellref.Range, error) {
	from, err := cellref.Parse(start)
	if err != nil {
		return cellref.Range{}, err
	}
	if end == "" {
		return cellref.NewRange(from, from), nil
	}
	to, err := cellref.Parse(end)
	if err != nil {
		return cellref.Range{}, err
	}
	return cellref.NewRange(from, to), nil
}
