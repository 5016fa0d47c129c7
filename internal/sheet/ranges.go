package sheet

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/specialistvlad/gridcalc/internal/cellref"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/eval"
	"github.com/specialistvlad/gridcalc/internal/grid"
)

// Result describes the outcome of a range operation.
type Result struct {
	Op    aggregate.Op
	Range cellref.Range
	// Cells is the number of cells written or cleared.
	Cells int
	// Target and Value are set for reducing operations.
	Target cellref.Address
	Value  float64
}

// ApplyRangeOperation runs op over the rectangle spanned by start and end.
// An empty end selects the single cell start.
//
// SET writes targetOrValue to every cell and CLEAR empties them. Reducers
// store an aggregate formula such as =SUM(A1:A3) in the cell named by
// targetOrValue, so the target follows later edits of the range. The target
// must lie outside the range and the formula must evaluate. Each call is a
// single undo step.
func (s *Sheet) ApplyRangeOperation(ctx context.Context, op aggregate.Op, start, end, targetOrValue string) (Result, error) {
	r, err := parseRange(start, end)
	if err != nil {
		return Result{}, err
	}
	res := Result{Op: op, Range: r}

	switch {
	case op == aggregate.OpSet:
		content := grid.FromInput(targetOrValue)
		s.commit(ctx, "Range assigned.", func(g *grid.Grid) {
			for addr := range r.Cells() {
				g.Set(addr, content)
			}
		}, "range", r, "kind", content.Kind())
		res.Cells = r.Len()

	case op == aggregate.OpClear:
		var occupied []cellref.Address
		for addr := range s.cells.InRange(r) {
			occupied = append(occupied, addr)
		}
		s.commit(ctx, "Range cleared.", func(g *grid.Grid) {
			for _, addr := range occupied {
				g.Clear(addr)
			}
		}, "range", r, "cleared", len(occupied))
		res.Cells = len(occupied)

	case op.IsReducer():
		target, err := cellref.Parse(targetOrValue)
		if err != nil {
			return Result{}, err
		}
		if r.Contains(target) {
			return Result{}, calcerr.NewInvalidAddress(target.String(), fmt.Sprintf("target lies inside %s", r))
		}
		content := grid.Formula("=" + op.String() + "(" + r.String() + ")")
		trial := s.cells.Clone()
		trial.Set(target, content)
		value, err := eval.New(trial).Cell(target)
		if err != nil {
			return Result{}, err
		}
		s.commit(ctx, "Aggregate stored.", func(g *grid.Grid) {
			g.Set(target, content)
		}, "op", op, "range", r, "target", target, "formula", content.Text())
		res.Cells, res.Target, res.Value = 1, target, value

	default:
		return Result{}, fmt.Errorf("unsupported range operation %s", op)
	}
	return res, nil
}

// Entry is one occupied cell in exported form.
type Entry struct {
	Address string
	Content string
}

// Export lists every occupied cell in row-major order.
func (s *Sheet) Export() []Entry {
	entries := make([]Entry, 0, s.cells.Len())
	for addr, c := range s.cells.All() {
		entries = append(entries, Entry{Address: addr.String(), Content: c.Text()})
	}
	return entries
}

// Import replaces the whole grid with entries and clears the undo history.
// Any invalid address rejects the import and leaves the sheet untouched.
// Entries with empty content are skipped; a later entry for the same
// address wins.
func (s *Sheet) Import(ctx context.Context, entries []Entry) error {
	g := grid.New()
	for i, e := range entries {
		addr, err := cellref.Parse(e.Address)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		g.Set(addr, grid.FromInput(e.Content))
	}
	s.replace(g)
	s.history.Reset()
	ctxlog.FromContext(ctx).Debug("Sheet imported.", "cells", g.Len())
	return nil
}

// Cells lists the addresses of occupied cells in row-major order.
func (s *Sheet) Cells() []string {
	addrs := s.cells.Addresses()
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
