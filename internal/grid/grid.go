// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Grid, the sparse cell store, and the read-only view the
// evaluator works against.
package grid

import (
	"iter"
	"maps"
	"slices"

	"github.com/specialistvlad/gridcalc/internal/cellref"
)

// Reader is the read-only view of a grid used by evaluation.
type Reader interface {
	Get(addr cellref.Address) (Content, bool)
	InRange(r cellref.Range) iter.Seq2[cellref.Address, Content]
}

// Grid is a sparse mapping from address to content.
type Grid struct {
	cells map[cellref.Address]Content
}

var _ Reader = (*Grid)(nil)

// New creates an empty grid.
func New() *Grid {
	return &Grid{cells: make(map[cellref.Address]Content)}
}

// Get returns the content at addr and whether the cell is occupied.
func (g *Grid) Get(addr cellref.Address) (Content, bool) {
	c, ok := g.cells[addr]
	return c, ok
}

// Set stores content at addr. Storing empty content clears the cell.
func (g *Grid) Set(addr cellref.Address, c Content) {
	if c.IsEmpty() {
		delete(g.cells, addr)
		return
	}
	g.cells[addr] = c
}

// Clear empties the cell at addr.
func (g *Grid) Clear(addr cellref.Address) {
	delete(g.cells, addr)
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Addresses returns the occupied addresses in row-major order.
func (g *Grid) Addresses() []cellref.Address {
	keys := slices.Collect(maps.Keys(g.cells))
	slices.SortFunc(keys, func(a, b cellref.Address) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return keys
}

// All yields occupied cells in row-major order.
func (g *Grid) All() iter.Seq2[cellref.Address, Content] {
	return func(yield func(cellref.Address, Content) bool) {
		for _, addr := range g.Addresses() {
			if !yield(addr, g.cells[addr]) {
				return
			}
		}
	}
}

// InRange yields the occupied cells inside r in row-major order.
func (g *Grid) InRange(r cellref.Range) iter.Seq2[cellref.Address, Content] {
	return func(yield func(cellref.Address, Content) bool) {
		if r.Len() <= len(g.cells) {
			for addr := range r.Cells() {
				if c, ok := g.cells[addr]; ok {
					if !yield(addr, c) {
						return
					}
				}
			}
			return
		}
		for _, addr := range g.Addresses() {
			if r.Contains(addr) {
				if !yield(addr, g.cells[addr]) {
					return
				}
			}
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{cells: maps.Clone(g.cells)}
}

// Reset removes every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}
