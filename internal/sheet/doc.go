// Package sheet is the single entry point used by presentation layers.
//
// A Sheet owns the live grid and its undo history. Addresses arrive as text
// and are decoded here; every mutation goes through the history manager so
// it can be undone as one step, range operations included. Reads evaluate
// on demand and never change state.
package sheet
