// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package grid is the single source of truth for sheet state: a sparse
// mapping from cell address to cell content.
//
// A cell either holds a literal or a formula. Which one is decided once,
// when the content is written, by the leading '='. Readers never re-infer
// it. Absent cells are empty: they read as 0 in arithmetic and as "" in
// display.
//
// A Grid is owned by exactly one session and is not safe for concurrent
// mutation. Snapshots for undo are taken with Clone, which is a full copy;
// Content values are immutable so copying the map is enough.
package grid
