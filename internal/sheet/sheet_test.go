package sheet

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustSet fills cells from address/input pairs.
func mustSet(t *testing.T, s *Sheet, pairs ...string) {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must be address/input")
	for i := 0; i < len(pairs); i += 2 {
		require.NoError(t, s.Set(context.Background(), pairs[i], pairs[i+1]))
	}
}

func TestSheet_SetAndValue(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := New()

	// --- Act ---
	require.NoError(t, s.SetLiteral(ctx, "A1", "5"))
	require.NoError(t, s.SetFormula(ctx, "b1", "=A1*2"))

	// --- Assert ---
	v, err := s.Value("B1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	v, err = s.Value("Z99")
	require.NoError(t, err)
	assert.Zero(t, v)

	src, err := s.Source("B1")
	require.NoError(t, err)
	assert.Equal(t, "=A1*2", src)
	assert.Equal(t, 2, s.Len())
}

func TestSheet_InvalidInput(t *testing.T) {
	ctx := context.Background()
	s := New()

	assert.ErrorIs(t, s.SetLiteral(ctx, "A0", "1"), calcerr.ErrInvalidAddress)
	assert.ErrorIs(t, s.Set(ctx, "SG1", "1"), calcerr.ErrInvalidAddress)
	assert.ErrorIs(t, s.SetFormula(ctx, "A1", "A2+1"), calcerr.ErrSyntax)
	_, err := s.Value("1A")
	assert.ErrorIs(t, err, calcerr.ErrInvalidAddress)
	assert.False(t, s.CanUndo(), "rejected input must not create undo steps")
}

func TestSheet_MalformedFormulaIsStored(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SetFormula(ctx, "A1", "=1+"))

	_, err := s.Value("A1")
	assert.ErrorIs(t, err, calcerr.ErrSyntax)
	src, _ := s.Source("A1")
	assert.Equal(t, "=1+", src)
}

func TestSheet_Precedents(t *testing.T) {
	s := New()
	mustSet(t, s, "A1", "1", "C1", "=B2+SUM(A1:B2)*A1", "C2", "=1+", "C3", "=2*3")

	refs, err := s.Precedents("c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "A1", "B1", "A2"}, refs)

	for _, addr := range []string{"A1", "C3", "D9"} {
		refs, err := s.Precedents(addr)
		require.NoError(t, err)
		assert.Empty(t, refs, addr)
	}

	_, err = s.Precedents("C2")
	assert.ErrorIs(t, err, calcerr.ErrSyntax)
	_, err = s.Precedents("A0")
	assert.ErrorIs(t, err, calcerr.ErrInvalidAddress)
}

func TestSheet_EmptyInputClears(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "A1", "text", "A2", "=A1")

	require.NoError(t, s.Set(ctx, "A1", ""))
	require.NoError(t, s.SetLiteral(ctx, "A2", ""))

	assert.Equal(t, 0, s.Len())
}

func TestSheet_DisplayValue(t *testing.T) {
	s := New()
	mustSet(t, s,
		"A1", "7",
		"A2", "hello",
		"A3", "=A1/2",
		"A4", "=A1/0",
		"A5", "=A5",
		"A6", "=A1*3",
	)

	testCases := []struct {
		addr     string
		mode     DisplayMode
		expected string
		kind     calcerr.Kind
	}{
		{addr: "A1", mode: DisplayValues, expected: "7"},
		{addr: "A2", mode: DisplayValues, expected: "hello"},
		{addr: "A3", mode: DisplayValues, expected: "3.5"},
		{addr: "A4", mode: DisplayValues, expected: "#DIV/0!", kind: calcerr.DivisionByZero},
		{addr: "A5", mode: DisplayValues, expected: "#CYCLE!", kind: calcerr.CircularReference},
		{addr: "A6", mode: DisplayValues, expected: "21"},
		{addr: "A7", mode: DisplayValues, expected: ""},
		{addr: "A3", mode: DisplayFormulas, expected: "=A1/2"},
		{addr: "A4", mode: DisplayFormulas, expected: "=A1/0"},
	}

	for _, tc := range testCases {
		t.Run(tc.addr+"/"+tc.mode.String(), func(t *testing.T) {
			got, err := s.DisplayValue(tc.addr, tc.mode)
			assert.Equal(t, tc.expected, got)
			if tc.kind == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.kind, calcerr.KindOf(err))
		})
	}
}

func TestSheet_Aggregate(t *testing.T) {
	s := New()
	mustSet(t, s, "A1", "1", "A2", "text", "A3", "3")

	testCases := []struct {
		op       aggregate.Op
		expected float64
	}{
		{op: aggregate.OpSum, expected: 4},
		{op: aggregate.OpCount, expected: 2},
		{op: aggregate.OpAverage, expected: 2},
		{op: aggregate.OpMax, expected: 3},
		{op: aggregate.OpMin, expected: 1},
		{op: aggregate.OpMedian, expected: 2},
		{op: aggregate.OpProduct, expected: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.op.String(), func(t *testing.T) {
			// Corner order does not matter.
			got, err := s.Aggregate(tc.op, "A3", "A1")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSheet_AggregateCountsFormulas(t *testing.T) {
	s := New()
	mustSet(t, s, "A1", "2", "B1", "=A1*5", "C1", "=1/0", "D1", "=D1")

	count, err := s.Aggregate(aggregate.OpCount, "A1", "D1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, count)

	sum, err := s.Aggregate(aggregate.OpSum, "A1", "D1")
	require.NoError(t, err)
	assert.Equal(t, 12.0, sum)
}

func TestSheet_AggregateErrors(t *testing.T) {
	s := New()

	_, err := s.Aggregate(aggregate.OpAverage, "A1", "B9")
	assert.ErrorIs(t, err, calcerr.ErrEmptyRange)

	_, err = s.Aggregate(aggregate.OpSum, "A1", "B0")
	assert.ErrorIs(t, err, calcerr.ErrInvalidAddress)

	_, err = s.Aggregate(aggregate.OpSet, "A1", "B2")
	assert.Error(t, err)
}

func TestSheet_RangeSetIsOneUndoStep(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := New()
	mustSet(t, s, "B2", "keep")

	// --- Act ---
	res, err := s.ApplyRangeOperation(ctx, aggregate.OpSet, "B2", "A1", "=1+1")
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, 4, res.Cells)
	assert.Equal(t, 4, s.Len())
	v, err := s.Value("B1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	require.NoError(t, s.Undo(ctx))
	assert.Equal(t, 1, s.Len())
	src, _ := s.Source("B2")
	assert.Equal(t, "keep", src)
}

func TestSheet_RangeClear(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "A1", "1", "A2", "2", "C5", "3")

	res, err := s.ApplyRangeOperation(ctx, aggregate.OpClear, "A1", "B9", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cells)
	assert.Equal(t, []string{"C5"}, s.Cells())

	require.NoError(t, s.Undo(ctx))
	assert.Equal(t, 3, s.Len())
}

func TestSheet_RangeReducerWritesTarget(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "A1", "1.5", "A2", "2.5")

	res, err := s.ApplyRangeOperation(ctx, aggregate.OpSum, "A1", "A2", "B1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Value)
	assert.Equal(t, "B1", res.Target.String())

	src, _ := s.Source("B1")
	assert.Equal(t, "=SUM(A1:A2)", src)

	mustSet(t, s, "A1", "100", "A3", "7")
	v, err := s.Value("B1")
	require.NoError(t, err)
	assert.Equal(t, 102.5, v)

	require.NoError(t, s.Undo(ctx))
	require.NoError(t, s.Undo(ctx))
	require.NoError(t, s.Undo(ctx))
	assert.Equal(t, []string{"A1", "A2"}, s.Cells())
}

func TestSheet_RangeReducerSingleCell(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "C3", "4")

	res, err := s.ApplyRangeOperation(ctx, aggregate.OpProduct, "C3", "", "D1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Value)
	src, _ := s.Source("D1")
	assert.Equal(t, "=PRODUCT(C3)", src)
}

func TestSheet_RangeReducerErrors(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "A1", "1")
	depth := s.history.Len()

	_, err := s.ApplyRangeOperation(ctx, aggregate.OpSum, "A1", "A3", "A2")
	assert.ErrorIs(t, err, calcerr.ErrInvalidAddress)

	_, err = s.ApplyRangeOperation(ctx, aggregate.OpMax, "B1", "B3", "C1")
	assert.ErrorIs(t, err, calcerr.ErrEmptyRange)

	_, err = s.ApplyRangeOperation(ctx, aggregate.OpSum, "A1", "A3", "")
	assert.ErrorIs(t, err, calcerr.ErrInvalidAddress)

	// A range cell reading the target would close a cycle.
	mustSet(t, s, "A3", "=B1")
	depth = s.history.Len()
	_, err = s.ApplyRangeOperation(ctx, aggregate.OpSum, "A1", "A3", "B1")
	assert.ErrorIs(t, err, calcerr.ErrCircularReference)
	src, _ := s.Source("B1")
	assert.Empty(t, src)

	assert.Equal(t, depth, s.history.Len(), "failed operations must not create undo steps")
}

func TestSheet_SingleCellRange(t *testing.T) {
	ctx := context.Background()
	s := New()

	res, err := s.ApplyRangeOperation(ctx, aggregate.OpSet, "C3", "", "9")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cells)
	assert.Equal(t, []string{"C3"}, s.Cells())
}

func TestSheet_UndoCapacity(t *testing.T) {
	const capacity = 4
	ctx := context.Background()
	s := New(WithHistoryCapacity(capacity))

	for i := range capacity + 3 {
		require.NoError(t, s.SetLiteral(ctx, "A1", strconv.Itoa(i)))
	}

	for range capacity {
		require.NoError(t, s.Undo(ctx))
	}
	assert.ErrorIs(t, s.Undo(ctx), calcerr.ErrUndoUnavailable)

	// The oldest snapshots were dropped, so A1 keeps a later value.
	src, _ := s.Source("A1")
	assert.Equal(t, "2", src)
}

func TestSheet_Reset(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "A1", "1", "B2", "=A1")

	s.Reset(ctx)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Undo(ctx))
	assert.Equal(t, 2, s.Len())
}

func TestSheet_ExportImport(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := New()
	mustSet(t, s, "B2", "=A1+1", "A10", "x", "A1", "5", "C1", "1e3")

	// --- Act ---
	exported := s.Export()

	// --- Assert ---
	expected := []Entry{
		{Address: "A1", Content: "5"},
		{Address: "C1", Content: "1e3"},
		{Address: "B2", Content: "=A1+1"},
		{Address: "A10", Content: "x"},
	}
	if diff := cmp.Diff(expected, exported); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}

	restored := New()
	mustSet(t, restored, "Z1", "gone")
	require.NoError(t, restored.Import(ctx, exported))

	assert.False(t, restored.CanUndo(), "import must clear history")
	if diff := cmp.Diff(exported, restored.Export()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	v, err := restored.Value("B2")
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestSheet_ImportRejectsInvalidAddress(t *testing.T) {
	ctx := context.Background()
	s := New()
	mustSet(t, s, "A1", "keep")

	err := s.Import(ctx, []Entry{{Address: "B1", Content: "1"}, {Address: "ZZZ9", Content: "2"}})

	assert.ErrorIs(t, err, calcerr.ErrInvalidAddress)
	assert.Equal(t, []string{"A1"}, s.Cells())
	assert.True(t, s.CanUndo(), "failed import leaves history alone")
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		in       float64
		expected string
	}{
		{in: 0, expected: "0"},
		{in: 14, expected: "14"},
		{in: -3, expected: "-3"},
		{in: 2.5, expected: "2.5"},
		{in: 1.0 / 3, expected: "0.3333333333333333"},
		{in: 123456789012, expected: "123456789012"},
		{in: 1e20, expected: "1e+20"},
		{in: 1e-7, expected: "1e-07"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatNumber(tc.in))
		})
	}
}

func TestParseDisplayMode(t *testing.T) {
	m, err := ParseDisplayMode("Formulas")
	require.NoError(t, err)
	assert.Equal(t, DisplayFormulas, m)

	m, err = ParseDisplayMode("values")
	require.NoError(t, err)
	assert.Equal(t, DisplayValues, m)

	_, err = ParseDisplayMode("raw")
	assert.Error(t, err)
}
