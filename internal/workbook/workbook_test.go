package workbook_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridcalc/internal/hcl"
	"github.com/specialistvlad/gridcalc/internal/sheet"
	"github.com/specialistvlad/gridcalc/internal/workbook"
	"github.com/specialistvlad/gridcalc/internal/yamldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *workbook.Registry {
	return workbook.NewRegistry(hcl.NewCodec(), yamldoc.NewCodec())
}

func sampleSheet(t *testing.T) *sheet.Sheet {
	t.Helper()
	ctx := context.Background()
	s := sheet.New()
	require.NoError(t, s.Set(ctx, "A1", "5"))
	require.NoError(t, s.Set(ctx, "A2", "label"))
	require.NoError(t, s.Set(ctx, "B1", "=A1*2"))
	return s
}

func TestRegistry_ForPath(t *testing.T) {
	r := newRegistry()

	for _, path := range []string{"book.hcl", "BOOK.YAML", "dir/book.yml"} {
		_, err := r.ForPath(path)
		assert.NoError(t, err, path)
	}

	_, err := r.ForPath("book.csv")
	assert.ErrorIs(t, err, workbook.ErrUnsupportedFormat)
	assert.Equal(t, []string{".hcl", ".yaml", ".yml"}, r.Extensions())
}

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()
	original := sampleSheet(t)

	for _, name := range []string{"book.hcl", "book.yaml"} {
		t.Run(name, func(t *testing.T) {
			// --- Arrange ---
			path := filepath.Join(t.TempDir(), name)

			// --- Act ---
			require.NoError(t, r.Save(ctx, path, workbook.FromEntries(original.Export())))
			doc, err := r.Load(ctx, path)
			require.NoError(t, err)

			restored := sheet.New()
			require.NoError(t, restored.Import(ctx, doc.Entries()))

			// --- Assert ---
			if diff := cmp.Diff(original.Export(), restored.Export()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			v, err := restored.Value("B1")
			require.NoError(t, err)
			assert.Equal(t, 10.0, v)
		})
	}
}

func TestRegistry_LoadMissingFile(t *testing.T) {
	_, err := newRegistry().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecoveryStore_LatestPicksNewest(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	dir := t.TempDir()

	older := workbook.NewRecoveryStore(dir, hcl.NewCodec())
	require.NoError(t, older.Save(ctx, &workbook.Document{Cells: []workbook.Cell{{Address: "A1", Content: "old"}}}))
	past := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(older.Path(), past, past))

	newer := workbook.NewRecoveryStore(dir, hcl.NewCodec())
	require.NoError(t, newer.Save(ctx, &workbook.Document{Cells: []workbook.Cell{{Address: "A1", Content: "new"}}}))

	// --- Act ---
	doc, path, err := older.Latest(ctx)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, newer.Path(), path)
	assert.Equal(t, "new", doc.Cells[0].Content)
	assert.NotEqual(t, older.Session(), newer.Session())
	assert.Equal(t, newer.Session().String()+".hcl", filepath.Base(newer.Path()))
}

func TestRecoveryStore_LatestIgnoresOtherFiles(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	dir := t.TempDir()
	store := workbook.NewRecoveryStore(dir, hcl.NewCodec())
	require.NoError(t, store.Save(ctx, &workbook.Document{Cells: []workbook.Cell{{Address: "A1", Content: "mine"}}}))
	past := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(store.Path(), past, past))

	unrelated := "cell \"A1\" {\n  value = \"user\"\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "budget.hcl"), []byte(unrelated), 0o644))
	nested := filepath.Join(dir, "nested", workbook.NewRecoveryStore(dir, hcl.NewCodec()).Session().String()+".hcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0o755))
	require.NoError(t, os.WriteFile(nested, []byte(unrelated), 0o644))

	// --- Act ---
	doc, path, err := store.Latest(ctx)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, store.Path(), path)
	assert.Equal(t, "mine", doc.Cells[0].Content)
}

func TestRecoveryStore_NoRecovery(t *testing.T) {
	ctx := context.Background()

	store := workbook.NewRecoveryStore(filepath.Join(t.TempDir(), "missing"), hcl.NewCodec())
	_, _, err := store.Latest(ctx)

	assert.ErrorIs(t, err, workbook.ErrNoRecovery)
}

func TestDocument_Entries(t *testing.T) {
	entries := []sheet.Entry{{Address: "A1", Content: "1"}, {Address: "B1", Content: "=A1"}}

	doc := workbook.FromEntries(entries)

	assert.Equal(t, []workbook.Cell{{Address: "A1", Content: "1"}, {Address: "B1", Content: "=A1"}}, doc.Cells)
	assert.Equal(t, entries, doc.Entries())
}
