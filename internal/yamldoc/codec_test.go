package yamldoc

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridcalc/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Decode(t *testing.T) {
	src := `
cells:
  - address: A1
    content: 5
  - address: b2
    content: "=A1 * 2"
  - address: C3
    content: hello world
`
	doc, err := NewCodec().Decode("book.yaml", []byte(src))
	require.NoError(t, err)

	expected := []workbook.Cell{
		{Address: "A1", Content: "5"},
		{Address: "b2", Content: "=A1 * 2"},
		{Address: "C3", Content: "hello world"},
	}
	if diff := cmp.Diff(expected, doc.Cells); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_DecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "unknown key", src: "cells:\n  - address: A1\n    value: 1\n"},
		{name: "unknown top level key", src: "sheets: []\n"},
		{name: "missing address", src: "cells:\n  - content: 1\n"},
		{name: "malformed", src: "cells: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCodec().Decode("book.yaml", []byte(tc.src))
			assert.Error(t, err)
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	doc := &workbook.Document{Cells: []workbook.Cell{
		{Address: "A1", Content: "5"},
		{Address: "A2", Content: "true"},
		{Address: "A3", Content: "=SUM(A1:A2)"},
		{Address: "A4", Content: "  spaced: out  "},
		{Address: "A5", Content: "line\nbreak"},
	}}
	codec := NewCodec()

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, doc))
	got, err := codec.Decode("round.yaml", buf.Bytes())
	require.NoError(t, err)

	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s\nencoded:\n%s", diff, buf.String())
	}
}

func TestCodec_EmptyFile(t *testing.T) {
	doc, err := NewCodec().Decode("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Cells)
}
