// Package yamldoc provides the YAML workbook format:
//
//	cells:
//	  - address: A1
//	    content: "5"
//	  - address: A2
//	    content: =A1*2
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/gridcalc/internal/workbook"
	"gopkg.in/yaml.v3"
)

type file struct {
	Cells []cell `yaml:"cells"`
}

type cell struct {
	Address string `yaml:"address"`
	Content string `yaml:"content"`
}

// Codec is the YAML implementation of workbook.Codec.
type Codec struct{}

var _ workbook.Codec = (*Codec)(nil)

// NewCodec creates a new YAML codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Extensions implements workbook.Codec.
func (c *Codec) Extensions() []string { return []string{".yaml", ".yml"} }

// Decode parses a workbook. Unknown keys are rejected and an empty file is
// an empty workbook.
func (c *Codec) Decode(name string, src []byte) (*workbook.Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(src))
	decoder.KnownFields(true)

	var f file
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", name, err)
	}

	doc := &workbook.Document{Cells: make([]workbook.Cell, 0, len(f.Cells))}
	for i, entry := range f.Cells {
		if entry.Address == "" {
			return nil, fmt.Errorf("%s: cell %d has no address", name, i+1)
		}
		doc.Cells = append(doc.Cells, workbook.Cell{Address: entry.Address, Content: entry.Content})
	}
	return doc, nil
}

// Encode writes doc as a cells list.
func (c *Codec) Encode(w io.Writer, doc *workbook.Document) error {
	f := file{Cells: make([]cell, len(doc.Cells))}
	for i, entry := range doc.Cells {
		f.Cells[i] = cell{Address: entry.Address, Content: entry.Content}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
