package hcl

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/gridcalc/internal/workbook"
	"github.com/zclconf/go-cty/cty"
)

// Codec is the HCL implementation of workbook.Codec.
type Codec struct{}

var _ workbook.Codec = (*Codec)(nil)

// NewCodec creates a new HCL codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Extensions implements workbook.Codec.
func (c *Codec) Extensions() []string { return []string{".hcl"} }

// Decode parses a workbook file. Every cell block must set exactly one of
// value or formula.
func (c *Codec) Decode(name string, src []byte) (*workbook.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}

	doc := &workbook.Document{Cells: make([]workbook.Cell, 0, len(root.Cells))}
	for _, block := range root.Cells {
		content, err := decodeCell(block)
		if err != nil {
			return nil, fmt.Errorf("cell %q in %s: %w", block.Address, name, err)
		}
		doc.Cells = append(doc.Cells, workbook.Cell{Address: block.Address, Content: content})
	}
	return doc, nil
}

func decodeCell(block *cellBlock) (string, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return "", diags
	}

	var content string
	var seen []string
	for attrName, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return "", diags
		}

		var err error
		switch attrName {
		case attrValue:
			content, err = valueText(val)
		case attrFormula:
			content, err = formulaText(val)
		default:
			err = fmt.Errorf("%s: unsupported attribute %q (want %s or %s)", attr.NameRange, attrName, attrValue, attrFormula)
		}
		if err != nil {
			return "", err
		}
		seen = append(seen, attrName)
	}

	if len(seen) != 1 {
		return "", fmt.Errorf("exactly one of %s or %s must be set", attrValue, attrFormula)
	}
	return content, nil
}

// valueText renders a literal. Numbers are written in plain decimal.
func valueText(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("%s must not be null", attrValue)
	}
	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Number:
		return numberText(val), nil
	default:
		return "", fmt.Errorf("%s must be a number or a string, got %s", attrValue, val.Type().FriendlyName())
	}
}

func formulaText(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return "", fmt.Errorf("%s must be a string", attrFormula)
	}
	source := val.AsString()
	if !strings.HasPrefix(source, "=") {
		return "", fmt.Errorf("%s must start with '='", attrFormula)
	}
	return source, nil
}

func numberText(val cty.Value) string {
	return val.AsBigFloat().Text('f', -1)
}

// Encode writes doc as cell blocks. A literal is written as a number when
// reading it back yields the same text, otherwise as a string.
func (c *Codec) Encode(w io.Writer, doc *workbook.Document) error {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	for i, cell := range doc.Cells {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("cell", []string{cell.Address})
		if strings.HasPrefix(cell.Content, "=") {
			block.Body().SetAttributeValue(attrFormula, cty.StringVal(cell.Content))
			continue
		}
		block.Body().SetAttributeValue(attrValue, literalValue(cell.Content))
	}

	_, err := w.Write(file.Bytes())
	return err
}

func literalValue(text string) cty.Value {
	num, err := cty.ParseNumberVal(text)
	if err == nil && numberText(num) == text && (num.AsBigFloat().Sign() != 0 || text == "0") {
		return num
	}
	return cty.StringVal(text)
}
