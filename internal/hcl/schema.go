package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of a workbook file. Anything other than
// cell blocks is rejected by gohcl.
type fileRoot struct {
	Cells []*cellBlock `hcl:"cell,block"`
}

// cellBlock is a `cell "ADDR" { ... }` block. Its attributes are read
// individually so that value may be either a number or a string.
type cellBlock struct {
	Address string   `hcl:"address,label"`
	Body    hcl.Body `hcl:",remain"`
}

const (
	attrValue   = "value"
	attrFormula = "formula"
)
