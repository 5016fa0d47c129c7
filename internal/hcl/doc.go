// Package hcl provides the HCL workbook format. It is responsible for
// parsing cell blocks, turning attribute values into content text through
// cty, and writing documents back with hclwrite.
//
//	cell "A1" {
//	  value = 5
//	}
//	cell "A3" {
//	  formula = "=A1*2"
//	}
package hcl
