package formula

import "github.com/specialistvlad/gridcalc/internal/cellref"

// Walk visits node and its children depth-first, left to right. Returning
// false from fn skips the children of the visited node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Unary:
		Walk(n.Operand, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Aggregate:
		Walk(n.Arg, fn)
	}
}

// References lists the distinct cells the tree reads, ranges expanded, in
// order of first appearance.
func References(node Node) []cellref.Address {
	var refs []cellref.Address
	seen := make(map[cellref.Address]struct{})
	add := func(addr cellref.Address) {
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		refs = append(refs, addr)
	}

	Walk(node, func(n Node) bool {
		switch ref := n.(type) {
		case *CellRef:
			add(ref.Address)
		case *RangeRef:
			for addr := range ref.Range.Cells() {
				add(addr)
			}
		}
		return true
	})
	return refs
}
