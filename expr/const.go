package expr

import "fmt"

// Const is the sort tag of the pure type system's two-element sort
// hierarchy: every type has kind Type, and Type itself has kind Kind.
//
// Grounded on the teacher's Sort enum (iota block + String() + panic
// default), narrowed from Boba's five unification sorts down to the two
// PTS sorts this calculus actually has.
type Const int

const (
	// Type is the sort of types: Bool, Natural, Text, List Natural, etc.
	Type Const = iota + 1
	// Kind is the sort of Type itself.
	Kind
)

func (c Const) String() string {
	switch c {
	case Type:
		return "Type"
	case Kind:
		return "Kind"
	default:
		panic(fmt.Sprintf("expr: invalid Const value %d", int(c)))
	}
}

func (Const) isExpr() {}

// Rule implements the four PTS axiom/rule pairs this calculus supports:
// (*,*)->*, (square,*)->*, (*,square)->square, (square,square)->square.
// In every one of the four rules the result sort equals s2, the sort of
// the Pi type's output; s1 only constrains which rule applies, not what it
// produces.
func Rule(s1, s2 Const) Const {
	return s2
}
