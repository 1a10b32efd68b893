// Package equiv decides e1 == e2 (spec §4.5): alpha-equivalence of
// normalized trees, via a stack of bound-name correspondences introduced
// at each Lam/Pi.
//
// The correspondence stack's push/pop discipline is grounded on the
// teacher's runtime/fiber.go value-stack methods (PushValue/PopOneValue/
// Clear), repurposed here from a bytecode VM's operand stack into a small
// local stack of name pairs for one equivalence walk.
package equiv

import (
	"github.com/rjNemo/underscore"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/normalize"
)

type namePair struct {
	left, right string
}

// correspondence is the bound-name pair stack threaded through one
// equivalence walk.
type correspondence struct {
	pairs []namePair
}

func (c *correspondence) push(l, r string) {
	c.pairs = append(c.pairs, namePair{l, r})
}

func (c *correspondence) pop() {
	c.pairs = c.pairs[:len(c.pairs)-1]
}

func (c *correspondence) clear() {
	c.pairs = c.pairs[:0]
}

// resolve scans the stack top-down (most recently pushed first): on the
// first entry where either name matches, the pair is accepted iff *both*
// match. If no entry matches either name, the pair is accepted iff the
// two names are free and syntactically identical (spec §4.5).
func (c *correspondence) resolve(l, r string) bool {
	// Scan top-down (most recently pushed first): reverse a copy since
	// pairs is stored push-append order.
	reversed := make([]namePair, len(c.pairs))
	for i, p := range c.pairs {
		reversed[len(c.pairs)-1-i] = p
	}
	match, err := underscore.Find(reversed, func(p namePair) bool {
		return p.left == l || p.right == r
	})
	if err != nil {
		return l == r
	}
	return match.left == l && match.right == r
}

// Equivalent decides e1 == e2 per spec §4.5: normalize both sides, then
// walk them together checking alpha-equivalence.
func Equivalent[A comparable](e1, e2 expr.Expr[A]) bool {
	n1 := normalize.Normalize(e1)
	n2 := normalize.Normalize(e2)
	c := &correspondence{}
	return alphaEqual(c, n1, n2)
}

// alphaEqual is the stack-threaded walk itself (spec §4.5), kept as a
// free function (not a method) since Go methods cannot introduce their
// own type parameter beyond the receiver's.
func alphaEqual[A comparable](c *correspondence, a, b expr.Expr[A]) bool {
	switch x := a.(type) {
	case expr.Const:
		y, ok := b.(expr.Const)
		return ok && x == y
	case expr.Var:
		y, ok := b.(expr.Var)
		return ok && c.resolve(x.Name, y.Name)
	case expr.Lam[A]:
		y, ok := b.(expr.Lam[A])
		if !ok || !alphaEqual(c, x.Type, y.Type) {
			return false
		}
		c.push(x.Var, y.Var)
		defer c.pop()
		return alphaEqual(c, x.Body, y.Body)
	case expr.Pi[A]:
		y, ok := b.(expr.Pi[A])
		if !ok || !alphaEqual(c, x.Type, y.Type) {
			return false
		}
		c.push(x.Var, y.Var)
		defer c.pop()
		return alphaEqual(c, x.Body, y.Body)
	case expr.App[A]:
		y, ok := b.(expr.App[A])
		return ok && alphaEqual(c, x.Fn, y.Fn) && alphaEqual(c, x.Arg, y.Arg)
	case expr.Lets[A]:
		y, ok := b.(expr.Lets[A])
		if !ok || len(x.Bindings) != len(y.Bindings) {
			return false
		}
		pushed := 0
		ok = true
		for i := range x.Bindings {
			if !letAlphaEqual(c, x.Bindings[i], y.Bindings[i]) {
				ok = false
				break
			}
			c.push(x.Bindings[i].Name, y.Bindings[i].Name)
			pushed++
		}
		result := ok && alphaEqual(c, x.Body, y.Body)
		for i := 0; i < pushed; i++ {
			c.pop()
		}
		return result
	case expr.Annot[A]:
		y, ok := b.(expr.Annot[A])
		return ok && alphaEqual(c, x.Value, y.Value) && alphaEqual(c, x.Type, y.Type)
	case expr.Bool:
		_, ok := b.(expr.Bool)
		return ok
	case expr.BoolLit:
		y, ok := b.(expr.BoolLit)
		return ok && x.Value == y.Value
	case expr.BoolAnd[A]:
		y, ok := b.(expr.BoolAnd[A])
		return ok && alphaEqual(c, x.L, y.L) && alphaEqual(c, x.R, y.R)
	case expr.BoolOr[A]:
		y, ok := b.(expr.BoolOr[A])
		return ok && alphaEqual(c, x.L, y.L) && alphaEqual(c, x.R, y.R)
	case expr.BoolIf[A]:
		y, ok := b.(expr.BoolIf[A])
		return ok && alphaEqual(c, x.Cond, y.Cond) && alphaEqual(c, x.Then, y.Then) && alphaEqual(c, x.Else, y.Else)
	case expr.Natural:
		_, ok := b.(expr.Natural)
		return ok
	case expr.NaturalLit:
		y, ok := b.(expr.NaturalLit)
		return ok && x.Value == y.Value
	case expr.NaturalFold:
		_, ok := b.(expr.NaturalFold)
		return ok
	case expr.NaturalPlus[A]:
		y, ok := b.(expr.NaturalPlus[A])
		return ok && alphaEqual(c, x.L, y.L) && alphaEqual(c, x.R, y.R)
	case expr.NaturalTimes[A]:
		y, ok := b.(expr.NaturalTimes[A])
		return ok && alphaEqual(c, x.L, y.L) && alphaEqual(c, x.R, y.R)
	case expr.Integer:
		_, ok := b.(expr.Integer)
		return ok
	case expr.IntegerLit:
		y, ok := b.(expr.IntegerLit)
		return ok && x.Value == y.Value
	case expr.Double:
		_, ok := b.(expr.Double)
		return ok
	case expr.DoubleLit:
		y, ok := b.(expr.DoubleLit)
		return ok && x.Value == y.Value
	case expr.Text:
		_, ok := b.(expr.Text)
		return ok
	case expr.TextLit:
		y, ok := b.(expr.TextLit)
		return ok && x.Value == y.Value
	case expr.TextAppend[A]:
		y, ok := b.(expr.TextAppend[A])
		return ok && alphaEqual(c, x.L, y.L) && alphaEqual(c, x.R, y.R)
	case expr.MaybeT[A]:
		y, ok := b.(expr.MaybeT[A])
		return ok && alphaEqual(c, x.Elem, y.Elem)
	case expr.NothingLit:
		_, ok := b.(expr.NothingLit)
		return ok
	case expr.JustLit:
		_, ok := b.(expr.JustLit)
		return ok
	case expr.ListT[A]:
		y, ok := b.(expr.ListT[A])
		return ok && alphaEqual(c, x.Elem, y.Elem)
	case expr.ListLit[A]:
		y, ok := b.(expr.ListLit[A])
		if !ok || !alphaEqual(c, x.Elem, y.Elem) || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !alphaEqual(c, x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true
	case expr.ListBuild:
		_, ok := b.(expr.ListBuild)
		return ok
	case expr.ListFold:
		_, ok := b.(expr.ListFold)
		return ok
	case expr.RecordT[A]:
		y, ok := b.(expr.RecordT[A])
		return ok && fieldsAlphaEqual(c, x.Fields, y.Fields)
	case expr.RecordLit[A]:
		y, ok := b.(expr.RecordLit[A])
		return ok && fieldsAlphaEqual(c, x.Fields, y.Fields)
	case expr.FieldAccess[A]:
		y, ok := b.(expr.FieldAccess[A])
		return ok && x.Key == y.Key && alphaEqual(c, x.Record, y.Record)
	case expr.Embed[A]:
		y, ok := b.(expr.Embed[A])
		return ok && x.Payload == y.Payload
	default:
		panic("equiv: unhandled node type")
	}
}

func letAlphaEqual[A comparable](c *correspondence, l, r expr.Let[A]) bool {
	if len(l.Args) != len(r.Args) {
		return false
	}
	pushed := 0
	ok := true
	for i := range l.Args {
		if !alphaEqual(c, l.Args[i].Type, r.Args[i].Type) {
			ok = false
			break
		}
		c.push(l.Args[i].Name, r.Args[i].Name)
		pushed++
	}
	result := ok && alphaEqual(c, l.Rhs, r.Rhs)
	for i := 0; i < pushed; i++ {
		c.pop()
	}
	return result
}

// fieldsAlphaEqual requires keys to coincide in canonical order (spec
// §4.5) and associated types/values to be pairwise equivalent.
func fieldsAlphaEqual[A comparable](c *correspondence, l, r []expr.Field[A]) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i].Key != r[i].Key || !alphaEqual(c, l[i].Value, r[i].Value) {
			return false
		}
	}
	return true
}
