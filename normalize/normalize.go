// Package normalize implements normalize(e) (spec §4.4): weak-then-strong
// normal form via structural recursion, with beta-reduction, primitive
// reduction, and the three fusion rewrites for Natural/fold, List/build,
// and List/fold.
//
// Grounded on the teacher's compiler/types/convert.go, whose
// TypeToBooleanEquation/BooleanEquationToType pair is exactly the
// "detect a shape, then reconstruct" discipline spec §4.4 requires for
// List/build fusion, and compiler/types/builder.go's Build* reconstruction
// helpers.
package normalize

import (
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/subst"
)

// maxDepth bounds recursion on pathologically deep or non-terminating
// (necessarily ill-typed, per spec §4.4) input. Exceeding it does not
// crash; Normalize returns its argument unreduced and does not report
// that the limit was hit.
const maxDepth = 4096

type depthExceeded struct{}

// Normalize reduces e to normal form. Per spec §4.4/§9, this is only
// guaranteed to terminate on well-typed input; on pathological input that
// exceeds maxDepth, Normalize returns its argument unreduced rather than
// panicking or looping forever, since normalize's signature has no error
// channel to report the failure through.
func Normalize[A any](e expr.Expr[A]) (result expr.Expr[A]) {
	result = e
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(depthExceeded); ok {
				result = e
				return
			}
			panic(r)
		}
	}()
	return nf[A](e, 0)
}

func nf[A any](e expr.Expr[A], depth int) expr.Expr[A] {
	if depth > maxDepth {
		panic(depthExceeded{})
	}
	switch n := e.(type) {
	case expr.Const:
		return n
	case expr.Var:
		return n
	case expr.Lam[A]:
		return expr.Lam[A]{Var: n.Var, Type: nf[A](n.Type, depth+1), Body: nf[A](n.Body, depth+1)}
	case expr.Pi[A]:
		return expr.Pi[A]{Var: n.Var, Type: nf[A](n.Type, depth+1), Body: nf[A](n.Body, depth+1)}
	case expr.App[A]:
		return nfApp(n, depth)
	case expr.Lets[A]:
		return nf[A](desugarLets(n.Bindings, n.Body), depth+1)
	case expr.Annot[A]:
		// Annotations are erased.
		return nf[A](n.Value, depth+1)
	case expr.Bool:
		return n
	case expr.BoolLit:
		return n
	case expr.BoolAnd[A]:
		return nfBoolAnd(n, depth)
	case expr.BoolOr[A]:
		return nfBoolOr(n, depth)
	case expr.BoolIf[A]:
		return nfBoolIf(n, depth)
	case expr.Natural:
		return n
	case expr.NaturalLit:
		return n
	case expr.NaturalFold:
		return n
	case expr.NaturalPlus[A]:
		return nfNaturalPlus(n, depth)
	case expr.NaturalTimes[A]:
		return nfNaturalTimes(n, depth)
	case expr.Integer:
		return n
	case expr.IntegerLit:
		return n
	case expr.Double:
		return n
	case expr.DoubleLit:
		return n
	case expr.Text:
		return n
	case expr.TextLit:
		return n
	case expr.TextAppend[A]:
		return nfTextAppend(n, depth)
	case expr.MaybeT[A]:
		return expr.MaybeT[A]{Elem: nf[A](n.Elem, depth+1)}
	case expr.NothingLit:
		return n
	case expr.JustLit:
		return n
	case expr.ListT[A]:
		return expr.ListT[A]{Elem: nf[A](n.Elem, depth+1)}
	case expr.ListLit[A]:
		values := make([]expr.Expr[A], len(n.Values))
		for i, v := range n.Values {
			values[i] = nf[A](v, depth+1)
		}
		return expr.ListLit[A]{Elem: nf[A](n.Elem, depth+1), Values: values}
	case expr.ListBuild:
		return n
	case expr.ListFold:
		return n
	case expr.RecordT[A]:
		return expr.RecordT[A]{Fields: nfFields(n.Fields, depth)}
	case expr.RecordLit[A]:
		return expr.RecordLit[A]{Fields: nfFields(n.Fields, depth)}
	case expr.FieldAccess[A]:
		return nfFieldAccess(n, depth)
	case expr.Embed[A]:
		return n
	default:
		panic("normalize: unhandled node type")
	}
}

func nfFields[A any](fields []expr.Field[A], depth int) []expr.Field[A] {
	out := make([]expr.Field[A], len(fields))
	for i, f := range fields {
		out[i] = expr.Field[A]{Key: f.Key, Value: nf[A](f.Value, depth+1)}
	}
	return out
}

func nfBoolAnd[A any](n expr.BoolAnd[A], depth int) expr.Expr[A] {
	l, r := nf[A](n.L, depth+1), nf[A](n.R, depth+1)
	if lb, ok := l.(expr.BoolLit); ok {
		if rb, ok := r.(expr.BoolLit); ok {
			return expr.BoolLit{Value: lb.Value && rb.Value}
		}
	}
	return expr.BoolAnd[A]{L: l, R: r}
}

func nfBoolOr[A any](n expr.BoolOr[A], depth int) expr.Expr[A] {
	l, r := nf[A](n.L, depth+1), nf[A](n.R, depth+1)
	if lb, ok := l.(expr.BoolLit); ok {
		if rb, ok := r.(expr.BoolLit); ok {
			return expr.BoolLit{Value: lb.Value || rb.Value}
		}
	}
	return expr.BoolOr[A]{L: l, R: r}
}

func nfBoolIf[A any](n expr.BoolIf[A], depth int) expr.Expr[A] {
	cond := nf[A](n.Cond, depth+1)
	if b, ok := cond.(expr.BoolLit); ok {
		if b.Value {
			return nf[A](n.Then, depth+1)
		}
		return nf[A](n.Else, depth+1)
	}
	return expr.BoolIf[A]{Cond: cond, Then: nf[A](n.Then, depth+1), Else: nf[A](n.Else, depth+1)}
}

func nfNaturalPlus[A any](n expr.NaturalPlus[A], depth int) expr.Expr[A] {
	l, r := nf[A](n.L, depth+1), nf[A](n.R, depth+1)
	if ln, ok := l.(expr.NaturalLit); ok {
		if rn, ok := r.(expr.NaturalLit); ok {
			return expr.NaturalLit{Value: ln.Value + rn.Value}
		}
	}
	return expr.NaturalPlus[A]{L: l, R: r}
}

func nfNaturalTimes[A any](n expr.NaturalTimes[A], depth int) expr.Expr[A] {
	l, r := nf[A](n.L, depth+1), nf[A](n.R, depth+1)
	if ln, ok := l.(expr.NaturalLit); ok {
		if rn, ok := r.(expr.NaturalLit); ok {
			return expr.NaturalLit{Value: ln.Value * rn.Value}
		}
	}
	return expr.NaturalTimes[A]{L: l, R: r}
}

func nfTextAppend[A any](n expr.TextAppend[A], depth int) expr.Expr[A] {
	l, r := nf[A](n.L, depth+1), nf[A](n.R, depth+1)
	if lt, ok := l.(expr.TextLit); ok {
		if rt, ok := r.(expr.TextLit); ok {
			return expr.TextLit{Value: lt.Value + rt.Value}
		}
	}
	return expr.TextAppend[A]{L: l, R: r}
}

func nfFieldAccess[A any](n expr.FieldAccess[A], depth int) expr.Expr[A] {
	rec := nf[A](n.Record, depth+1)
	if lit, ok := rec.(expr.RecordLit[A]); ok {
		if v, ok := expr.LookupField(lit.Fields, n.Key); ok {
			return nf[A](v, depth+1)
		}
	}
	// Should not occur on well-typed input, but must not crash: reconstruct
	// with the normalized record and keep the field access (spec §4.4).
	return expr.FieldAccess[A]{Record: rec, Key: n.Key}
}

// desugarLets implements spec §4.4's Lets rule: right-fold into nested
// substitutions. For each Let f args rhs, form \args. rhs and substitute f
// by that lambda in the remainder.
func desugarLets[A any](bindings []expr.Let[A], body expr.Expr[A]) expr.Expr[A] {
	if len(bindings) == 0 {
		return body
	}
	first := bindings[0]
	rest := desugarLets(bindings[1:], body)
	fn := lambdaOver(first.Args, first.Rhs)
	return subst.Subst[A](first.Name, fn, rest)
}

func lambdaOver[A any](args []expr.Arg[A], rhs expr.Expr[A]) expr.Expr[A] {
	if len(args) == 0 {
		return rhs
	}
	return expr.Lam[A]{Var: args[0].Name, Type: args[0].Type, Body: lambdaOver(args[1:], rhs)}
}

func nfApp[A any](n expr.App[A], depth int) expr.Expr[A] {
	fn := nf[A](n.Fn, depth+1)
	arg := nf[A](n.Arg, depth+1)
	if lam, ok := fn.(expr.Lam[A]); ok {
		return nf[A](subst.Subst[A](lam.Var, arg, lam.Body), depth+1)
	}
	rebuilt := expr.App[A]{Fn: fn, Arg: arg}
	head, args := spine[A](rebuilt)
	switch head.(type) {
	case expr.NaturalFold:
		if len(args) == 4 {
			if reduced, ok := tryNaturalFold(args); ok {
				return nf[A](reduced, depth+1)
			}
		}
	case expr.ListBuild:
		if len(args) == 2 {
			if reduced, ok := tryListBuild(args, depth); ok {
				return nf[A](reduced, depth+1)
			}
		}
	case expr.ListFold:
		if len(args) == 5 {
			if reduced, ok := tryListFold(args); ok {
				return nf[A](reduced, depth+1)
			}
		}
	}
	return rebuilt
}

// spine decomposes a chain of App nodes into its head and argument list,
// outermost argument last.
func spine[A any](e expr.Expr[A]) (expr.Expr[A], []expr.Expr[A]) {
	var args []expr.Expr[A]
	cur := e
	for {
		app, ok := cur.(expr.App[A])
		if !ok {
			// Reverse: we collected innermost-first while unwinding.
			for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
				args[i], args[j] = args[j], args[i]
			}
			return cur, args
		}
		args = append(args, app.Arg)
		cur = app.Fn
	}
}

// tryNaturalFold implements the Natural/fold fusion rule: given args
// [n, _typeArg, succ, zero], reduce NaturalFold n _ succ zero to
// succ^n(zero) when n is a literal. Reducing to a finite, normalizable
// spine on well-typed input (spec §4.4); otherwise leave unreduced.
func tryNaturalFold[A any](args []expr.Expr[A]) (expr.Expr[A], bool) {
	lit, ok := args[0].(expr.NaturalLit)
	if !ok {
		return nil, false
	}
	succ, zero := args[2], args[3]
	acc := zero
	for i := uint64(0); i < lit.Value; i++ {
		acc = expr.App[A]{Fn: succ, Arg: acc}
	}
	return acc, true
}

// tryListBuild implements the List/build fusion rule. k is applied to
// (List t, Var "Cons", Var "Nil"); if the normalized result is a
// well-formed Cons/Nil spine over those exact free names, it is collected
// into a ListLit. Detection uses the literal names "Cons"/"Nil" verbatim,
// which is fragile under shadowing but matches the behavior spec §9
// requires be preserved, not fixed.
func tryListBuild[A any](args []expr.Expr[A], depth int) (expr.Expr[A], bool) {
	t, k := args[0], args[1]
	church := expr.App[A]{
		Fn: expr.App[A]{
			Fn:  expr.App[A]{Fn: k, Arg: expr.ListT[A]{Elem: t}},
			Arg: expr.Var{Name: "Cons"},
		},
		Arg: expr.Var{Name: "Nil"},
	}
	result := nf[A](church, depth+1)
	values, ok := consNilSpine[A](result)
	if !ok {
		return nil, false
	}
	return expr.ListLit[A]{Elem: t, Values: values}, true
}

// consNilSpine performs the two-pass check-then-reconstruct spec §4.4
// calls for: first it confirms the whole spine is a well-formed chain of
// Cons applications terminated by Nil, then (having confirmed that) the
// caller reconstructs a ListLit from the collected elements.
func consNilSpine[A any](e expr.Expr[A]) ([]expr.Expr[A], bool) {
	var values []expr.Expr[A]
	cur := e
	for {
		if v, ok := cur.(expr.Var); ok && v.Name == "Nil" {
			return values, true
		}
		outer, ok := cur.(expr.App[A])
		if !ok {
			return nil, false
		}
		inner, ok := outer.Fn.(expr.App[A])
		if !ok {
			return nil, false
		}
		head, ok := inner.Fn.(expr.Var)
		if !ok || head.Name != "Cons" {
			return nil, false
		}
		values = append(values, inner.Arg)
		cur = outer.Arg
	}
}

// tryListFold implements the List/fold fusion rule: args are
// [_typeArg, list, _listTypeArg, cons, nilVal]; when list is a literal,
// fold cons/nilVal over it right-to-left (foldr).
func tryListFold[A any](args []expr.Expr[A]) (expr.Expr[A], bool) {
	lit, ok := args[1].(expr.ListLit[A])
	if !ok {
		return nil, false
	}
	cons, nilVal := args[3], args[4]
	acc := nilVal
	for i := len(lit.Values) - 1; i >= 0; i-- {
		acc = expr.App[A]{Fn: expr.App[A]{Fn: cons, Arg: lit.Values[i]}, Arg: acc}
	}
	return acc, true
}
