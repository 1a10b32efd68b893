// Package subst implements capture-avoiding substitution (spec §4.3).
// Capture is avoided by shadowing, never by renaming: grounded on the
// teacher's compiler/substitution/substitution.go, whose Compose threads
// a single accumulator through a recursive merge; here the accumulator is
// the boolean "is x still in scope" flag threaded through a Lets fold.
package subst

import "github.com/totalconf/core/expr"

// Subst replaces free occurrences of variable x in target by replacement.
// Embeds are returned unchanged since every Embed payload is closed
// (spec §4.3).
func Subst[A any](x string, replacement, target expr.Expr[A]) expr.Expr[A] {
	switch n := target.(type) {
	case expr.Const:
		return n
	case expr.Var:
		if n.Name == x {
			return replacement
		}
		return n
	case expr.Lam[A]:
		newType := Subst[A](x, replacement, n.Type)
		if n.Var == x {
			// x is shadowed by this binder: the type is still substituted
			// (it's evaluated in the outer scope) but the body is not.
			return expr.Lam[A]{Var: n.Var, Type: newType, Body: n.Body}
		}
		return expr.Lam[A]{Var: n.Var, Type: newType, Body: Subst[A](x, replacement, n.Body)}
	case expr.Pi[A]:
		newType := Subst[A](x, replacement, n.Type)
		if n.Var == x {
			return expr.Pi[A]{Var: n.Var, Type: newType, Body: n.Body}
		}
		return expr.Pi[A]{Var: n.Var, Type: newType, Body: Subst[A](x, replacement, n.Body)}
	case expr.App[A]:
		return expr.App[A]{Fn: Subst[A](x, replacement, n.Fn), Arg: Subst[A](x, replacement, n.Arg)}
	case expr.Lets[A]:
		bindings, body := substLets(x, replacement, n.Bindings, n.Body)
		return expr.Lets[A]{Bindings: bindings, Body: body}
	case expr.Annot[A]:
		return expr.Annot[A]{Value: Subst[A](x, replacement, n.Value), Type: Subst[A](x, replacement, n.Type)}
	case expr.Bool:
		return n
	case expr.BoolLit:
		return n
	case expr.BoolAnd[A]:
		return expr.BoolAnd[A]{L: Subst[A](x, replacement, n.L), R: Subst[A](x, replacement, n.R)}
	case expr.BoolOr[A]:
		return expr.BoolOr[A]{L: Subst[A](x, replacement, n.L), R: Subst[A](x, replacement, n.R)}
	case expr.BoolIf[A]:
		return expr.BoolIf[A]{
			Cond: Subst[A](x, replacement, n.Cond),
			Then: Subst[A](x, replacement, n.Then),
			Else: Subst[A](x, replacement, n.Else),
		}
	case expr.Natural:
		return n
	case expr.NaturalLit:
		return n
	case expr.NaturalFold:
		return n
	case expr.NaturalPlus[A]:
		return expr.NaturalPlus[A]{L: Subst[A](x, replacement, n.L), R: Subst[A](x, replacement, n.R)}
	case expr.NaturalTimes[A]:
		return expr.NaturalTimes[A]{L: Subst[A](x, replacement, n.L), R: Subst[A](x, replacement, n.R)}
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
		return expr.TextAppend[A]{L: Subst[A](x, replacement, n.L), R: Subst[A](x, replacement, n.R)}
	case expr.MaybeT[A]:
		return expr.MaybeT[A]{Elem: Subst[A](x, replacement, n.Elem)}
	case expr.NothingLit:
		return n
	case expr.JustLit:
		return n
	case expr.ListT[A]:
		return expr.ListT[A]{Elem: Subst[A](x, replacement, n.Elem)}
	case expr.ListLit[A]:
		values := make([]expr.Expr[A], len(n.Values))
		for i, v := range n.Values {
			values[i] = Subst[A](x, replacement, v)
		}
		return expr.ListLit[A]{Elem: Subst[A](x, replacement, n.Elem), Values: values}
	case expr.ListBuild:
		return n
	case expr.ListFold:
		return n
	case expr.RecordT[A]:
		return expr.RecordT[A]{Fields: substFields(x, replacement, n.Fields)}
	case expr.RecordLit[A]:
		return expr.RecordLit[A]{Fields: substFields(x, replacement, n.Fields)}
	case expr.FieldAccess[A]:
		return expr.FieldAccess[A]{Record: Subst[A](x, replacement, n.Record), Key: n.Key}
	case expr.Embed[A]:
		return n
	default:
		panic("subst: unhandled node type")
	}
}

func substFields[A any](x string, replacement expr.Expr[A], fields []expr.Field[A]) []expr.Field[A] {
	out := make([]expr.Field[A], len(fields))
	for i, f := range fields {
		out[i] = expr.Field[A]{Key: f.Key, Value: Subst[A](x, replacement, f.Value)}
	}
	return out
}

// substLets implements spec §4.3's Lets rule: walk bindings left to right
// with a boolean flag tracking whether x is still in scope. For each
// binding, argument types are substituted left-to-right gated by that same
// flag (arguments may themselves shadow x); the right-hand side is
// substituted iff the flag survived all of the binding's argument binders.
// After the binding, the flag is cleared for the remaining bindings and
// the final body iff the binding's own name equals x.
func substLets[A any](x string, replacement expr.Expr[A], bindings []expr.Let[A], body expr.Expr[A]) ([]expr.Let[A], expr.Expr[A]) {
	inScope := true
	out := make([]expr.Let[A], len(bindings))
	for i, l := range bindings {
		args := make([]expr.Arg[A], len(l.Args))
		argScope := inScope
		for j, a := range l.Args {
			newType := a.Type
			if argScope {
				newType = Subst[A](x, replacement, a.Type)
			}
			args[j] = expr.Arg[A]{Name: a.Name, Type: newType}
			if a.Name == x {
				argScope = false
			}
		}
		rhs := l.Rhs
		if argScope {
			rhs = Subst[A](x, replacement, l.Rhs)
		}
		out[i] = expr.Let[A]{Name: l.Name, Args: args, Rhs: rhs}
		if l.Name == x {
			inScope = false
		}
	}
	newBody := body
	if inScope {
		newBody = Subst[A](x, replacement, body)
	}
	return out, newBody
}
