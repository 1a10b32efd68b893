package cmd

import (
	"github.com/pkg/errors"
	"github.com/totalconf/core/expr"
)

// toClosed rebuilds e as an Expr[expr.X], failing if it still contains an
// Embed node. Import resolution is out of scope (spec's explicit
// Non-goal), so this is the only bridge between the parser-facing
// Expr[Path] the JSON codec reads and the checker-facing Expr[X]
// typeWith/normalize operate over: every input to `core check`/
// `core normalize` must already be closed.
//
// Mirrors expr.Bind's exhaustive-switch shape rather than calling Bind
// itself, since Bind's callback has no error channel to report an
// unresolved Embed through.
func toClosed(e expr.Expr[expr.Path]) (expr.Expr[expr.X], error) {
	switch n := e.(type) {
	case expr.Const:
		return n, nil
	case expr.Var:
		return n, nil
	case expr.Lam[expr.Path]:
		t, err := toClosed(n.Type)
		if err != nil {
			return nil, err
		}
		b, err := toClosed(n.Body)
		if err != nil {
			return nil, err
		}
		return expr.Lam[expr.X]{Var: n.Var, Type: t, Body: b}, nil
	case expr.Pi[expr.Path]:
		t, err := toClosed(n.Type)
		if err != nil {
			return nil, err
		}
		b, err := toClosed(n.Body)
		if err != nil {
			return nil, err
		}
		return expr.Pi[expr.X]{Var: n.Var, Type: t, Body: b}, nil
	case expr.App[expr.Path]:
		f, err := toClosed(n.Fn)
		if err != nil {
			return nil, err
		}
		a, err := toClosed(n.Arg)
		if err != nil {
			return nil, err
		}
		return expr.App[expr.X]{Fn: f, Arg: a}, nil
	case expr.Lets[expr.Path]:
		bindings := make([]expr.Let[expr.X], len(n.Bindings))
		for i, l := range n.Bindings {
			args := make([]expr.Arg[expr.X], len(l.Args))
			for j, a := range l.Args {
				at, err := toClosed(a.Type)
				if err != nil {
					return nil, err
				}
				args[j] = expr.Arg[expr.X]{Name: a.Name, Type: at}
			}
			rhs, err := toClosed(l.Rhs)
			if err != nil {
				return nil, err
			}
			bindings[i] = expr.Let[expr.X]{Name: l.Name, Args: args, Rhs: rhs}
		}
		body, err := toClosed(n.Body)
		if err != nil {
			return nil, err
		}
		return expr.Lets[expr.X]{Bindings: bindings, Body: body}, nil
	case expr.Annot[expr.Path]:
		v, err := toClosed(n.Value)
		if err != nil {
			return nil, err
		}
		t, err := toClosed(n.Type)
		if err != nil {
			return nil, err
		}
		return expr.Annot[expr.X]{Value: v, Type: t}, nil
	case expr.Bool:
		return n, nil
	case expr.BoolLit:
		return n, nil
	case expr.BoolAnd[expr.Path]:
		l, r, err := closedBinop(n.L, n.R)
		if err != nil {
			return nil, err
		}
		return expr.BoolAnd[expr.X]{L: l, R: r}, nil
	case expr.BoolOr[expr.Path]:
		l, r, err := closedBinop(n.L, n.R)
		if err != nil {
			return nil, err
		}
		return expr.BoolOr[expr.X]{L: l, R: r}, nil
	case expr.BoolIf[expr.Path]:
		cond, err := toClosed(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toClosed(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := toClosed(n.Else)
		if err != nil {
			return nil, err
		}
		return expr.BoolIf[expr.X]{Cond: cond, Then: then, Else: els}, nil
	case expr.Natural:
		return n, nil
	case expr.NaturalLit:
		return n, nil
	case expr.NaturalFold:
		return n, nil
	case expr.NaturalPlus[expr.Path]:
		l, r, err := closedBinop(n.L, n.R)
		if err != nil {
			return nil, err
		}
		return expr.NaturalPlus[expr.X]{L: l, R: r}, nil
	case expr.NaturalTimes[expr.Path]:
		l, r, err := closedBinop(n.L, n.R)
		if err != nil {
			return nil, err
		}
		return expr.NaturalTimes[expr.X]{L: l, R: r}, nil
	case expr.Integer:
		return n, nil
	case expr.IntegerLit:
		return n, nil
	case expr.Double:
		return n, nil
	case expr.DoubleLit:
		return n, nil
	case expr.Text:
		return n, nil
	case expr.TextLit:
		return n, nil
	case expr.TextAppend[expr.Path]:
		l, r, err := closedBinop(n.L, n.R)
		if err != nil {
			return nil, err
		}
		return expr.TextAppend[expr.X]{L: l, R: r}, nil
	case expr.MaybeT[expr.Path]:
		elem, err := toClosed(n.Elem)
		if err != nil {
			return nil, err
		}
		return expr.MaybeT[expr.X]{Elem: elem}, nil
	case expr.NothingLit:
		return n, nil
	case expr.JustLit:
		return n, nil
	case expr.ListT[expr.Path]:
		elem, err := toClosed(n.Elem)
		if err != nil {
			return nil, err
		}
		return expr.ListT[expr.X]{Elem: elem}, nil
	case expr.ListLit[expr.Path]:
		elem, err := toClosed(n.Elem)
		if err != nil {
			return nil, err
		}
		values := make([]expr.Expr[expr.X], len(n.Values))
		for i, v := range n.Values {
			cv, err := toClosed(v)
			if err != nil {
				return nil, err
			}
			values[i] = cv
		}
		return expr.ListLit[expr.X]{Elem: elem, Values: values}, nil
	case expr.ListBuild:
		return n, nil
	case expr.ListFold:
		return n, nil
	case expr.RecordT[expr.Path]:
		fields, err := closedFields(n.Fields)
		if err != nil {
			return nil, err
		}
		return expr.NewRecordT(fields), nil
	case expr.RecordLit[expr.Path]:
		fields, err := closedFields(n.Fields)
		if err != nil {
			return nil, err
		}
		return expr.NewRecordLit(fields), nil
	case expr.FieldAccess[expr.Path]:
		r, err := toClosed(n.Record)
		if err != nil {
			return nil, err
		}
		return expr.FieldAccess[expr.X]{Record: r, Key: n.Key}, nil
	case expr.Embed[expr.Path]:
		return nil, errors.Errorf("unresolved import %s: import resolution is not supported, pass a fully closed tree", n.Payload.String())
	default:
		panic("cmd: unhandled node type")
	}
}

func closedBinop(l, r expr.Expr[expr.Path]) (expr.Expr[expr.X], expr.Expr[expr.X], error) {
	cl, err := toClosed(l)
	if err != nil {
		return nil, nil, err
	}
	cr, err := toClosed(r)
	if err != nil {
		return nil, nil, err
	}
	return cl, cr, nil
}

func closedFields(fields []expr.Field[expr.Path]) ([]expr.Field[expr.X], error) {
	out := make([]expr.Field[expr.X], len(fields))
	for i, f := range fields {
		v, err := toClosed(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = expr.Field[expr.X]{Key: f.Key, Value: v}
	}
	return out, nil
}

// reopen widens a closed Expr[X] back to Expr[Path] for re-encoding, via
// X's uninhabited Absurd eliminator (spec §9's "empty sum" design note).
func reopen(e expr.Expr[expr.X]) expr.Expr[expr.Path] {
	return expr.Map(func(x expr.X) expr.Path { return expr.Absurd[expr.Path](x) }, e)
}
