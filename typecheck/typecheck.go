// Package typecheck implements typeOf/typeWith (spec §4.6, §6): a
// synthesis-only type checker over a two-sort PTS with rules
// (*,*)->*, (square,*)->*, (*,square)->square, (square,square)->square.
//
// Grounded on the teacher pack's _examples/eaburns-pea/checker/checker.go
// top-level Check function shape (return a value or a list of structured
// failures) and its fail/note helper-construction style, narrowed here to
// synthesis-only: the first failing subrule wins and later checks are
// short-circuited (spec §7's policy), so there is no accumulation.
package typecheck

import (
	"github.com/totalconf/core/ctx"
	"github.com/totalconf/core/diag"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/normalize"
	"github.com/totalconf/core/subst"
)

// maxDepth mirrors normalize's recursion bound (spec §5): exceeding it is
// a caller-visible TypeError here, since typeWith has an error channel
// normalize's signature lacks.
const maxDepth = 4096

// TypeOf synthesizes the type of a closed expression in the empty
// context.
func TypeOf(e diag.Ex) (diag.Ex, *diag.TypeError) {
	return TypeWith(ctx.Empty[diag.Ex](), e)
}

// TypeWith synthesizes the type of e in the given context.
func TypeWith(c ctx.Context[diag.Ex], e diag.Ex) (diag.Ex, *diag.TypeError) {
	return synth(c, e, 0)
}

func fail(c ctx.Context[diag.Ex], offending diag.Ex, kind diag.Kind) (diag.Ex, *diag.TypeError) {
	return nil, &diag.TypeError{Context: c, Offending: offending, Kind: kind}
}

func synth(c ctx.Context[diag.Ex], e diag.Ex, depth int) (diag.Ex, *diag.TypeError) {
	if depth > maxDepth {
		return fail(c, e, diag.DepthExceeded{})
	}
	switch n := e.(type) {
	case expr.Const:
		return synthConst(c, n)
	case expr.Var:
		return synthVar(c, n)
	case expr.Lam[expr.X]:
		return synthLam(c, n, depth)
	case expr.Pi[expr.X]:
		return synthPi(c, n, depth)
	case expr.App[expr.X]:
		return synthApp(c, n, depth)
	case expr.Lets[expr.X]:
		return synthLets(c, n, depth)
	case expr.Annot[expr.X]:
		return synthAnnot(c, n, depth)
	case expr.Bool:
		return expr.Const(expr.Type), nil
	case expr.BoolLit:
		return expr.Bool{}, nil
	case expr.BoolAnd[expr.X]:
		return synthBoolAnd(c, n, depth)
	case expr.BoolOr[expr.X]:
		return synthBoolOr(c, n, depth)
	case expr.BoolIf[expr.X]:
		return synthBoolIf(c, n, depth)
	case expr.Natural:
		return expr.Const(expr.Type), nil
	case expr.NaturalLit:
		return expr.Natural{}, nil
	case expr.NaturalFold:
		return naturalFoldType(), nil
	case expr.NaturalPlus[expr.X]:
		return synthNaturalPlus(c, n, depth)
	case expr.NaturalTimes[expr.X]:
		return synthNaturalTimes(c, n, depth)
	case expr.Integer:
		return expr.Const(expr.Type), nil
	case expr.IntegerLit:
		return expr.Integer{}, nil
	case expr.Double:
		return expr.Const(expr.Type), nil
	case expr.DoubleLit:
		return expr.Double{}, nil
	case expr.Text:
		return expr.Const(expr.Type), nil
	case expr.TextLit:
		return expr.Text{}, nil
	case expr.TextAppend[expr.X]:
		return synthTextAppend(c, n, depth)
	case expr.MaybeT[expr.X]:
		return synthMaybeT(c, n, depth)
	case expr.NothingLit:
		return nothingType(), nil
	case expr.JustLit:
		return justType(), nil
	case expr.ListT[expr.X]:
		return synthListT(c, n, depth)
	case expr.ListLit[expr.X]:
		return synthListLit(c, n, depth)
	case expr.ListBuild:
		return listBuildType(), nil
	case expr.ListFold:
		return listFoldType(), nil
	case expr.RecordT[expr.X]:
		return synthRecordT(c, n, depth)
	case expr.RecordLit[expr.X]:
		return synthRecordLit(c, n, depth)
	case expr.FieldAccess[expr.X]:
		return synthFieldAccess(c, n, depth)
	case expr.Embed[expr.X]:
		return expr.Absurd[diag.Ex](n.Payload), nil
	default:
		panic("typecheck: unhandled node type")
	}
}

func synthConst(c ctx.Context[diag.Ex], n expr.Const) (diag.Ex, *diag.TypeError) {
	switch n {
	case expr.Type:
		return expr.Const(expr.Kind), nil
	case expr.Kind:
		return fail(c, n, diag.Untyped{Sort: expr.Kind})
	default:
		panic("typecheck: invalid Const")
	}
}

func synthVar(c ctx.Context[diag.Ex], n expr.Var) (diag.Ex, *diag.TypeError) {
	if t, ok := c.Lookup(n.Name); ok {
		return t, nil
	}
	return fail(c, n, diag.UnboundVariable{Name: n.Name})
}

func synthLam(c ctx.Context[diag.Ex], n expr.Lam[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	bodyCtx := c.Insert(n.Var, n.Type)
	bodyType, err := synth(bodyCtx, n.Body, depth+1)
	if err != nil {
		return nil, err
	}
	pi := expr.Pi[expr.X]{Var: n.Var, Type: n.Type, Body: bodyType}
	// Validate well-formedness of the resulting Pi in the *outer* context.
	if _, err := synth(c, pi, depth+1); err != nil {
		return nil, err
	}
	return pi, nil
}

func synthPi(c ctx.Context[diag.Ex], n expr.Pi[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tA, err := synth(c, n.Type, depth+1)
	if err != nil {
		return nil, err
	}
	k1, ok := normalize.Normalize(tA).(expr.Const)
	if !ok {
		return fail(c, n.Type, diag.InvalidInputType{Input: n.Type})
	}
	bodyCtx := c.Insert(n.Var, n.Type)
	tB, err := synth(bodyCtx, n.Body, depth+1)
	if err != nil {
		return nil, err
	}
	k2, ok := normalize.Normalize(tB).(expr.Const)
	if !ok {
		return fail(c, n.Body, diag.InvalidOutputType{Output: n.Body})
	}
	return expr.Const(expr.Rule(k1, k2)), nil
}

func synthApp(c ctx.Context[diag.Ex], n expr.App[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tf, err := synth(c, n.Fn, depth+1)
	if err != nil {
		return nil, err
	}
	pi, ok := normalize.Normalize(tf).(expr.Pi[expr.X])
	if !ok {
		return fail(c, n.Fn, diag.NotAFunction{Fn: n.Fn, FnType: tf})
	}
	ta, err := synth(c, n.Arg, depth+1)
	if err != nil {
		return nil, err
	}
	nfInput := normalize.Normalize(pi.Type)
	nfArg := normalize.Normalize(ta)
	if !expr.SyntacticEqual(nfInput, nfArg) {
		return fail(c, n.Arg, diag.TypeMismatch{Expected: nfInput, Actual: nfArg})
	}
	return subst.Subst(pi.Var, n.Arg, pi.Body), nil
}

func synthLets(c ctx.Context[diag.Ex], n expr.Lets[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	cur := c
	for _, l := range n.Bindings {
		rhsFn := lambdaOver(l.Args, l.Rhs)
		tr, err := synth(cur, rhsFn, depth+1)
		if err != nil {
			return nil, err
		}
		cur = cur.Insert(l.Name, tr)
	}
	return synth(cur, n.Body, depth+1)
}

func lambdaOver(args []expr.Arg[expr.X], rhs diag.Ex) diag.Ex {
	if len(args) == 0 {
		return rhs
	}
	return expr.Lam[expr.X]{Var: args[0].Name, Type: args[0].Type, Body: lambdaOver(args[1:], rhs)}
}

func synthAnnot(c ctx.Context[diag.Ex], n expr.Annot[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	inferred, err := synth(c, n.Value, depth+1)
	if err != nil {
		return nil, err
	}
	if !expr.SyntacticEqual(normalize.Normalize(n.Type), normalize.Normalize(inferred)) {
		return fail(c, n, diag.AnnotMismatch{
			Value:     n.Value,
			Annotated: normalize.Normalize(n.Type),
			Inferred:  normalize.Normalize(inferred),
		})
	}
	return n.Type, nil
}

func synthBoolAnd(c ctx.Context[diag.Ex], n expr.BoolAnd[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tl, err := synth(c, n.L, depth+1)
	if err != nil {
		return nil, err
	}
	if !isBool(tl) {
		return fail(c, n.L, diag.CantAnd{Side: "left", Operand: n.L, Type: tl})
	}
	tr, err := synth(c, n.R, depth+1)
	if err != nil {
		return nil, err
	}
	if !isBool(tr) {
		return fail(c, n.R, diag.CantAnd{Side: "right", Operand: n.R, Type: tr})
	}
	return expr.Bool{}, nil
}

func synthBoolOr(c ctx.Context[diag.Ex], n expr.BoolOr[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tl, err := synth(c, n.L, depth+1)
	if err != nil {
		return nil, err
	}
	if !isBool(tl) {
		return fail(c, n.L, diag.CantOr{Side: "left", Operand: n.L, Type: tl})
	}
	tr, err := synth(c, n.R, depth+1)
	if err != nil {
		return nil, err
	}
	if !isBool(tr) {
		return fail(c, n.R, diag.CantOr{Side: "right", Operand: n.R, Type: tr})
	}
	return expr.Bool{}, nil
}

func synthBoolIf(c ctx.Context[diag.Ex], n expr.BoolIf[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tc, err := synth(c, n.Cond, depth+1)
	if err != nil {
		return nil, err
	}
	if !isBool(tc) {
		return fail(c, n.Cond, diag.InvalidPredicate{Cond: n.Cond, CondType: tc})
	}
	ty, err := synth(c, n.Then, depth+1)
	if err != nil {
		return nil, err
	}
	tz, err := synth(c, n.Else, depth+1)
	if err != nil {
		return nil, err
	}
	if !expr.SyntacticEqual(normalize.Normalize(ty), normalize.Normalize(tz)) {
		return fail(c, n, diag.IfBranchMismatch{Then: n.Then, Else: n.Else, ThenType: ty, ElseType: tz})
	}
	return ty, nil
}

func synthNaturalPlus(c ctx.Context[diag.Ex], n expr.NaturalPlus[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tl, err := synth(c, n.L, depth+1)
	if err != nil {
		return nil, err
	}
	if !isNatural(tl) {
		return fail(c, n.L, diag.CantAdd{Side: "left", Operand: n.L, Type: tl, Hint: additionHint(n.L)})
	}
	tr, err := synth(c, n.R, depth+1)
	if err != nil {
		return nil, err
	}
	if !isNatural(tr) {
		return fail(c, n.R, diag.CantAdd{Side: "right", Operand: n.R, Type: tr, Hint: additionHint(n.R)})
	}
	return expr.Natural{}, nil
}

func synthNaturalTimes(c ctx.Context[diag.Ex], n expr.NaturalTimes[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tl, err := synth(c, n.L, depth+1)
	if err != nil {
		return nil, err
	}
	if !isNatural(tl) {
		return fail(c, n.L, diag.CantMultiply{Side: "left", Operand: n.L, Type: tl, Hint: additionHint(n.L)})
	}
	tr, err := synth(c, n.R, depth+1)
	if err != nil {
		return nil, err
	}
	if !isNatural(tr) {
		return fail(c, n.R, diag.CantMultiply{Side: "right", Operand: n.R, Type: tr, Hint: additionHint(n.R)})
	}
	return expr.Natural{}, nil
}

// additionHint implements spec §4.6's diagnostic hint: if the offending
// operand is an IntegerLit n with n >= 0, suggest the Natural literal
// spelling +n. Negative IntegerLits get no hint.
func additionHint(e diag.Ex) string {
	if lit, ok := e.(expr.IntegerLit); ok && lit.Value >= 0 {
		return "did you mean the Natural literal +" + itoa(lit.Value) + "?"
	}
	return ""
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func synthTextAppend(c ctx.Context[diag.Ex], n expr.TextAppend[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tl, err := synth(c, n.L, depth+1)
	if err != nil {
		return nil, err
	}
	if !isText(tl) {
		return fail(c, n.L, diag.CantAppend{Side: "left", Operand: n.L, Type: tl})
	}
	tr, err := synth(c, n.R, depth+1)
	if err != nil {
		return nil, err
	}
	if !isText(tr) {
		return fail(c, n.R, diag.CantAppend{Side: "right", Operand: n.R, Type: tr})
	}
	return expr.Text{}, nil
}

func synthMaybeT(c ctx.Context[diag.Ex], n expr.MaybeT[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	t, err := synth(c, n.Elem, depth+1)
	if err != nil {
		return nil, err
	}
	if !isTypeConst(t) {
		return fail(c, n.Elem, diag.InvalidMaybeTypeParam{Param: n.Elem})
	}
	return expr.Const(expr.Type), nil
}

func synthListT(c ctx.Context[diag.Ex], n expr.ListT[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	t, err := synth(c, n.Elem, depth+1)
	if err != nil {
		return nil, err
	}
	if !isTypeConst(t) {
		return fail(c, n.Elem, diag.InvalidListTypeParam{Param: n.Elem})
	}
	return expr.Const(expr.Type), nil
}

func synthListLit(c ctx.Context[diag.Ex], n expr.ListLit[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	telem, err := synth(c, n.Elem, depth+1)
	if err != nil {
		return nil, err
	}
	if !isTypeConst(telem) {
		return fail(c, n.Elem, diag.InvalidListType{Elem: n.Elem})
	}
	nfElem := normalize.Normalize(n.Elem)
	for i, v := range n.Values {
		tv, err := synth(c, v, depth+1)
		if err != nil {
			return nil, err
		}
		if !expr.SyntacticEqual(nfElem, normalize.Normalize(tv)) {
			return fail(c, v, diag.InvalidElement{
				Index:        i,
				Elem:         v,
				ExpectedType: nfElem,
				ActualType:   normalize.Normalize(tv),
			})
		}
	}
	return expr.ListT[expr.X]{Elem: n.Elem}, nil
}

func synthRecordT(c ctx.Context[diag.Ex], n expr.RecordT[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	for _, f := range n.Fields {
		tf, err := synth(c, f.Value, depth+1)
		if err != nil {
			return nil, err
		}
		if !isTypeConst(tf) {
			return fail(c, f.Value, diag.InvalidFieldType{Key: f.Key, Type: f.Value})
		}
	}
	return expr.Const(expr.Type), nil
}

func synthRecordLit(c ctx.Context[diag.Ex], n expr.RecordLit[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	fields := make([]expr.Field[expr.X], len(n.Fields))
	for i, f := range n.Fields {
		tv, err := synth(c, f.Value, depth+1)
		if err != nil {
			return nil, err
		}
		fields[i] = expr.Field[expr.X]{Key: f.Key, Value: tv}
	}
	return expr.RecordT[expr.X]{Fields: fields}, nil
}

func synthFieldAccess(c ctx.Context[diag.Ex], n expr.FieldAccess[expr.X], depth int) (diag.Ex, *diag.TypeError) {
	tr, err := synth(c, n.Record, depth+1)
	if err != nil {
		return nil, err
	}
	rt, ok := normalize.Normalize(tr).(expr.RecordT[expr.X])
	if !ok {
		return fail(c, n.Record, diag.NotARecord{Key: n.Key, Record: n.Record, Type: tr})
	}
	ft, ok := expr.LookupField(rt.Fields, n.Key)
	if !ok {
		return fail(c, n, diag.MissingField{Key: n.Key, RecordType: rt})
	}
	return ft, nil
}

func isBool(t diag.Ex) bool {
	_, ok := normalize.Normalize(t).(expr.Bool)
	return ok
}

func isNatural(t diag.Ex) bool {
	_, ok := normalize.Normalize(t).(expr.Natural)
	return ok
}

func isText(t diag.Ex) bool {
	_, ok := normalize.Normalize(t).(expr.Text)
	return ok
}

func isTypeConst(t diag.Ex) bool {
	c, ok := normalize.Normalize(t).(expr.Const)
	return ok && c == expr.Type
}

// --- built-in constant types (spec §4.6 table) --------------------------

func naturalFoldType() diag.Ex {
	nat := expr.Var{Name: "natural"}
	return expr.Pi[expr.X]{Var: "_", Type: expr.Natural{}, Body: expr.Pi[expr.X]{
		Var: "natural", Type: expr.Const(expr.Type), Body: expr.Pi[expr.X]{
			Var:  "_",
			Type: expr.Pi[expr.X]{Var: "_", Type: nat, Body: nat},
			Body: expr.Pi[expr.X]{Var: "_", Type: nat, Body: nat},
		},
	}}
}

func nothingType() diag.Ex {
	a := expr.Var{Name: "a"}
	return expr.Pi[expr.X]{Var: "a", Type: expr.Const(expr.Type), Body: expr.MaybeT[expr.X]{Elem: a}}
}

func justType() diag.Ex {
	a := expr.Var{Name: "a"}
	return expr.Pi[expr.X]{Var: "a", Type: expr.Const(expr.Type), Body: expr.Pi[expr.X]{
		Var: "_", Type: a, Body: expr.MaybeT[expr.X]{Elem: a},
	}}
}

func listBuildType() diag.Ex {
	a := expr.Var{Name: "a"}
	list := expr.Var{Name: "list"}
	consNilList := expr.Pi[expr.X]{
		Var: "list", Type: expr.Const(expr.Type), Body: expr.Pi[expr.X]{
			Var:  "_",
			Type: expr.Pi[expr.X]{Var: "_", Type: a, Body: expr.Pi[expr.X]{Var: "_", Type: list, Body: list}},
			Body: expr.Pi[expr.X]{Var: "_", Type: list, Body: list},
		},
	}
	return expr.Pi[expr.X]{Var: "a", Type: expr.Const(expr.Type), Body: expr.Pi[expr.X]{
		Var: "_", Type: consNilList, Body: expr.ListT[expr.X]{Elem: a},
	}}
}

func listFoldType() diag.Ex {
	a := expr.Var{Name: "a"}
	list := expr.Var{Name: "list"}
	return expr.Pi[expr.X]{Var: "a", Type: expr.Const(expr.Type), Body: expr.Pi[expr.X]{
		Var: "_", Type: expr.ListT[expr.X]{Elem: a}, Body: expr.Pi[expr.X]{
			Var: "list", Type: expr.Const(expr.Type), Body: expr.Pi[expr.X]{
				Var:  "_",
				Type: expr.Pi[expr.X]{Var: "_", Type: a, Body: expr.Pi[expr.X]{Var: "_", Type: list, Body: list}},
				Body: expr.Pi[expr.X]{Var: "_", Type: list, Body: list},
			},
		},
	}}
}
