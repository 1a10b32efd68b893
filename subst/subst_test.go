package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/subst"
)

func TestSubstReplacesFreeVariable(t *testing.T) {
	// (x && True)[x := False] = False && True
	target := expr.BoolAnd[expr.X]{L: expr.Var{Name: "x"}, R: expr.BoolLit{Value: true}}
	got := subst.Subst[expr.X]("x", expr.BoolLit{Value: false}, target)
	want := expr.BoolAnd[expr.X]{L: expr.BoolLit{Value: false}, R: expr.BoolLit{Value: true}}
	assert.True(t, expr.SyntacticEqual[expr.X](want, got))
}

func TestSubstStopsAtShadowingLambda(t *testing.T) {
	// (\(x : Bool) -> x)[x := True] = \(x : Bool) -> x  (body untouched: x is shadowed)
	target := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}}
	got := subst.Subst[expr.X]("x", expr.BoolLit{Value: true}, target)
	assert.True(t, expr.SyntacticEqual[expr.X](target, got), "shadowed binder's body must not be substituted into")
}

func TestSubstDoesNotRenameToAvoidCapture(t *testing.T) {
	// (\(y : Bool) -> x)[x := y] = \(y : Bool) -> y -- capture-by-shadowing
	// is the documented (not a bug) behavior: spec §4.3/§9 require shadowing,
	// never fresh-renaming, as the capture-avoidance strategy.
	target := expr.Lam[expr.X]{Var: "y", Type: expr.Bool{}, Body: expr.Var{Name: "x"}}
	got := subst.Subst[expr.X]("x", expr.Var{Name: "y"}, target)
	want := expr.Lam[expr.X]{Var: "y", Type: expr.Bool{}, Body: expr.Var{Name: "y"}}
	assert.True(t, expr.SyntacticEqual[expr.X](want, got))
}

func TestSubstLetsScopeFlagStopsAtOwnBindingName(t *testing.T) {
	// let x = x in let y = x in x
	// substituting the outer free x := False only affects the first
	// binding's own rhs (still referring to the outer x); once the
	// binding named x is walked, x is shadowed for everything after it
	// (the second binding's rhs and the final body), per the left-to-right
	// scope-flag walk spec §4.3 requires.
	target := expr.Lets[expr.X]{
		Bindings: []expr.Let[expr.X]{
			{Name: "x", Rhs: expr.Var{Name: "x"}},
			{Name: "y", Rhs: expr.Var{Name: "x"}},
		},
		Body: expr.Var{Name: "x"},
	}
	got := subst.Subst[expr.X]("x", expr.BoolLit{Value: false}, target)
	want := expr.Lets[expr.X]{
		Bindings: []expr.Let[expr.X]{
			{Name: "x", Rhs: expr.BoolLit{Value: false}},
			{Name: "y", Rhs: expr.Var{Name: "x"}},
		},
		Body: expr.Var{Name: "x"},
	}
	assert.True(t, expr.SyntacticEqual[expr.X](want, got))
}
