package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/normalize"
	"github.com/totalconf/core/subst"
)

func TestBetaReducesApplication(t *testing.T) {
	// (\(x : Bool) -> x) True
	e := expr.App[expr.X]{
		Fn:  expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}},
		Arg: expr.BoolLit{Value: true},
	}
	got := normalize.Normalize[expr.X](e)
	assert.Equal(t, expr.BoolLit{Value: true}, got)
}

func TestNaturalArithmeticReducesToALiteral(t *testing.T) {
	// +2 + +3 = +5
	e := expr.NaturalPlus[expr.X]{L: expr.NaturalLit{Value: 2}, R: expr.NaturalLit{Value: 3}}
	assert.Equal(t, expr.NaturalLit{Value: 5}, normalize.Normalize[expr.X](e))
}

func TestNaturalTimesReducesToALiteral(t *testing.T) {
	e := expr.NaturalTimes[expr.X]{L: expr.NaturalLit{Value: 4}, R: expr.NaturalLit{Value: 3}}
	assert.Equal(t, expr.NaturalLit{Value: 12}, normalize.Normalize[expr.X](e))
}

func TestBoolIfReducesOnLiteralCondition(t *testing.T) {
	e := expr.BoolIf[expr.X]{
		Cond: expr.BoolLit{Value: true},
		Then: expr.NaturalLit{Value: 1},
		Else: expr.NaturalLit{Value: 2},
	}
	assert.Equal(t, expr.NaturalLit{Value: 1}, normalize.Normalize[expr.X](e))
}

func TestFieldAccessProjectsFromARecordLiteral(t *testing.T) {
	rec := expr.NewRecordLit[expr.X]([]expr.Field[expr.X]{
		{Key: "a", Value: expr.NaturalLit{Value: 1}},
		{Key: "b", Value: expr.BoolLit{Value: true}},
	})
	e := expr.FieldAccess[expr.X]{Record: rec, Key: "b"}
	assert.Equal(t, expr.BoolLit{Value: true}, normalize.Normalize[expr.X](e))
}

func TestIdempotence(t *testing.T) {
	e := expr.NaturalPlus[expr.X]{L: expr.NaturalLit{Value: 2}, R: expr.NaturalLit{Value: 3}}
	once := normalize.Normalize[expr.X](e)
	twice := normalize.Normalize[expr.X](once)
	assert.True(t, expr.SyntacticEqual[expr.X](once, twice))
}

func TestNaturalFoldFusionUnrollsToTheLiteralCount(t *testing.T) {
	// Natural/fold +3 Natural (\(n : Natural) -> n + +1) +0 = +3
	succ := expr.Lam[expr.X]{
		Var:  "n",
		Type: expr.Natural{},
		Body: expr.NaturalPlus[expr.X]{L: expr.Var{Name: "n"}, R: expr.NaturalLit{Value: 1}},
	}
	e := expr.App[expr.X]{
		Fn: expr.App[expr.X]{
			Fn: expr.App[expr.X]{
				Fn:  expr.App[expr.X]{Fn: expr.NaturalFold{}, Arg: expr.NaturalLit{Value: 3}},
				Arg: expr.Natural{},
			},
			Arg: succ,
		},
		Arg: expr.NaturalLit{Value: 0},
	}
	assert.Equal(t, expr.NaturalLit{Value: 3}, normalize.Normalize[expr.X](e))
}

func TestListBuildFusionProducesAListLiteral(t *testing.T) {
	// List/build Natural (\(list:*) -> \(Cons : Natural -> list -> list) -> \(Nil : list) -> Cons +1 (Cons +2 Nil))
	// fuses to [ +1, +2 ]
	consNilApplied := expr.App[expr.X]{
		Fn: expr.App[expr.X]{Fn: expr.Var{Name: "Cons"}, Arg: expr.NaturalLit{Value: 1}},
		Arg: expr.App[expr.X]{
			Fn:  expr.App[expr.X]{Fn: expr.Var{Name: "Cons"}, Arg: expr.NaturalLit{Value: 2}},
			Arg: expr.Var{Name: "Nil"},
		},
	}
	g := expr.Lam[expr.X]{
		Var:  "list",
		Type: expr.Const(expr.Type),
		Body: expr.Lam[expr.X]{
			Var: "Cons",
			Type: expr.Pi[expr.X]{Var: "_", Type: expr.Natural{}, Body: expr.Pi[expr.X]{
				Var: "_", Type: expr.Var{Name: "list"}, Body: expr.Var{Name: "list"},
			}},
			Body: expr.Lam[expr.X]{
				Var:  "Nil",
				Type: expr.Var{Name: "list"},
				Body: consNilApplied,
			},
		},
	}
	e := expr.App[expr.X]{
		Fn:  expr.App[expr.X]{Fn: expr.ListBuild{}, Arg: expr.Natural{}},
		Arg: g,
	}
	want := expr.ListLit[expr.X]{
		Elem:   expr.Natural{},
		Values: []expr.Expr[expr.X]{expr.NaturalLit{Value: 1}, expr.NaturalLit{Value: 2}},
	}
	assert.True(t, expr.SyntacticEqual[expr.X](want, normalize.Normalize[expr.X](e)))
}

func TestListBuildFusionCannotDistinguishAnUnrelatedFreeVariableNamedNil(t *testing.T) {
	// g's own terminator parameter is named "stop", but its body never
	// uses it: it hardcodes a dangling free reference to "Nil" instead.
	// List/build's fusion check is purely name-based (spec §9's
	// documented hazard): it can't tell "stop" was ignored, because the
	// literal name "Nil" it injects for the terminator is exactly the
	// name g's body happens to reference anyway. This has nothing to do
	// with g's real termination behavior, yet it still fuses to an
	// (incorrectly) empty list.
	g := expr.Lam[expr.X]{
		Var:  "list",
		Type: expr.Const(expr.Type),
		Body: expr.Lam[expr.X]{
			Var: "cons",
			Type: expr.Pi[expr.X]{Var: "_", Type: expr.Natural{}, Body: expr.Pi[expr.X]{
				Var: "_", Type: expr.Var{Name: "list"}, Body: expr.Var{Name: "list"},
			}},
			Body: expr.Lam[expr.X]{
				Var:  "stop",
				Type: expr.Var{Name: "list"},
				Body: expr.Var{Name: "Nil"},
			},
		},
	}
	e := expr.App[expr.X]{
		Fn:  expr.App[expr.X]{Fn: expr.ListBuild{}, Arg: expr.Natural{}},
		Arg: g,
	}
	want := expr.ListLit[expr.X]{Elem: expr.Natural{}}
	assert.True(t, expr.SyntacticEqual[expr.X](want, normalize.Normalize[expr.X](e)))
}

func TestNormalizeDesugarsALetsBindingWithAnArgument(t *testing.T) {
	// let double (n : Natural) = n + n in double +3  ⇒  +6
	e := expr.Lets[expr.X]{
		Bindings: []expr.Let[expr.X]{{
			Name: "double",
			Args: []expr.Arg[expr.X]{{Name: "n", Type: expr.Natural{}}},
			Rhs:  expr.NaturalPlus[expr.X]{L: expr.Var{Name: "n"}, R: expr.Var{Name: "n"}},
		}},
		Body: expr.App[expr.X]{Fn: expr.Var{Name: "double"}, Arg: expr.NaturalLit{Value: 3}},
	}
	assert.Equal(t, expr.NaturalLit{Value: 6}, normalize.Normalize[expr.X](e))
}

func TestSubstIntoLetsAndNormalizesDesugaringConverge(t *testing.T) {
	// let f = x in f, with x substituted to +1 before normalizing.
	// subst's Lets handling substitutes into the still-wrapped Lets node
	// (substLets); normalize's desugarLets instead right-folds the
	// bindings away via subst.Subst before any of this runs. Spec §9
	// requires both orderings converge on the same normal form.
	lets := expr.Lets[expr.X]{
		Bindings: []expr.Let[expr.X]{{Name: "f", Rhs: expr.Var{Name: "x"}}},
		Body:     expr.Var{Name: "f"},
	}

	substFirst := normalize.Normalize[expr.X](subst.Subst[expr.X]("x", expr.NaturalLit{Value: 1}, lets))
	desugarFirst := subst.Subst[expr.X]("x", expr.NaturalLit{Value: 1}, normalize.Normalize[expr.X](lets))

	assert.Equal(t, expr.NaturalLit{Value: 1}, substFirst)
	assert.True(t, expr.SyntacticEqual[expr.X](substFirst, desugarFirst))
}
