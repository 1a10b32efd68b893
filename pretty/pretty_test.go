package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/pretty"
)

func TestPrettyLambda(t *testing.T) {
	e := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}}
	assert.Equal(t, "λ(x : Bool) → x", pretty.Pretty[expr.X](e))
}

func TestPrettyNonDependentFunctionType(t *testing.T) {
	e := expr.Pi[expr.X]{Var: "_", Type: expr.Bool{}, Body: expr.Natural{}}
	assert.Equal(t, "Bool → Natural", pretty.Pretty[expr.X](e))
}

func TestPrettyDependentFunctionTypeUsesForall(t *testing.T) {
	e := expr.Pi[expr.X]{Var: "a", Type: expr.Const(expr.Type), Body: expr.Var{Name: "a"}}
	assert.Equal(t, "∀(a : Type) → a", pretty.Pretty[expr.X](e))
}

func TestPrettyNaturalLiteralHasLeadingPlus(t *testing.T) {
	assert.Equal(t, "+7", pretty.Pretty[expr.X](expr.NaturalLit{Value: 7}))
}

func TestPrettyEmptyListUsesElementTypeAnnotation(t *testing.T) {
	e := expr.ListLit[expr.X]{Elem: expr.Natural{}}
	assert.Equal(t, "[ : Natural ]", pretty.Pretty[expr.X](e))
}

func TestPrettyRecordTypeUsesDoubleBracesAndColon(t *testing.T) {
	rt := expr.NewRecordT[expr.X]([]expr.Field[expr.X]{{Key: "a", Value: expr.Natural{}}})
	assert.Equal(t, "{{ a : Natural }}", pretty.Pretty[expr.X](rt))
}

func TestPrettyRecordLiteralUsesSingleBracesAndEquals(t *testing.T) {
	rl := expr.NewRecordLit[expr.X]([]expr.Field[expr.X]{{Key: "a", Value: expr.NaturalLit{Value: 1}}})
	assert.Equal(t, "{ a = +1 }", pretty.Pretty[expr.X](rl))
}

func TestPrettyLetsRendersEachBindingThenInBody(t *testing.T) {
	e := expr.Lets[expr.X]{
		Bindings: []expr.Let[expr.X]{{
			Name: "double",
			Args: []expr.Arg[expr.X]{{Name: "n", Type: expr.Natural{}}},
			Rhs:  expr.NaturalPlus[expr.X]{L: expr.Var{Name: "n"}, R: expr.Var{Name: "n"}},
		}},
		Body: expr.Var{Name: "double"},
	}
	assert.Equal(t, "let double (n : Natural) = n + n in double", pretty.Pretty[expr.X](e))
}

func TestPrettyLetsInOperatorPositionIsParenthesized(t *testing.T) {
	// An unparenthesized Lets here would otherwise swallow the rest of the
	// enclosing BoolAnd as its own body (spec invariant 6).
	e := expr.BoolAnd[expr.X]{
		L: expr.Lets[expr.X]{
			Bindings: []expr.Let[expr.X]{{Name: "x", Rhs: expr.BoolLit{Value: true}}},
			Body:     expr.Var{Name: "x"},
		},
		R: expr.BoolLit{Value: false},
	}
	assert.Equal(t, "(let x = True in x) && False", pretty.Pretty[expr.X](e))
}
