package equiv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/totalconf/core/equiv"
	"github.com/totalconf/core/expr"
)

func TestEquivalentIsReflexive(t *testing.T) {
	e := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}}
	assert.True(t, equiv.Equivalent[expr.X](e, e))
}

func TestEquivalentIgnoresBoundVariableNames(t *testing.T) {
	a := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}}
	b := expr.Lam[expr.X]{Var: "y", Type: expr.Bool{}, Body: expr.Var{Name: "y"}}
	assert.True(t, equiv.Equivalent[expr.X](a, b), "alpha-equivalence must ignore bound variable spelling")
}

func TestEquivalentDistinguishesDifferentFreeVariables(t *testing.T) {
	a := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "free1"}}
	b := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "free2"}}
	assert.False(t, equiv.Equivalent[expr.X](a, b))
}

func TestEquivalentNormalizesBeforeComparing(t *testing.T) {
	a := expr.NaturalPlus[expr.X]{L: expr.NaturalLit{Value: 1}, R: expr.NaturalLit{Value: 2}}
	b := expr.NaturalLit{Value: 3}
	assert.True(t, equiv.Equivalent[expr.X](a, b))
}

func TestEquivalentIsSymmetric(t *testing.T) {
	a := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}}
	b := expr.Lam[expr.X]{Var: "y", Type: expr.Bool{}, Body: expr.Var{Name: "y"}}
	assert.Equal(t, equiv.Equivalent[expr.X](a, b), equiv.Equivalent[expr.X](b, a))
}

func TestEquivalentNestedBindersUseIndependentCorrespondences(t *testing.T) {
	// \(x:Bool) -> \(x:Bool) -> x  ==  \(y:Bool) -> \(z:Bool) -> z
	// (inner binder shadows; both sides refer to their own innermost binder)
	a := expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Lam[expr.X]{
		Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"},
	}}
	b := expr.Lam[expr.X]{Var: "y", Type: expr.Bool{}, Body: expr.Lam[expr.X]{
		Var: "z", Type: expr.Bool{}, Body: expr.Var{Name: "z"},
	}}
	assert.True(t, equiv.Equivalent[expr.X](a, b))
}
