package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/totalconf/core/ctx"
	"github.com/totalconf/core/diag"
	"github.com/totalconf/core/expr"
)

func TestTypeErrorCodeDelegatesToKind(t *testing.T) {
	err := &diag.TypeError{
		Context:   ctx.Empty[diag.Ex](),
		Offending: expr.Var{Name: "x"},
		Kind:      diag.UnboundVariable{Name: "x"},
	}
	assert.Equal(t, diag.CodeUnboundVariable, err.Code())
}

func TestTypeErrorRendersContextOldestFirst(t *testing.T) {
	c := ctx.Empty[diag.Ex]().Insert("a", expr.Bool{}).Insert("b", expr.Natural{})
	err := &diag.TypeError{
		Context:   c,
		Offending: expr.Var{Name: "z"},
		Kind:      diag.UnboundVariable{Name: "z"},
	}
	rendered := err.Error()
	// a was inserted before b, so it must appear first in the oldest-first dump.
	assert.Less(t, strings.Index(rendered, "a :"), strings.Index(rendered, "b :"))
}

func TestCantAddHintOnlyAppearsForIntegerLitOperand(t *testing.T) {
	withHint := diag.CantAdd{Side: "left", Operand: expr.IntegerLit{Value: 2}, Type: expr.Integer{}, Hint: "did you mean +2?"}
	assert.Contains(t, withHint.Error(), "Hint:")

	noHint := diag.CantAdd{Side: "left", Operand: expr.TextLit{Value: "x"}, Type: expr.Text{}}
	assert.NotContains(t, noHint.Error(), "Hint:")
}
