// Package diag implements the closed diagnostic taxonomy (spec §7) and its
// rendering (spec §4.7): a one-struct-per-kind enumeration where each kind
// renders a one-line label, an explanation, and pretty-printed
// sub-expressions.
//
// Grounded on the teacher pack's cottand-ile/frontend/failed/errors.go:
// a closed ErrCode enum plus one struct per error kind, each implementing
// Error() and Code().
package diag

import (
	"fmt"
	"strings"

	"github.com/totalconf/core/ctx"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/pretty"
)

// Ex is shorthand for the closed expression type the type checker and its
// diagnostics operate over: Expr[X], which can contain no Embed nodes.
type Ex = expr.Expr[expr.X]

// Code is a stable, machine-readable identifier for a diagnostic kind,
// independent of its rendered prose (teacher's ErrCode convention).
type Code int

const (
	CodeUnboundVariable Code = iota + 1
	CodeInvalidInputType
	CodeInvalidOutputType
	CodeNotAFunction
	CodeTypeMismatch
	CodeAnnotMismatch
	CodeUntyped
	CodeInvalidElement
	CodeInvalidMaybeTypeParam
	CodeInvalidListTypeParam
	CodeInvalidListType
	CodeInvalidPredicate
	CodeIfBranchMismatch
	CodeInvalidFieldType
	CodeNotARecord
	CodeMissingField
	CodeCantAnd
	CodeCantOr
	CodeCantAppend
	CodeCantAdd
	CodeCantMultiply
	CodeDepthExceeded
)

// Kind is the closed interface every diagnostic kind implements.
type Kind interface {
	error
	Code() Code
	// render produces the explanation body (without the label or the
	// context dump TypeError prepends).
	render() string
}

// TypeError is returned by typeOf/typeWith on failure (spec §6, §7): the
// context the failure occurred in, the smallest enclosing expression at
// which the rule failed, and the tagged diagnostic kind.
type TypeError struct {
	Context ctx.Context[Ex]
	Offending Ex
	Kind      Kind
}

func (e *TypeError) Error() string {
	var b strings.Builder
	for _, entry := range e.Context.ToListOldestFirst() {
		fmt.Fprintf(&b, "%s : %s\n", entry.Name, pretty.Pretty[expr.X](entry.Value))
	}
	b.WriteString(fmt.Sprintf("Error: %s\n\n", e.label()))
	b.WriteString(e.Kind.render())
	return b.String()
}

func (e *TypeError) Code() Code { return e.Kind.Code() }

func (e *TypeError) label() string {
	switch e.Kind.Code() {
	case CodeUnboundVariable:
		return "Unbound variable"
	case CodeInvalidInputType:
		return "Invalid function input type"
	case CodeInvalidOutputType:
		return "Invalid function output type"
	case CodeNotAFunction:
		return "Not a function"
	case CodeTypeMismatch:
		return "Type mismatch"
	case CodeAnnotMismatch:
		return "Annotation mismatch"
	case CodeUntyped:
		return "Untyped"
	case CodeInvalidElement:
		return "Invalid list element"
	case CodeInvalidMaybeTypeParam:
		return "Invalid Maybe type parameter"
	case CodeInvalidListTypeParam:
		return "Invalid List type parameter"
	case CodeInvalidListType:
		return "Invalid list type annotation"
	case CodeInvalidPredicate:
		return "Invalid predicate for if"
	case CodeIfBranchMismatch:
		return "If branch type mismatch"
	case CodeInvalidFieldType:
		return "Invalid field type"
	case CodeNotARecord:
		return "Not a record"
	case CodeMissingField:
		return "Missing record field"
	case CodeCantAnd:
		return "Cannot use && on a non-Bool"
	case CodeCantOr:
		return "Cannot use || on a non-Bool"
	case CodeCantAppend:
		return "Cannot use ++ on a non-Text"
	case CodeCantAdd:
		return "Cannot use + on a non-Natural"
	case CodeCantMultiply:
		return "Cannot use * on a non-Natural"
	case CodeDepthExceeded:
		return "Expression nested too deeply"
	default:
		panic(fmt.Sprintf("diag: unhandled code %d", e.Kind.Code()))
	}
}

func pp(e Ex) string { return pretty.Pretty[expr.X](e) }
