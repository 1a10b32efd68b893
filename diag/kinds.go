package diag

import (
	"fmt"

	"github.com/totalconf/core/expr"
)

// UnboundVariable: Var x had no binding in the context.
type UnboundVariable struct {
	Name string
}

func (e UnboundVariable) Code() Code { return CodeUnboundVariable }
func (e UnboundVariable) Error() string { return e.render() }
func (e UnboundVariable) render() string {
	return fmt.Sprintf("Unbound variable: %s", e.Name)
}

// InvalidInputType: a Pi's input type did not synthesize to a Const.
type InvalidInputType struct {
	Input Ex
}

func (e InvalidInputType) Code() Code   { return CodeInvalidInputType }
func (e InvalidInputType) Error() string { return e.render() }
func (e InvalidInputType) render() string {
	return fmt.Sprintf("The input type of a function must be a type or a kind.\n\n%s", pp(e.Input))
}

// InvalidOutputType: a Pi's output type did not synthesize to a Const.
type InvalidOutputType struct {
	Output Ex
}

func (e InvalidOutputType) Code() Code    { return CodeInvalidOutputType }
func (e InvalidOutputType) Error() string { return e.render() }
func (e InvalidOutputType) render() string {
	return fmt.Sprintf("The output type of a function must be a type or a kind.\n\n%s", pp(e.Output))
}

// NotAFunction: App's Fn did not have a Pi type.
type NotAFunction struct {
	Fn     Ex
	FnType Ex
}

func (e NotAFunction) Code() Code    { return CodeNotAFunction }
func (e NotAFunction) Error() string { return e.render() }
func (e NotAFunction) render() string {
	return fmt.Sprintf("Expected a function, but found:\n\n%s\n\nof type:\n\n%s", pp(e.Fn), pp(e.FnType))
}

// TypeMismatch: App's argument type did not match the expected input type.
type TypeMismatch struct {
	Expected, Actual Ex
}

func (e TypeMismatch) Code() Code    { return CodeTypeMismatch }
func (e TypeMismatch) Error() string { return e.render() }
func (e TypeMismatch) render() string {
	return fmt.Sprintf("Expected type:\n\n%s\n\nbut found type:\n\n%s", pp(e.Expected), pp(e.Actual))
}

// AnnotMismatch: `x : t` where typeOf(x) != t.
type AnnotMismatch struct {
	Value              Ex
	Annotated, Inferred Ex
}

func (e AnnotMismatch) Code() Code    { return CodeAnnotMismatch }
func (e AnnotMismatch) Error() string { return e.render() }
func (e AnnotMismatch) render() string {
	return fmt.Sprintf("Annotation says:\n\n%s\n\nbut %s actually has type:\n\n%s", pp(e.Annotated), pp(e.Value), pp(e.Inferred))
}

// Untyped: Kind has no type (Kind is the top sort).
type Untyped struct {
	Sort expr.Const
}

func (e Untyped) Code() Code    { return CodeUntyped }
func (e Untyped) Error() string { return e.render() }
func (e Untyped) render() string {
	return fmt.Sprintf("%s has no type, kind, or sort", e.Sort.String())
}

// InvalidElement: a ListLit element's type didn't match the list's
// declared element type.
type InvalidElement struct {
	Index                      int
	Elem                       Ex
	ExpectedType, ActualType Ex
}

func (e InvalidElement) Code() Code    { return CodeInvalidElement }
func (e InvalidElement) Error() string { return e.render() }
func (e InvalidElement) render() string {
	return fmt.Sprintf(
		"List element at index %d:\n\n%s\n\nshould have had type:\n\n%s\n\nbut instead has type:\n\n%s",
		e.Index, pp(e.Elem), pp(e.ExpectedType), pp(e.ActualType),
	)
}

// InvalidMaybeTypeParam: `Maybe t` where typeOf(t) != Type.
type InvalidMaybeTypeParam struct{ Param Ex }

func (e InvalidMaybeTypeParam) Code() Code    { return CodeInvalidMaybeTypeParam }
func (e InvalidMaybeTypeParam) Error() string { return e.render() }
func (e InvalidMaybeTypeParam) render() string {
	return fmt.Sprintf("Maybe's type parameter must be a type:\n\n%s", pp(e.Param))
}

// InvalidListTypeParam: `List t` where typeOf(t) != Type.
type InvalidListTypeParam struct{ Param Ex }

func (e InvalidListTypeParam) Code() Code    { return CodeInvalidListTypeParam }
func (e InvalidListTypeParam) Error() string { return e.render() }
func (e InvalidListTypeParam) render() string {
	return fmt.Sprintf("List's type parameter must be a type:\n\n%s", pp(e.Param))
}

// InvalidListType: a ListLit's declared element-type annotation wasn't a
// type.
type InvalidListType struct{ Elem Ex }

func (e InvalidListType) Code() Code    { return CodeInvalidListType }
func (e InvalidListType) Error() string { return e.render() }
func (e InvalidListType) render() string {
	return fmt.Sprintf("List literal's element type annotation must be a type:\n\n%s", pp(e.Elem))
}

// InvalidPredicate: BoolIf's condition was not of type Bool.
type InvalidPredicate struct {
	Cond, CondType Ex
}

func (e InvalidPredicate) Code() Code    { return CodeInvalidPredicate }
func (e InvalidPredicate) Error() string { return e.render() }
func (e InvalidPredicate) render() string {
	return fmt.Sprintf("The predicate of an if must have type Bool, but found:\n\n%s\n\nof type:\n\n%s", pp(e.Cond), pp(e.CondType))
}

// IfBranchMismatch: BoolIf's two branches had different types.
type IfBranchMismatch struct {
	Then, Else         Ex
	ThenType, ElseType Ex
}

func (e IfBranchMismatch) Code() Code    { return CodeIfBranchMismatch }
func (e IfBranchMismatch) Error() string { return e.render() }
func (e IfBranchMismatch) render() string {
	return fmt.Sprintf(
		"The then branch:\n\n%s\n\nhas type:\n\n%s\n\nbut the else branch:\n\n%s\n\nhas type:\n\n%s",
		pp(e.Then), pp(e.ThenType), pp(e.Else), pp(e.ElseType),
	)
}

// InvalidFieldType: a Record field's declared type did not synthesize to
// Const Type.
type InvalidFieldType struct {
	Key  string
	Type Ex
}

func (e InvalidFieldType) Code() Code    { return CodeInvalidFieldType }
func (e InvalidFieldType) Error() string { return e.render() }
func (e InvalidFieldType) render() string {
	return fmt.Sprintf("Record field %q has an invalid type:\n\n%s", e.Key, pp(e.Type))
}

// NotARecord: Field's Record subexpression did not have a Record type.
type NotARecord struct {
	Key    string
	Record Ex
	Type   Ex
}

func (e NotARecord) Code() Code    { return CodeNotARecord }
func (e NotARecord) Error() string { return e.render() }
func (e NotARecord) render() string {
	return fmt.Sprintf("Cannot access field %q of:\n\n%s\n\nwhich does not have a record type, but instead has type:\n\n%s", e.Key, pp(e.Record), pp(e.Type))
}

// MissingField: Field's key was absent from the Record type's fields.
type MissingField struct {
	Key        string
	RecordType Ex
}

func (e MissingField) Code() Code    { return CodeMissingField }
func (e MissingField) Error() string { return e.render() }
func (e MissingField) render() string {
	return fmt.Sprintf("Field %q is missing from record type:\n\n%s", e.Key, pp(e.RecordType))
}

// CantAnd: a BoolAnd operand was not of type Bool. Side is "left" or
// "right"; left side errors are detected first per the short-circuit
// policy in spec §7.
type CantAnd struct {
	Side   string
	Operand Ex
	Type    Ex
}

func (e CantAnd) Code() Code    { return CodeCantAnd }
func (e CantAnd) Error() string { return e.render() }
func (e CantAnd) render() string {
	return fmt.Sprintf("The %s side of && must have type Bool, but found:\n\n%s\n\nof type:\n\n%s", e.Side, pp(e.Operand), pp(e.Type))
}

// CantOr mirrors CantAnd for ||.
type CantOr struct {
	Side    string
	Operand Ex
	Type    Ex
}

func (e CantOr) Code() Code    { return CodeCantOr }
func (e CantOr) Error() string { return e.render() }
func (e CantOr) render() string {
	return fmt.Sprintf("The %s side of || must have type Bool, but found:\n\n%s\n\nof type:\n\n%s", e.Side, pp(e.Operand), pp(e.Type))
}

// CantAppend: a TextAppend operand was not of type Text.
type CantAppend struct {
	Side    string
	Operand Ex
	Type    Ex
}

func (e CantAppend) Code() Code    { return CodeCantAppend }
func (e CantAppend) Error() string { return e.render() }
func (e CantAppend) render() string {
	return fmt.Sprintf("The %s side of ++ must have type Text, but found:\n\n%s\n\nof type:\n\n%s", e.Side, pp(e.Operand), pp(e.Type))
}

// CantAdd: a NaturalPlus operand was not of type Natural. Hint is set when
// the offending operand was a non-negative IntegerLit, suggesting a leading
// "+".
type CantAdd struct {
	Side    string
	Operand Ex
	Type    Ex
	Hint    string
}

func (e CantAdd) Code() Code    { return CodeCantAdd }
func (e CantAdd) Error() string { return e.render() }
func (e CantAdd) render() string {
	s := fmt.Sprintf("The %s side of + must have type Natural, but found:\n\n%s\n\nof type:\n\n%s", e.Side, pp(e.Operand), pp(e.Type))
	if e.Hint != "" {
		s += "\n\nHint: " + e.Hint
	}
	return s
}

// CantMultiply mirrors CantAdd for *.
type CantMultiply struct {
	Side    string
	Operand Ex
	Type    Ex
	Hint    string
}

func (e CantMultiply) Code() Code    { return CodeCantMultiply }
func (e CantMultiply) Error() string { return e.render() }
func (e CantMultiply) render() string {
	s := fmt.Sprintf("The %s side of * must have type Natural, but found:\n\n%s\n\nof type:\n\n%s", e.Side, pp(e.Operand), pp(e.Type))
	if e.Hint != "" {
		s += "\n\nHint: " + e.Hint
	}
	return s
}

// DepthExceeded: recursion during type checking exceeded the caller-
// visible depth limit (spec §5).
type DepthExceeded struct{}

func (e DepthExceeded) Code() Code    { return CodeDepthExceeded }
func (e DepthExceeded) Error() string { return e.render() }
func (e DepthExceeded) render() string {
	return "Expression exceeds the maximum nesting depth the checker will recurse into"
}
