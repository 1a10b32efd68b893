// Package pretty implements pretty(e) (spec §4.8): canonical rendering of
// an expression in the language's surface syntax, using two precedence
// flags (parenBind for binder-level constructs, parenApp for
// application-level constructs) to decide when parentheses are needed.
//
// Grounded on the teacher's compiler/types/builder.go Build*-per-shape
// helpers, inverted here into a render*-per-shape helper set.
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/totalconf/core/expr"
)

// Pretty renders e in canonical surface syntax.
func Pretty[A any](e expr.Expr[A]) string {
	return render[A](e, false, false)
}

// render dispatches on node shape. parenBind wraps the whole result in
// parens if it is a binder-level construct (lambda, forall, let); parenApp
// wraps it if it is an application-level construct (application itself,
// or anything that binds looser than application, like ++/&&/||/+/*).
func render[A any](e expr.Expr[A], parenBind, parenApp bool) string {
	switch n := e.(type) {
	case expr.Const:
		return n.String()
	case expr.Var:
		return n.Name
	case expr.Lam[A]:
		s := fmt.Sprintf("λ(%s : %s) → %s", n.Var, render[A](n.Type, false, false), render[A](n.Body, false, false))
		return wrap(s, parenBind)
	case expr.Pi[A]:
		var s string
		if n.Var == "_" {
			s = fmt.Sprintf("%s → %s", render[A](n.Type, true, false), render[A](n.Body, false, false))
		} else {
			s = fmt.Sprintf("∀(%s : %s) → %s", n.Var, render[A](n.Type, false, false), render[A](n.Body, false, false))
		}
		return wrap(s, parenBind)
	case expr.App[A]:
		s := fmt.Sprintf("%s %s", render[A](n.Fn, true, true), render[A](n.Arg, true, true))
		return wrap(s, parenApp)
	case expr.Lets[A]:
		var b strings.Builder
		for _, l := range n.Bindings {
			b.WriteString(renderLet(l))
			b.WriteString(" ")
		}
		b.WriteString(render[A](n.Body, false, false))
		return wrap(b.String(), parenBind)
	case expr.Annot[A]:
		s := fmt.Sprintf("%s : %s", render[A](n.Value, true, true), render[A](n.Type, false, false))
		return wrap(s, parenApp)
	case expr.Bool:
		return "Bool"
	case expr.BoolLit:
		if n.Value {
			return "True"
		}
		return "False"
	case expr.BoolAnd[A]:
		return wrap(fmt.Sprintf("%s && %s", render[A](n.L, true, true), render[A](n.R, true, true)), parenApp)
	case expr.BoolOr[A]:
		return wrap(fmt.Sprintf("%s || %s", render[A](n.L, true, true), render[A](n.R, true, true)), parenApp)
	case expr.BoolIf[A]:
		s := fmt.Sprintf("if %s then %s else %s", render[A](n.Cond, false, false), render[A](n.Then, false, false), render[A](n.Else, false, false))
		return wrap(s, parenBind)
	case expr.Natural:
		return "Natural"
	case expr.NaturalLit:
		return "+" + strconv.FormatUint(n.Value, 10)
	case expr.NaturalFold:
		return "Natural/fold"
	case expr.NaturalPlus[A]:
		return wrap(fmt.Sprintf("%s + %s", render[A](n.L, true, true), render[A](n.R, true, true)), parenApp)
	case expr.NaturalTimes[A]:
		return wrap(fmt.Sprintf("%s * %s", render[A](n.L, true, true), render[A](n.R, true, true)), parenApp)
	case expr.Integer:
		return "Integer"
	case expr.IntegerLit:
		if n.Value >= 0 {
			return "+" + strconv.FormatInt(n.Value, 10)
		}
		return strconv.FormatInt(n.Value, 10)
	case expr.Double:
		return "Double"
	case expr.DoubleLit:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case expr.Text:
		return "Text"
	case expr.TextLit:
		return strconv.Quote(n.Value)
	case expr.TextAppend[A]:
		return wrap(fmt.Sprintf("%s ++ %s", render[A](n.L, true, true), render[A](n.R, true, true)), parenApp)
	case expr.MaybeT[A]:
		return wrap(fmt.Sprintf("Maybe %s", render[A](n.Elem, true, true)), parenApp)
	case expr.NothingLit:
		return "Nothing"
	case expr.JustLit:
		return "Just"
	case expr.ListT[A]:
		return wrap(fmt.Sprintf("List %s", render[A](n.Elem, true, true)), parenApp)
	case expr.ListLit[A]:
		if len(n.Values) == 0 {
			return fmt.Sprintf("[ : %s ]", render[A](n.Elem, false, false))
		}
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = render[A](v, false, false)
		}
		return fmt.Sprintf("[ %s ]", strings.Join(parts, ", "))
	case expr.ListBuild:
		return "List/build"
	case expr.ListFold:
		return "List/fold"
	case expr.RecordT[A]:
		return renderRecord(n.Fields, "{{", "}}", ":")
	case expr.RecordLit[A]:
		return renderRecord(n.Fields, "{", "}", "=")
	case expr.FieldAccess[A]:
		return fmt.Sprintf("%s.%s", render[A](n.Record, true, true), n.Key)
	case expr.Embed[A]:
		if s, ok := any(n.Payload).(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", n.Payload)
	default:
		panic("pretty: unhandled node type")
	}
}

func renderLet[A any](l expr.Let[A]) string {
	var b strings.Builder
	b.WriteString("let ")
	b.WriteString(l.Name)
	for _, a := range l.Args {
		fmt.Fprintf(&b, " (%s : %s)", a.Name, render[A](a.Type, false, false))
	}
	b.WriteString(" = ")
	b.WriteString(render[A](l.Rhs, false, false))
	b.WriteString(" in")
	return b.String()
}

func renderRecord[A any](fields []expr.Field[A], open, close, sep string) string {
	if len(fields) == 0 {
		return open + close
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s %s %s", f.Key, sep, render[A](f.Value, false, false))
	}
	return fmt.Sprintf("%s %s %s", open, strings.Join(parts, ", "), close)
}

func wrap(s string, paren bool) string {
	if paren {
		return "(" + s + ")"
	}
	return s
}
