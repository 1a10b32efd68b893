package expr

// SyntacticEqual is structural equality on syntactic forms: two trees
// compare equal iff they have the same shape, same literal values, same
// bound-variable *names* (no alpha-renaming), and structurally-equal
// Embed payloads. This is deliberately weaker than equivalence
// (spec §4.6's "Comparisons A1 = A2 ... are structural equality on
// syntactic forms, not calls to the expensive normalize-then-alpha
// equivalence"); the type checker uses it on already-normalized subterms
// where re-normalizing would be wasted work.
func SyntacticEqual[A comparable](a, b Expr[A]) bool {
	switch x := a.(type) {
	case Const:
		y, ok := b.(Const)
		return ok && x == y
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Lam[A]:
		y, ok := b.(Lam[A])
		return ok && x.Var == y.Var && SyntacticEqual[A](x.Type, y.Type) && SyntacticEqual[A](x.Body, y.Body)
	case Pi[A]:
		y, ok := b.(Pi[A])
		return ok && x.Var == y.Var && SyntacticEqual[A](x.Type, y.Type) && SyntacticEqual[A](x.Body, y.Body)
	case App[A]:
		y, ok := b.(App[A])
		return ok && SyntacticEqual[A](x.Fn, y.Fn) && SyntacticEqual[A](x.Arg, y.Arg)
	case Lets[A]:
		y, ok := b.(Lets[A])
		if !ok || len(x.Bindings) != len(y.Bindings) {
			return false
		}
		for i := range x.Bindings {
			if !letEqual(x.Bindings[i], y.Bindings[i]) {
				return false
			}
		}
		return SyntacticEqual[A](x.Body, y.Body)
	case Annot[A]:
		y, ok := b.(Annot[A])
		return ok && SyntacticEqual[A](x.Value, y.Value) && SyntacticEqual[A](x.Type, y.Type)
	case Bool:
		_, ok := b.(Bool)
		return ok
	case BoolLit:
		y, ok := b.(BoolLit)
		return ok && x.Value == y.Value
	case BoolAnd[A]:
		y, ok := b.(BoolAnd[A])
		return ok && SyntacticEqual[A](x.L, y.L) && SyntacticEqual[A](x.R, y.R)
	case BoolOr[A]:
		y, ok := b.(BoolOr[A])
		return ok && SyntacticEqual[A](x.L, y.L) && SyntacticEqual[A](x.R, y.R)
	case BoolIf[A]:
		y, ok := b.(BoolIf[A])
		return ok && SyntacticEqual[A](x.Cond, y.Cond) && SyntacticEqual[A](x.Then, y.Then) && SyntacticEqual[A](x.Else, y.Else)
	case Natural:
		_, ok := b.(Natural)
		return ok
	case NaturalLit:
		y, ok := b.(NaturalLit)
		return ok && x.Value == y.Value
	case NaturalFold:
		_, ok := b.(NaturalFold)
		return ok
	case NaturalPlus[A]:
		y, ok := b.(NaturalPlus[A])
		return ok && SyntacticEqual[A](x.L, y.L) && SyntacticEqual[A](x.R, y.R)
	case NaturalTimes[A]:
		y, ok := b.(NaturalTimes[A])
		return ok && SyntacticEqual[A](x.L, y.L) && SyntacticEqual[A](x.R, y.R)
	case Integer:
		_, ok := b.(Integer)
		return ok
	case IntegerLit:
		y, ok := b.(IntegerLit)
		return ok && x.Value == y.Value
	case Double:
		_, ok := b.(Double)
		return ok
	case DoubleLit:
		y, ok := b.(DoubleLit)
		return ok && x.Value == y.Value
	case Text:
		_, ok := b.(Text)
		return ok
	case TextLit:
		y, ok := b.(TextLit)
		return ok && x.Value == y.Value
	case TextAppend[A]:
		y, ok := b.(TextAppend[A])
		return ok && SyntacticEqual[A](x.L, y.L) && SyntacticEqual[A](x.R, y.R)
	case MaybeT[A]:
		y, ok := b.(MaybeT[A])
		return ok && SyntacticEqual[A](x.Elem, y.Elem)
	case NothingLit:
		_, ok := b.(NothingLit)
		return ok
	case JustLit:
		_, ok := b.(JustLit)
		return ok
	case ListT[A]:
		y, ok := b.(ListT[A])
		return ok && SyntacticEqual[A](x.Elem, y.Elem)
	case ListLit[A]:
		y, ok := b.(ListLit[A])
		if !ok || !SyntacticEqual[A](x.Elem, y.Elem) || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !SyntacticEqual[A](x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true
	case ListBuild:
		_, ok := b.(ListBuild)
		return ok
	case ListFold:
		_, ok := b.(ListFold)
		return ok
	case RecordT[A]:
		y, ok := b.(RecordT[A])
		return ok && fieldsEqual(x.Fields, y.Fields)
	case RecordLit[A]:
		y, ok := b.(RecordLit[A])
		return ok && fieldsEqual(x.Fields, y.Fields)
	case FieldAccess[A]:
		y, ok := b.(FieldAccess[A])
		return ok && x.Key == y.Key && SyntacticEqual[A](x.Record, y.Record)
	case Embed[A]:
		y, ok := b.(Embed[A])
		return ok && x.Payload == y.Payload
	default:
		panic("expr: SyntacticEqual: unhandled node type")
	}
}

func letEqual[A comparable](l, r Let[A]) bool {
	if l.Name != r.Name || len(l.Args) != len(r.Args) {
		return false
	}
	for i := range l.Args {
		if l.Args[i].Name != r.Args[i].Name || !SyntacticEqual[A](l.Args[i].Type, r.Args[i].Type) {
			return false
		}
	}
	return SyntacticEqual[A](l.Rhs, r.Rhs)
}

func fieldsEqual[A comparable](l, r []Field[A]) bool {
	// Canonical order is ascending-by-key for both sides (spec §3), so a
	// positional comparison after a key check suffices and matches §4.5's
	// "keys must coincide in the canonical order" rule.
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i].Key != r[i].Key || !SyntacticEqual[A](l[i].Value, r[i].Value) {
			return false
		}
	}
	return true
}
