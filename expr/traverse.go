package expr

// Map returns e with every Embed payload replaced by f(payload), leaving
// every binder and node shape untouched (spec §4.2).
func Map[A, B any](f func(A) B, e Expr[A]) Expr[B] {
	return Bind(func(a A) Expr[B] { return Embed[B]{Payload: f(a)} }, e)
}

// Bind threads k through every Embed payload, splicing in the subexpression
// k returns. Since every Embed payload is closed, no alpha-conversion is
// required while doing so (spec §4.2).
func Bind[A, B any](k func(A) Expr[B], e Expr[A]) Expr[B] {
	switch n := e.(type) {
	case Const:
		return n
	case Var:
		return n
	case Lam[A]:
		return Lam[B]{Var: n.Var, Type: Bind(k, n.Type), Body: Bind(k, n.Body)}
	case Pi[A]:
		return Pi[B]{Var: n.Var, Type: Bind(k, n.Type), Body: Bind(k, n.Body)}
	case App[A]:
		return App[B]{Fn: Bind(k, n.Fn), Arg: Bind(k, n.Arg)}
	case Lets[A]:
		return Lets[B]{Bindings: bindLets(k, n.Bindings), Body: Bind(k, n.Body)}
	case Annot[A]:
		return Annot[B]{Value: Bind(k, n.Value), Type: Bind(k, n.Type)}
	case Bool:
		return n
	case BoolLit:
		return n
	case BoolAnd[A]:
		return BoolAnd[B]{L: Bind(k, n.L), R: Bind(k, n.R)}
	case BoolOr[A]:
		return BoolOr[B]{L: Bind(k, n.L), R: Bind(k, n.R)}
	case BoolIf[A]:
		return BoolIf[B]{Cond: Bind(k, n.Cond), Then: Bind(k, n.Then), Else: Bind(k, n.Else)}
	case Natural:
		return n
	case NaturalLit:
		return n
	case NaturalFold:
		return n
	case NaturalPlus[A]:
		return NaturalPlus[B]{L: Bind(k, n.L), R: Bind(k, n.R)}
	case NaturalTimes[A]:
		return NaturalTimes[B]{L: Bind(k, n.L), R: Bind(k, n.R)}
	case Integer:
		return n
	case IntegerLit:
		return n
	case Double:
		return n
	case DoubleLit:
		return n
	case Text:
		return n
	case TextLit:
		return n
	case TextAppend[A]:
		return TextAppend[B]{L: Bind(k, n.L), R: Bind(k, n.R)}
	case MaybeT[A]:
		return MaybeT[B]{Elem: Bind(k, n.Elem)}
	case NothingLit:
		return n
	case JustLit:
		return n
	case ListT[A]:
		return ListT[B]{Elem: Bind(k, n.Elem)}
	case ListLit[A]:
		return ListLit[B]{Elem: Bind(k, n.Elem), Values: bindSlice(k, n.Values)}
	case ListBuild:
		return n
	case ListFold:
		return n
	case RecordT[A]:
		return RecordT[B]{Fields: bindFields(k, n.Fields)}
	case RecordLit[A]:
		return RecordLit[B]{Fields: bindFields(k, n.Fields)}
	case FieldAccess[A]:
		return FieldAccess[B]{Record: Bind(k, n.Record), Key: n.Key}
	case Embed[A]:
		return k(n.Payload)
	default:
		panic("expr: Bind: unhandled node type")
	}
}

func bindSlice[A, B any](k func(A) Expr[B], es []Expr[A]) []Expr[B] {
	out := make([]Expr[B], len(es))
	for i, e := range es {
		out[i] = Bind(k, e)
	}
	return out
}

func bindFields[A, B any](k func(A) Expr[B], fs []Field[A]) []Field[B] {
	out := make([]Field[B], len(fs))
	for i, f := range fs {
		out[i] = Field[B]{Key: f.Key, Value: Bind(k, f.Value)}
	}
	return out
}

func bindLets[A, B any](k func(A) Expr[B], ls []Let[A]) []Let[B] {
	out := make([]Let[B], len(ls))
	for i, l := range ls {
		args := make([]Arg[B], len(l.Args))
		for j, a := range l.Args {
			args[j] = Arg[B]{Name: a.Name, Type: Bind(k, a.Type)}
		}
		out[i] = Let[B]{Name: l.Name, Args: args, Rhs: Bind(k, l.Rhs)}
	}
	return out
}
