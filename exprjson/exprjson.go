// Package exprjson implements a JSON codec for Expr[Path] trees: a
// tagged-union wire shape ({"node": "...", ...}) used by the CLI and by
// test fixtures to read/write expressions without a surface-syntax
// parser (spec's explicit Non-goal; this is data interchange, not
// parsing).
//
// Grounded on the pack's general style of explicit per-constructor
// dispatch for serialization (cf. compiler/types/types.go's Kind()
// switch); no repo in the pack does AST JSON codecs directly, so the
// wire struct itself is new, built in that same explicit-switch idiom.
package exprjson

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/totalconf/core/expr"
)

// wire is the on-the-wire shape for every node kind. Only the fields
// relevant to Node are populated; this mirrors the teacher pack's
// preference for one explicit struct over many anonymous ones.
type wire struct {
	Node string `json:"node"`

	Name string `json:"name,omitempty"`
	Key  string `json:"key,omitempty"`
	Sort string `json:"sort,omitempty"`

	Bool bool    `json:"bool,omitempty"`
	Nat  uint64  `json:"nat,omitempty"`
	Int  int64   `json:"int,omitempty"`
	Dbl  float64 `json:"dbl,omitempty"`
	Text string  `json:"text,omitempty"`

	Type   *wire `json:"type,omitempty"`
	Body   *wire `json:"body,omitempty"`
	Fn     *wire `json:"fn,omitempty"`
	Arg    *wire `json:"arg,omitempty"`
	Value  *wire `json:"value,omitempty"`
	Elem   *wire `json:"elem,omitempty"`
	Record *wire `json:"record,omitempty"`
	Cond   *wire `json:"cond,omitempty"`
	Then   *wire `json:"then,omitempty"`
	Else   *wire `json:"else,omitempty"`
	L      *wire `json:"l,omitempty"`
	R      *wire `json:"r,omitempty"`

	Values   []*wire      `json:"values,omitempty"`
	Fields   []wireField  `json:"fields,omitempty"`
	Bindings []wireLet    `json:"bindings,omitempty"`

	Path *wirePath `json:"path,omitempty"`
}

type wireField struct {
	Key   string `json:"key"`
	Value *wire  `json:"value"`
}

type wireArg struct {
	Name string `json:"name"`
	Type *wire  `json:"type"`
}

type wireLet struct {
	Name string    `json:"name"`
	Args []wireArg `json:"args,omitempty"`
	Rhs  *wire     `json:"rhs"`
}

type wirePath struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Encode renders e as its JSON wire form.
func Encode(e expr.Expr[expr.Path]) ([]byte, error) {
	w, err := toWire(e)
	if err != nil {
		return nil, errors.Wrap(err, "exprjson: encode")
	}
	out, err := json.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(err, "exprjson: marshal")
	}
	return out, nil
}

// Decode parses b as an Expr[Path].
func Decode(b []byte) (expr.Expr[expr.Path], error) {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, errors.Wrap(err, "exprjson: unmarshal")
	}
	e, err := fromWire(&w)
	if err != nil {
		return nil, errors.Wrap(err, "exprjson: decode")
	}
	return e, nil
}

func toWire(e expr.Expr[expr.Path]) (*wire, error) {
	switch n := e.(type) {
	case expr.Const:
		return &wire{Node: "const", Sort: n.String()}, nil
	case expr.Var:
		return &wire{Node: "var", Name: n.Name}, nil
	case expr.Lam[expr.Path]:
		t, err := toWire(n.Type)
		if err != nil {
			return nil, err
		}
		b, err := toWire(n.Body)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "lam", Name: n.Var, Type: t, Body: b}, nil
	case expr.Pi[expr.Path]:
		t, err := toWire(n.Type)
		if err != nil {
			return nil, err
		}
		b, err := toWire(n.Body)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "pi", Name: n.Var, Type: t, Body: b}, nil
	case expr.App[expr.Path]:
		f, err := toWire(n.Fn)
		if err != nil {
			return nil, err
		}
		a, err := toWire(n.Arg)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "app", Fn: f, Arg: a}, nil
	case expr.Lets[expr.Path]:
		bindings := make([]wireLet, len(n.Bindings))
		for i, l := range n.Bindings {
			args := make([]wireArg, len(l.Args))
			for j, a := range l.Args {
				at, err := toWire(a.Type)
				if err != nil {
					return nil, err
				}
				args[j] = wireArg{Name: a.Name, Type: at}
			}
			rhs, err := toWire(l.Rhs)
			if err != nil {
				return nil, err
			}
			bindings[i] = wireLet{Name: l.Name, Args: args, Rhs: rhs}
		}
		body, err := toWire(n.Body)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "lets", Bindings: bindings, Body: body}, nil
	case expr.Annot[expr.Path]:
		v, err := toWire(n.Value)
		if err != nil {
			return nil, err
		}
		t, err := toWire(n.Type)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "annot", Value: v, Type: t}, nil
	case expr.Bool:
		return &wire{Node: "bool"}, nil
	case expr.BoolLit:
		return &wire{Node: "boolLit", Bool: n.Value}, nil
	case expr.BoolAnd[expr.Path]:
		return toWireBinop("boolAnd", n.L, n.R)
	case expr.BoolOr[expr.Path]:
		return toWireBinop("boolOr", n.L, n.R)
	case expr.BoolIf[expr.Path]:
		cond, err := toWire(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toWire(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := toWire(n.Else)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "boolIf", Cond: cond, Then: then, Else: els}, nil
	case expr.Natural:
		return &wire{Node: "natural"}, nil
	case expr.NaturalLit:
		return &wire{Node: "naturalLit", Nat: n.Value}, nil
	case expr.NaturalFold:
		return &wire{Node: "naturalFold"}, nil
	case expr.NaturalPlus[expr.Path]:
		return toWireBinop("naturalPlus", n.L, n.R)
	case expr.NaturalTimes[expr.Path]:
		return toWireBinop("naturalTimes", n.L, n.R)
	case expr.Integer:
		return &wire{Node: "integer"}, nil
	case expr.IntegerLit:
		return &wire{Node: "integerLit", Int: n.Value}, nil
	case expr.Double:
		return &wire{Node: "double"}, nil
	case expr.DoubleLit:
		return &wire{Node: "doubleLit", Dbl: n.Value}, nil
	case expr.Text:
		return &wire{Node: "text"}, nil
	case expr.TextLit:
		return &wire{Node: "textLit", Text: n.Value}, nil
	case expr.TextAppend[expr.Path]:
		return toWireBinop("textAppend", n.L, n.R)
	case expr.MaybeT[expr.Path]:
		elem, err := toWire(n.Elem)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "maybeT", Elem: elem}, nil
	case expr.NothingLit:
		return &wire{Node: "nothingLit"}, nil
	case expr.JustLit:
		return &wire{Node: "justLit"}, nil
	case expr.ListT[expr.Path]:
		elem, err := toWire(n.Elem)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "listT", Elem: elem}, nil
	case expr.ListLit[expr.Path]:
		elem, err := toWire(n.Elem)
		if err != nil {
			return nil, err
		}
		values := make([]*wire, len(n.Values))
		for i, v := range n.Values {
			vw, err := toWire(v)
			if err != nil {
				return nil, err
			}
			values[i] = vw
		}
		return &wire{Node: "listLit", Elem: elem, Values: values}, nil
	case expr.ListBuild:
		return &wire{Node: "listBuild"}, nil
	case expr.ListFold:
		return &wire{Node: "listFold"}, nil
	case expr.RecordT[expr.Path]:
		fields, err := toWireFields(n.Fields)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "recordT", Fields: fields}, nil
	case expr.RecordLit[expr.Path]:
		fields, err := toWireFields(n.Fields)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "recordLit", Fields: fields}, nil
	case expr.FieldAccess[expr.Path]:
		r, err := toWire(n.Record)
		if err != nil {
			return nil, err
		}
		return &wire{Node: "field", Record: r, Key: n.Key}, nil
	case expr.Embed[expr.Path]:
		kind := "file"
		if n.Payload.Kind == expr.PathURL {
			kind = "url"
		}
		return &wire{Node: "embed", Path: &wirePath{Kind: kind, Value: n.Payload.Value}}, nil
	default:
		return nil, errors.Errorf("exprjson: unhandled node type %T", e)
	}
}

func toWireBinop(node string, l, r expr.Expr[expr.Path]) (*wire, error) {
	lw, err := toWire(l)
	if err != nil {
		return nil, err
	}
	rw, err := toWire(r)
	if err != nil {
		return nil, err
	}
	return &wire{Node: node, L: lw, R: rw}, nil
}

func toWireFields(fields []expr.Field[expr.Path]) ([]wireField, error) {
	out := make([]wireField, len(fields))
	for i, f := range fields {
		v, err := toWire(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = wireField{Key: f.Key, Value: v}
	}
	return out, nil
}

func fromWireFields(fields []wireField) ([]expr.Field[expr.Path], error) {
	out := make([]expr.Field[expr.Path], len(fields))
	for i, f := range fields {
		v, err := fromWire(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = expr.Field[expr.Path]{Key: f.Key, Value: v}
	}
	return out, nil
}

func fromWire(w *wire) (expr.Expr[expr.Path], error) {
	if w == nil {
		return nil, errors.New("exprjson: unexpected null node")
	}
	switch w.Node {
	case "const":
		switch w.Sort {
		case "Type":
			return expr.Const(expr.Type), nil
		case "Kind":
			return expr.Const(expr.Kind), nil
		default:
			return nil, errors.Errorf("exprjson: invalid const sort %q", w.Sort)
		}
	case "var":
		return expr.Var{Name: w.Name}, nil
	case "lam":
		t, err := fromWire(w.Type)
		if err != nil {
			return nil, err
		}
		b, err := fromWire(w.Body)
		if err != nil {
			return nil, err
		}
		return expr.Lam[expr.Path]{Var: w.Name, Type: t, Body: b}, nil
	case "pi":
		t, err := fromWire(w.Type)
		if err != nil {
			return nil, err
		}
		b, err := fromWire(w.Body)
		if err != nil {
			return nil, err
		}
		return expr.Pi[expr.Path]{Var: w.Name, Type: t, Body: b}, nil
	case "app":
		f, err := fromWire(w.Fn)
		if err != nil {
			return nil, err
		}
		a, err := fromWire(w.Arg)
		if err != nil {
			return nil, err
		}
		return expr.App[expr.Path]{Fn: f, Arg: a}, nil
	case "lets":
		bindings := make([]expr.Let[expr.Path], len(w.Bindings))
		for i, l := range w.Bindings {
			args := make([]expr.Arg[expr.Path], len(l.Args))
			for j, a := range l.Args {
				at, err := fromWire(a.Type)
				if err != nil {
					return nil, err
				}
				args[j] = expr.Arg[expr.Path]{Name: a.Name, Type: at}
			}
			rhs, err := fromWire(l.Rhs)
			if err != nil {
				return nil, err
			}
			bindings[i] = expr.Let[expr.Path]{Name: l.Name, Args: args, Rhs: rhs}
		}
		body, err := fromWire(w.Body)
		if err != nil {
			return nil, err
		}
		return expr.Lets[expr.Path]{Bindings: bindings, Body: body}, nil
	case "annot":
		v, err := fromWire(w.Value)
		if err != nil {
			return nil, err
		}
		t, err := fromWire(w.Type)
		if err != nil {
			return nil, err
		}
		return expr.Annot[expr.Path]{Value: v, Type: t}, nil
	case "bool":
		return expr.Bool{}, nil
	case "boolLit":
		return expr.BoolLit{Value: w.Bool}, nil
	case "boolAnd":
		l, r, err := fromWireBinop(w)
		if err != nil {
			return nil, err
		}
		return expr.BoolAnd[expr.Path]{L: l, R: r}, nil
	case "boolOr":
		l, r, err := fromWireBinop(w)
		if err != nil {
			return nil, err
		}
		return expr.BoolOr[expr.Path]{L: l, R: r}, nil
	case "boolIf":
		cond, err := fromWire(w.Cond)
		if err != nil {
			return nil, err
		}
		then, err := fromWire(w.Then)
		if err != nil {
			return nil, err
		}
		els, err := fromWire(w.Else)
		if err != nil {
			return nil, err
		}
		return expr.BoolIf[expr.Path]{Cond: cond, Then: then, Else: els}, nil
	case "natural":
		return expr.Natural{}, nil
	case "naturalLit":
		return expr.NaturalLit{Value: w.Nat}, nil
	case "naturalFold":
		return expr.NaturalFold{}, nil
	case "naturalPlus":
		l, r, err := fromWireBinop(w)
		if err != nil {
			return nil, err
		}
		return expr.NaturalPlus[expr.Path]{L: l, R: r}, nil
	case "naturalTimes":
		l, r, err := fromWireBinop(w)
		if err != nil {
			return nil, err
		}
		return expr.NaturalTimes[expr.Path]{L: l, R: r}, nil
	case "integer":
		return expr.Integer{}, nil
	case "integerLit":
		return expr.IntegerLit{Value: w.Int}, nil
	case "double":
		return expr.Double{}, nil
	case "doubleLit":
		return expr.DoubleLit{Value: w.Dbl}, nil
	case "text":
		return expr.Text{}, nil
	case "textLit":
		return expr.TextLit{Value: w.Text}, nil
	case "textAppend":
		l, r, err := fromWireBinop(w)
		if err != nil {
			return nil, err
		}
		return expr.TextAppend[expr.Path]{L: l, R: r}, nil
	case "maybeT":
		elem, err := fromWire(w.Elem)
		if err != nil {
			return nil, err
		}
		return expr.MaybeT[expr.Path]{Elem: elem}, nil
	case "nothingLit":
		return expr.NothingLit{}, nil
	case "justLit":
		return expr.JustLit{}, nil
	case "listT":
		elem, err := fromWire(w.Elem)
		if err != nil {
			return nil, err
		}
		return expr.ListT[expr.Path]{Elem: elem}, nil
	case "listLit":
		elem, err := fromWire(w.Elem)
		if err != nil {
			return nil, err
		}
		values := make([]expr.Expr[expr.Path], len(w.Values))
		for i, v := range w.Values {
			ve, err := fromWire(v)
			if err != nil {
				return nil, err
			}
			values[i] = ve
		}
		return expr.ListLit[expr.Path]{Elem: elem, Values: values}, nil
	case "listBuild":
		return expr.ListBuild{}, nil
	case "listFold":
		return expr.ListFold{}, nil
	case "recordT":
		fields, err := fromWireFields(w.Fields)
		if err != nil {
			return nil, err
		}
		return expr.NewRecordT(fields), nil
	case "recordLit":
		fields, err := fromWireFields(w.Fields)
		if err != nil {
			return nil, err
		}
		return expr.NewRecordLit(fields), nil
	case "field":
		r, err := fromWire(w.Record)
		if err != nil {
			return nil, err
		}
		return expr.FieldAccess[expr.Path]{Record: r, Key: w.Key}, nil
	case "embed":
		if w.Path == nil {
			return nil, errors.New("exprjson: embed node missing path")
		}
		switch w.Path.Kind {
		case "file":
			return expr.Embed[expr.Path]{Payload: expr.NewFilePath(w.Path.Value)}, nil
		case "url":
			return expr.Embed[expr.Path]{Payload: expr.NewURLPath(w.Path.Value)}, nil
		default:
			return nil, errors.Errorf("exprjson: invalid path kind %q", w.Path.Kind)
		}
	default:
		return nil, errors.Errorf("exprjson: unknown node kind %q", w.Node)
	}
}

func fromWireBinop(w *wire) (expr.Expr[expr.Path], expr.Expr[expr.Path], error) {
	l, err := fromWire(w.L)
	if err != nil {
		return nil, nil, err
	}
	r, err := fromWire(w.R)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}
