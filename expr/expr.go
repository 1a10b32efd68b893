// Package expr defines the expression algebra: a tagged-variant tree
// parameterized by the payload type carried by Embed leaves (spec §3,
// §4.2). Every node is a small struct implementing the Expr[A] marker
// interface, following the teacher's one-struct-per-variant-plus-marker-
// method idiom (compiler/types/types.go's Type[T] interface).
package expr

// Expr is the primary tree, parameterized by the type of embedded
// references. A is typically Path (full trees) or X (closed trees with no
// remaining embeds, the domain of typeOf/typeWith).
type Expr[A any] interface {
	isExpr()
}

// --- sorts and variables -----------------------------------------------

// Var is a free or bound variable reference by name; there is no de
// Bruijn index, so equivalence and substitution must do their own
// name bookkeeping (spec §4.3, §4.5).
type Var struct {
	Name string
}

func (Var) isExpr() {}

// --- binders -------------------------------------------------------------

// Lam is a lambda abstraction: binds Var in Body, with Body's domain
// type given by Type.
type Lam[A any] struct {
	Var  string
	Type Expr[A]
	Body Expr[A]
}

func (Lam[A]) isExpr() {}

// Pi is a dependent function type; Var == "_" marks a non-dependent
// (ordinary) function type A -> B.
type Pi[A any] struct {
	Var  string
	Type Expr[A]
	Body Expr[A]
}

func (Pi[A]) isExpr() {}

// App is function application.
type App[A any] struct {
	Fn  Expr[A]
	Arg Expr[A]
}

func (App[A]) isExpr() {}

// Arg is one (name, type) pair in a Let binding group's argument list.
type Arg[A any] struct {
	Name string
	Type Expr[A]
}

// Let is one binding `let f (a1:t1) ... (aN:tN) = rhs` in a Lets block.
// Semantically equivalent to `let f = \(a1:t1) -> ... -> \(aN:tN) -> rhs`
// (spec §3).
type Let[A any] struct {
	Name string
	Args []Arg[A]
	Rhs  Expr[A]
}

// Lets is a let-block: an ordered sequence of Let bindings, each of which
// may shadow earlier names in scope of later bindings and of Body.
type Lets[A any] struct {
	Bindings []Let[A]
	Body     Expr[A]
}

func (Lets[A]) isExpr() {}

// Annot is a type ascription `x : t`.
type Annot[A any] struct {
	Value Expr[A]
	Type  Expr[A]
}

func (Annot[A]) isExpr() {}

// Embed is an opaque external reference; the core never inspects Payload
// beyond structural equality and passes it through Map/Bind untouched.
type Embed[A any] struct {
	Payload A
}

func (Embed[A]) isExpr() {}
