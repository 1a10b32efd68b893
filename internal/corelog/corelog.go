// Package corelog wraps Expr and TypeError values as lazy slog.LogValuer
// implementations, so a log line's pretty-printed rendering is only
// computed if a handler at the enabled level actually emits it.
//
// Grounded on _examples/cottand-ile/frontend/ir/log.go's slogExpr/
// exprLogHandler pair, retargeted from ile's IR at this module's
// Expr[X]/TypeError types.
package corelog

import (
	"context"
	"log/slog"

	"github.com/totalconf/core/diag"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/pretty"
)

// Expr wraps e as a slog.LogValuer: e is only pretty-printed if a handler
// at the record's level is enabled.
func Expr(e diag.Ex) slog.LogValuer {
	return exprValuer{e}
}

// TypeErr wraps a *diag.TypeError as a slog.LogValuer.
func TypeErr(err *diag.TypeError) slog.LogValuer {
	return typeErrValuer{err}
}

type exprValuer struct{ e diag.Ex }

func (v exprValuer) LogValue() slog.Value {
	return slog.StringValue(pretty.Pretty[expr.X](v.e))
}

type typeErrValuer struct{ err *diag.TypeError }

func (v typeErrValuer) LogValue() slog.Value {
	if v.err == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.Int("code", int(v.err.Code())),
		slog.String("offending", pretty.Pretty[expr.X](v.err.Offending)),
		slog.Int("depth", v.err.Context.Len()),
	)
}

// Handler wraps an underlying slog.Handler so that any attribute whose
// value is an Expr or *diag.TypeError is rewritten to its lazy valuer
// before reaching the underlying handler.
func Handler(underlying slog.Handler) slog.Handler {
	return &exprLogHandler{underlying: underlying}
}

type exprLogHandler struct {
	underlying slog.Handler
}

func (h *exprLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.underlying.Enabled(ctx, level)
}

func (h *exprLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.Add(rewriteAttr(attr))
		return true
	})
	return h.underlying.Handle(ctx, newRecord)
}

func (h *exprLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		rewritten[i] = rewriteAttr(attr)
	}
	return Handler(h.underlying.WithAttrs(rewritten))
}

func (h *exprLogHandler) WithGroup(name string) slog.Handler {
	return Handler(h.underlying.WithGroup(name))
}

func rewriteAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	switch v := attr.Value.Any().(type) {
	case diag.Ex:
		attr.Value = slog.AnyValue(Expr(v))
	case *diag.TypeError:
		attr.Value = slog.AnyValue(TypeErr(v))
	}
	return attr
}
