package corelog_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/totalconf/core/diag"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/internal/corelog"
)

// recordingHandler captures the attrs it receives instead of formatting
// them, so tests can assert on the rewritten values directly.
type recordingHandler struct {
	enabled bool
	got     []slog.Attr
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return h.enabled }

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	record.Attrs(func(a slog.Attr) bool {
		h.got = append(h.got, a)
		return true
	})
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.got = append(h.got, attrs...)
	return h
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func TestHandleRewritesExprAttrsToTheirPrettyPrintedForm(t *testing.T) {
	inner := &recordingHandler{enabled: true}
	h := corelog.Handler(inner)

	logger := slog.New(h)
	logger.Info("checking", "expr", expr.Lam[expr.X]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}})

	require.Len(t, inner.got, 1)
	assert.Equal(t, "λ(x : Bool) → x", inner.got[0].Value.Resolve().String())
}

func TestHandleLeavesNonExprAttrsUntouched(t *testing.T) {
	inner := &recordingHandler{enabled: true}
	h := corelog.Handler(inner)

	logger := slog.New(h)
	logger.Info("checking", "count", 3)

	require.Len(t, inner.got, 1)
	assert.Equal(t, int64(3), inner.got[0].Value.Int64())
}

func TestHandleRewritesTypeErrorAttrs(t *testing.T) {
	inner := &recordingHandler{enabled: true}
	h := corelog.Handler(inner)
	logger := slog.New(h)

	typeErr := &diag.TypeError{
		Offending: expr.Var{Name: "ghost"},
		Kind:      diag.UnboundVariable{Name: "ghost"},
	}
	logger.Info("failed", "err", typeErr)

	require.Len(t, inner.got, 1)
	assert.Equal(t, slog.KindGroup, inner.got[0].Value.Resolve().Kind())
}

func TestDisabledLevelNeverReachesTheUnderlyingHandler(t *testing.T) {
	inner := &recordingHandler{enabled: false}
	h := corelog.Handler(inner)
	logger := slog.New(h)

	logger.Debug("checking", "expr", expr.Bool{})

	assert.Empty(t, inner.got)
}

func TestWithAttrsRewritesEagerlyAttachedExprValues(t *testing.T) {
	inner := &recordingHandler{enabled: true}
	h := corelog.Handler(inner).WithAttrs([]slog.Attr{
		slog.Any("expr", expr.Natural{}),
	})

	require.Len(t, inner.got, 1)
	assert.Equal(t, "Natural", inner.got[0].Value.Resolve().String())
	_ = h
}
