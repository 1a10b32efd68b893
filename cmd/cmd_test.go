package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/totalconf/core/expr"
	"github.com/totalconf/core/exprjson"
)

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written to it. The subcommands print directly via fmt.Println rather
// than taking an io.Writer, so this is the only way to observe their output
// without changing that shape.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func writeFixture(t *testing.T, e expr.Expr[expr.Path]) string {
	t.Helper()
	b, err := exprjson.Encode(e)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestCheckCmdSynthesizesAPrettyPrintedType(t *testing.T) {
	path := writeFixture(t, expr.Lam[expr.Path]{Var: "x", Type: expr.Bool{}, Body: expr.Var{Name: "x"}})
	out := captureStdout(t, func() {
		require.NoError(t, checkCmd.RunE(checkCmd, []string{path}))
	})
	assert.Equal(t, "Bool → Bool\n", out)
}

func TestCheckCmdReportsATypeError(t *testing.T) {
	path := writeFixture(t, expr.Var{Name: "ghost"})
	err := checkCmd.RunE(checkCmd, []string{path})
	assert.Error(t, err)
}

func TestNormalizeCmdReducesAndReencodes(t *testing.T) {
	path := writeFixture(t, expr.NaturalPlus[expr.Path]{L: expr.NaturalLit{Value: 1}, R: expr.NaturalLit{Value: 2}})
	out := captureStdout(t, func() {
		require.NoError(t, normalizeCmd.RunE(normalizeCmd, []string{path}))
	})
	decoded, err := exprjson.Decode(bytes.TrimSpace([]byte(out)))
	require.NoError(t, err)
	assert.Equal(t, expr.NaturalLit{Value: 3}, decoded)
}

func TestPrettyCmdRendersSurfaceSyntax(t *testing.T) {
	path := writeFixture(t, expr.NewRecordT[expr.Path]([]expr.Field[expr.Path]{{Key: "a", Value: expr.Natural{}}}))
	out := captureStdout(t, func() {
		require.NoError(t, prettyCmd.RunE(prettyCmd, []string{path}))
	})
	assert.Equal(t, "{{ a : Natural }}\n", out)
}

func TestReadInputReadsAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	b, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}
