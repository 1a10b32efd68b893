// Package cmd implements the core CLI: a thin demo harness over
// exprjson/typecheck/normalize/pretty, not a language front end (there is
// no parser or import resolver here — spec's explicit Non-goals).
//
// Grounded on the teacher's root main.go + cmd.Execute() call; the
// command tree is a set of package-level cobra.Command variables that
// init registers on rootCmd with AddCommand.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/totalconf/core/internal/corelog"
)

var logger = slog.New(corelog.Handler(slog.NewTextHandler(os.Stderr, nil)))

var rootCmd = &cobra.Command{
	Use:   "core",
	Short: "core is a checker, normalizer, and pretty printer for a small total configuration language",
	Long: "core reads expression trees encoded as JSON (see exprjson) and runs the core\n" +
		"calculus over them: type synthesis, normalization, and pretty printing.\n" +
		"It does not parse surface syntax or resolve imports.",
	SilenceUsage: true,
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(prettyCmd)
}

func readInput(path string) ([]byte, error) {
	if path == "-" || path == "" {
		b, err := io.ReadAll(os.Stdin)
		return b, errors.Wrap(err, "reading stdin")
	}
	b, err := os.ReadFile(path)
	return b, errors.Wrapf(err, "reading %s", path)
}
