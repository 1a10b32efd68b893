package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/totalconf/core/exprjson"
	"github.com/totalconf/core/pretty"
	"github.com/totalconf/core/typecheck"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "synthesize the type of a closed expression, or report why it doesn't type-check",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		raw, err := readInput(path)
		if err != nil {
			return err
		}
		e, err := exprjson.Decode(raw)
		if err != nil {
			return err
		}
		closed, err := toClosed(e)
		if err != nil {
			return err
		}
		logger.Debug("checking", "expr", closed)
		t, typeErr := typecheck.TypeOf(closed)
		if typeErr != nil {
			return errors.New(typeErr.Error())
		}
		fmt.Println(pretty.Pretty(t))
		return nil
	},
}
