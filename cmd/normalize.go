package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/totalconf/core/exprjson"
	"github.com/totalconf/core/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "reduce a closed expression to normal form and re-encode it as JSON",
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
		nf := normalize.Normalize(closed)
		out, err := exprjson.Encode(reopen(nf))
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
