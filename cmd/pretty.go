package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/totalconf/core/exprjson"
	"github.com/totalconf/core/pretty"
)

var prettyCmd = &cobra.Command{
	Use:   "pretty [file]",
	Short: "render an expression (open or closed) in canonical surface syntax",
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
		fmt.Println(pretty.Pretty(e))
		return nil
	},
}
