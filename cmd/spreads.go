package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var spreadsCmd = &cobra.Command{
	Use:   "spreads",
	Short: "List the spreads available for a reading",
	Long: `Spreads lists the built-in spreads followed by any defined in your config file,
with each position's label and grid cell. The default spread is starred.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := settings.Catalog()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, def := range catalog.Definitions() {
			marker := "  "
			if def.Name == settings.DefaultSpread {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%s (%d cards)\n", marker, colorize.HiWhiteString(def.Name), def.Len())
			for _, p := range def.Positions {
				fmt.Fprintf(out, "    %-36s column %g, row %g\n", p.Label, p.Column, p.Row)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(spreadsCmd)
}
