package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/querent/internal/card"
	"github.com/arcanaland/querent/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show [code]",
	Short: "Display the meanings of a card",
	Long: `Show displays a card's upright and reversed keywords. Without a card code it
lists every card in the deck with its code.

You can specify a deck using the --deck flag, which will look for the deck
in your deck library (XDG_DATA_HOME/querent/decks) or as a relative path.
If no deck is specified, the default deck from your config will be used.

Examples:
  querent show
  querent show m00
  querent show --deck ./my-deck.csv w01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")

		d, err := resolveDeck(deckFlag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range d.Cards {
				fmt.Fprintf(tw, "%s\t%s\n", c.Code, c.Name)
			}
			return tw.Flush()
		}

		c, err := d.GetCard(args[0])
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		displayCard(out, c, d.Name, terminalWidth(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a card source file")
}

// displayCard prints the card's identity followed by both sets of keywords
// wrapped to the terminal width
func displayCard(out io.Writer, c *card.Card, deckName string, width int) {
	const indent = "  "
	textWidth := max(width-len(indent)*2, 20)

	fmt.Fprintln(out)
	fmt.Fprintln(out, indent+colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", c.Name))
	fmt.Fprintln(out, indent+colorize.CyanString("Deck: ")+colorize.HiWhiteString("%s", deckName))
	fmt.Fprintln(out, indent+colorize.CyanString("Code: ")+colorize.HiWhiteString("%s", c.Code))

	for _, section := range []struct {
		title string
		text  string
	}{
		{"Upright:", c.KeywordsUpright},
		{card.ReversedWord + ":", c.KeywordsReversed},
	} {
		fmt.Fprintln(out)
		fmt.Fprintln(out, indent+colorize.CyanString(section.title))
		for _, line := range render.WrapText(section.text, textWidth) {
			fmt.Fprintln(out, indent+indent+line)
		}
	}
	fmt.Fprintln(out)
}
