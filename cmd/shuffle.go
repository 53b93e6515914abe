package cmd

import (
	"fmt"
	"text/tabwriter"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/querent/internal/reading"
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Print the deck order a question and timestamp produce",
	Long: `Shuffle runs the same seeded shuffle as 'querent read' and prints the whole
deck in dealing order, marking reversed cards. Use it to inspect or replay
the shuffle behind a saved reading.

Examples:
  querent shuffle -q "What is ahead?" -t "2020-12-01 10:00:00"
  querent shuffle --deck ./my-deck.csv -q career`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")
		query, _ := cmd.Flags().GetString("query")
		stamp, _ := cmd.Flags().GetString("timestamp")

		clock, err := readingClock(stamp)
		if err != nil {
			return err
		}
		rc, err := settings.Reading(clock, log)
		if err != nil {
			return err
		}
		s := reading.NewSession(rc)

		d, err := resolveDeck(deckFlag)
		if err != nil {
			return err
		}
		if err := s.UseDeck(d); err != nil {
			return err
		}

		s.RecordQuery(query)
		if err := s.Shuffle(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %q\n", colorize.CyanString("Seed:"), s.Seed())
		fmt.Fprintf(out, "%s %d of %d\n\n", colorize.CyanString("Reversed:"), d.ReversedCount(), d.Len())

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for i, c := range d.Cards {
			fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, c.Code, c)
		}
		return tw.Flush()
	},
}

func init() {
	RootCmd.AddCommand(shuffleCmd)

	shuffleCmd.Flags().StringP("deck", "d", "", "Deck from your deck library or a path to a card source file")
	shuffleCmd.Flags().StringP("query", "q", "", "The question the shuffle is seeded with")
	shuffleCmd.Flags().StringP("timestamp", "t", "", "Timestamp the shuffle is seeded with (default now)")
}
