package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/querent/internal/config"
	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a card source file",
	Long: `Validate checks that a card source CSV file can be loaded as a deck.
It reports every missing column, malformed row and duplicate code, and warns
about empty keywords and unusual deck sizes.

Without a path, the default deck is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var (
			v       *validator.Validator
			results validator.ValidationResults
			err     error
			name    string
		)
		switch {
		case len(args) == 1:
			name = args[0]
			v = validator.NewValidator(name)
			v.MaxReversed = strictMaxReversed()
			results, err = v.Validate()
		default:
			name = settings.DefaultDeck
			deckPath, pathErr := config.GetDeckPath(name)
			switch {
			case pathErr == nil:
				v = validator.NewValidator(deckPath)
				v.MaxReversed = strictMaxReversed()
				results, err = v.Validate()
			case name == deck.BuiltinName:
				v = validator.NewValidator(name)
				v.MaxReversed = strictMaxReversed()
				results, err = v.ValidateReader(bytes.NewReader(deck.BuiltinCSV()))
			default:
				return pathErr
			}
		}
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Display validation results
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "✅ Deck '%s' is valid.\n", name)
		} else {
			fmt.Fprintf(out, "❌ Deck '%s' has %d validation errors:\n", name, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

// strictMaxReversed returns the reversal bound a deck must fit, or zero when
// the bound shrinks to fit any deck
func strictMaxReversed() int {
	if settings.ClampReversed() {
		return 0
	}
	return settings.Shuffle.MaxReversed
}
