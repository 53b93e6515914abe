package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/querent/internal/config"
	"github.com/arcanaland/querent/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage tarot decks in your deck library",
	Long: `Commands for managing the card source files in your deck library
(XDG_DATA_HOME/querent/decks). Each deck is a CSV file named after the deck.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			return fmt.Errorf("error getting default deck: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		marker := func(name string) string {
			if name == defaultDeck {
				return "* "
			}
			return "  "
		}

		found := 0
		builtinInLibrary := false
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
				continue
			}

			d, err := deck.LoadDeck(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				log.Warn("skipping invalid deck", "file", entry.Name(), "error", err)
				continue
			}
			if d.Name == deck.BuiltinName {
				builtinInLibrary = true
			}

			found++
			fmt.Fprintf(out, "%s%s (%d cards)\n", marker(d.Name), d.Name, d.Len())
		}

		if !builtinInLibrary {
			fmt.Fprintf(out, "%s%s (78 cards, built in)\n", marker(deck.BuiltinName), deck.BuiltinName)
		}
		if found == 0 {
			fmt.Fprintln(out, "\nNo decks found in your deck library.")
			fmt.Fprintln(out, "You can add card source files to:", libraryPath)
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		// Make sure the deck exists and loads
		if _, err := resolveDeck(deckName); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}
		settings.DefaultDeck = deckName

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library with the bundled deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}
		fmt.Fprintln(out, "Deck library initialized at:", libraryPath)

		builtinPath := filepath.Join(libraryPath, deck.BuiltinName+".csv")
		switch _, err := os.Stat(builtinPath); {
		case errors.Is(err, os.ErrNotExist):
			if err := os.WriteFile(builtinPath, deck.BuiltinCSV(), 0644); err != nil {
				return fmt.Errorf("error writing bundled deck: %w", err)
			}
			fmt.Fprintln(out, "Bundled deck written to:", builtinPath)
		case err != nil:
			return err
		default:
			fmt.Fprintln(out, "Bundled deck already present:", builtinPath)
		}

		fmt.Fprintln(out, "Config file at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
