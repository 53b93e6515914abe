package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/querent/internal/config"
	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/logger"
)

var (
	settings *config.Config
	log      *slog.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "querent",
	Short: "Shuffle, deal and record tarot readings",
	Long: `Querent shuffles a tarot deck seeded by your question and the moment you ask it,
deals the cards onto a spread, and saves the reading as a CSV file.

The same question asked at the same timestamp always produces the same reading,
so any saved reading can be replayed with 'querent read -q ... -t ...'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		settings = cfg

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level, _ = cmd.Flags().GetString("log-level")
		}
		log = logger.Setup(level, cmd.ErrOrStderr())
		log.Debug("config loaded", "path", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// resolveDeck loads a deck by library name or path. The bundled deck is used
// when its name is asked for and the library has no copy of it.
func resolveDeck(name string) (*deck.Deck, error) {
	if name == "" {
		name = settings.DefaultDeck
	}

	deckPath, err := config.GetDeckPath(name)
	if err != nil {
		if name == deck.BuiltinName {
			log.Debug("using bundled deck", "deck", name)
			return deck.Builtin()
		}
		return nil, err
	}

	d, err := deck.LoadDeck(deckPath)
	if err != nil {
		return nil, fmt.Errorf("error loading deck: %w", err)
	}
	log.Debug("deck resolved", "deck", d.Name, "path", deckPath)
	return d, nil
}

// terminal reports whether f is an interactive terminal
func terminal(f any) (*os.File, bool) {
	file, ok := f.(*os.File)
	if !ok {
		return nil, false
	}
	return file, term.IsTerminal(int(file.Fd()))
}

// terminalWidth returns the column count of w, or 80 when w is not a terminal
func terminalWidth(w io.Writer) int {
	if file, ok := terminal(w); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
