package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/querent/internal/layout"
	"github.com/arcanaland/querent/internal/reading"
	"github.com/arcanaland/querent/internal/render"
)

// sleep paces the shuffle and the deal; replaced in tests
var sleep = time.Sleep

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Shuffle the deck and deal a reading",
	Long: `Read records your question, shuffles the deck seeded by the question and the
current time, deals the top cards onto a spread and offers to save the reading.

On a terminal, read asks for the question and the save path when the flags
are not given. Leave the save path empty to skip saving.

Notes can be attached to dealt cards by position number or by canvas point.

Examples:
  querent read
  querent read -q "What is ahead?" -s "3 Card Simple Quick"
  querent read -q "What is ahead?" -t "2020-12-01 10:00:00" -o reading.csv
  querent read -q "career" --note 2="sudden change" --note-at 400,300="the present"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")
		spreadName, _ := cmd.Flags().GetString("spread")
		stamp, _ := cmd.Flags().GetString("timestamp")
		output, _ := cmd.Flags().GetString("output")
		notes, _ := cmd.Flags().GetStringArray("note")
		notesAt, _ := cmd.Flags().GetStringArray("note-at")
		pauseMS, _ := cmd.Flags().GetInt("pause")
		plain, _ := cmd.Flags().GetBool("plain")

		out := cmd.OutOrStdout()
		in := bufio.NewReader(cmd.InOrStdin())
		_, inTTY := terminal(cmd.InOrStdin())
		_, outTTY := terminal(out)
		interactive := inTTY && outTTY

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

		query, _ := cmd.Flags().GetString("query")
		if !cmd.Flags().Changed("query") && interactive {
			if query, err = prompt(out, in, "Your question: "); err != nil {
				return err
			}
		}
		s.RecordQuery(query)

		pause := settings.DealPause()
		if cmd.Flags().Changed("pause") {
			pause = time.Duration(pauseMS) * time.Millisecond
		}
		if !outTTY {
			pause = 0
		}

		colorize.New(colorize.FgCyan).Fprintln(out, "Shuffling...")
		if pause > 0 {
			sleep(pause)
		}
		if err := s.Shuffle(); err != nil {
			return err
		}

		if spreadName == "" {
			spreadName = settings.DefaultSpread
		}
		if err := s.Deal(spreadName); err != nil {
			return err
		}

		if err := applyNotes(s, notes, notesAt); err != nil {
			return err
		}

		sp := s.Spread()
		heading := colorize.New(colorize.FgMagenta, colorize.Bold)
		heading.Fprintf(out, "%s · %s\n", sp.Name, s.Timestamp())
		if query != "" {
			fmt.Fprintf(out, "%q\n", query)
		}
		fmt.Fprintln(out)

		if plain || !outTTY {
			if err := render.Table(out, sp); err != nil {
				return err
			}
		} else {
			for _, pl := range sp.Placements {
				fmt.Fprintf(out, "%s  %s\n", colorize.MagentaString(pl.Label), pl.Card)
				if pause > 0 {
					sleep(pause)
				}
			}
			fmt.Fprintln(out)

			palette, err := render.ParsePalette(settings.Palette.Label, settings.Palette.Card,
				settings.Palette.Keywords, settings.Palette.Note)
			if err != nil {
				return err
			}
			if err := render.Spread(out, sp, render.Options{
				Width:   terminalWidth(out),
				Cell:    rc.Cell,
				Color:   !colorize.NoColor,
				Palette: palette,
			}); err != nil {
				return err
			}
		}

		if output == "" && interactive {
			if output, err = prompt(out, in, "Save reading to (leave empty to skip): "); err != nil {
				return err
			}
		}

		err = s.Export(output)
		switch {
		case errors.Is(err, reading.ErrExportCancelled):
			log.Debug("export skipped")
			return nil
		case err != nil:
			return err
		}
		colorize.New(colorize.FgGreen).Fprintf(out, "Reading saved to %s\n", output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(readCmd)

	readCmd.Flags().StringP("deck", "d", "", "Deck from your deck library or a path to a card source file")
	readCmd.Flags().StringP("query", "q", "", "The question for this reading")
	readCmd.Flags().StringP("spread", "s", "", "Spread to deal (see 'querent spreads')")
	readCmd.Flags().StringP("timestamp", "t", "", "Replay a reading made at this local time (YYYY-MM-DD HH:MM:SS)")
	readCmd.Flags().StringP("output", "o", "", "Save the reading to this CSV file")
	readCmd.Flags().StringArray("note", nil, "Note for a dealt card, as POSITION=TEXT (repeatable)")
	readCmd.Flags().StringArray("note-at", nil, "Note for the card under a canvas point, as X,Y=TEXT (repeatable)")
	readCmd.Flags().Int("pause", 0, "Pause between dealt cards in milliseconds (default from config)")
	readCmd.Flags().Bool("plain", false, "Print the reading as a plain table")
}

// readingClock returns a clock fixed at stamp, or the wall clock when stamp is empty
func readingClock(stamp string) (func() time.Time, error) {
	if stamp == "" {
		return time.Now, nil
	}
	t, err := time.ParseInLocation(reading.TimestampLayout, stamp, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q (want YYYY-MM-DD HH:MM:SS): %w", stamp, err)
	}
	return func() time.Time { return t }, nil
}

// prompt asks a question on out and returns the trimmed answer line
func prompt(out io.Writer, in *bufio.Reader, question string) (string, error) {
	fmt.Fprint(out, question)
	answer, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// parseNote splits POSITION=TEXT into a zero-based placement index and text
func parseNote(arg string) (int, string, error) {
	pos, text, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid note %q: want POSITION=TEXT", arg)
	}
	n, err := strconv.Atoi(strings.TrimSpace(pos))
	if err != nil || n < 1 {
		return 0, "", fmt.Errorf("invalid note %q: position must be a number from 1", arg)
	}
	return n - 1, text, nil
}

// parseNoteAt splits X,Y=TEXT into a canvas point and text
func parseNoteAt(arg string) (layout.Point, string, error) {
	at, text, ok := strings.Cut(arg, "=")
	if !ok {
		return layout.Point{}, "", fmt.Errorf("invalid note %q: want X,Y=TEXT", arg)
	}
	xs, ys, ok := strings.Cut(at, ",")
	if !ok {
		return layout.Point{}, "", fmt.Errorf("invalid note %q: want X,Y=TEXT", arg)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return layout.Point{}, "", fmt.Errorf("invalid note %q: coordinates must be numbers", arg)
	}
	return layout.Point{X: x, Y: y}, text, nil
}

func applyNotes(s *reading.Session, notes, notesAt []string) error {
	for _, arg := range notes {
		i, text, err := parseNote(arg)
		if err != nil {
			return err
		}
		if err := s.SetNote(i, text); err != nil {
			return fmt.Errorf("note %q: %w", arg, err)
		}
	}
	for _, arg := range notesAt {
		p, text, err := parseNoteAt(arg)
		if err != nil {
			return err
		}
		if _, err := s.SetNoteAt(p, text); err != nil {
			return fmt.Errorf("note %q: no card at %s: %w", arg, p, err)
		}
	}
	return nil
}
