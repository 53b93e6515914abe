package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/spread"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	DefaultDeck   string              `toml:"default_deck" validate:"required"`
	DefaultSpread string              `toml:"default_spread" validate:"required"`
	LogLevel      string              `toml:"log_level" validate:"oneof=debug info warn error"`
	Layout        LayoutConfig        `toml:"layout"`
	Shuffle       ShuffleConfig       `toml:"shuffle"`
	Export        ExportConfig        `toml:"export"`
	Palette       PaletteConfig       `toml:"palette"`
	Spreads       []spread.Definition `toml:"spreads,omitempty"`
}

// LayoutConfig sizes the notional grid cells on the canvas, in pixels
type LayoutConfig struct {
	CellWidth  float64 `toml:"cell_width" validate:"gt=0"`
	CellHeight float64 `toml:"cell_height" validate:"gt=0"`
	CellPad    float64 `toml:"cell_pad" validate:"gte=0"`
}

// ShuffleConfig bounds reversals and paces the deal
type ShuffleConfig struct {
	MinReversed int `toml:"min_reversed" validate:"gte=0"`
	MaxReversed int `toml:"max_reversed" validate:"gtefield=MinReversed"`
	DealPauseMS int `toml:"deal_pause_ms" validate:"gte=0"`
}

// ExportConfig controls the saved reading
type ExportConfig struct {
	IncludeNotes bool `toml:"include_notes"`
}

// PaletteConfig holds the hex colours used to draw a spread
type PaletteConfig struct {
	Label    string `toml:"label" validate:"hexcolor"`
	Card     string `toml:"card" validate:"hexcolor"`
	Keywords string `toml:"keywords" validate:"hexcolor"`
	Note     string `toml:"note" validate:"hexcolor"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		DefaultDeck:   deck.BuiltinName,
		DefaultSpread: spread.Default,
		LogLevel:      "warn",
		Layout: LayoutConfig{
			CellWidth:  240,
			CellHeight: 150,
			CellPad:    10,
		},
		Shuffle: ShuffleConfig{
			MinReversed: deck.DefaultMinReversed,
			MaxReversed: deck.DefaultMaxReversed,
			DealPauseMS: 1000,
		},
		Palette: PaletteConfig{
			Label:    "#A060C0",
			Card:     "#F0F0F0",
			Keywords: "#60A0A0",
			Note:     "#60A060",
		},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the directory holding card source files
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "querent", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "querent", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if absent.
// Keys missing from the file keep their default values.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// createDefaultConfig writes and returns the default config
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the config file
func Save(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// Validate checks field constraints, cell geometry and custom spreads
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	l := c.Layout
	if l.CellWidth <= 2*l.CellPad || l.CellHeight <= 2*l.CellPad {
		return fmt.Errorf("%w: cell_pad %g leaves no room in a %gx%g cell",
			ErrInvalidConfig, l.CellPad, l.CellWidth, l.CellHeight)
	}

	catalog, err := c.Catalog()
	if err != nil {
		return err
	}
	if _, ok := catalog.Lookup(c.DefaultSpread); !ok {
		return fmt.Errorf("%w: default_spread %q is not defined", ErrInvalidConfig, c.DefaultSpread)
	}
	return nil
}

// Catalog returns the built-in spreads followed by the configured ones
func (c *Config) Catalog() (*spread.Catalog, error) {
	catalog := spread.NewCatalog()
	for _, def := range c.Spreads {
		if err := catalog.Add(def); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return catalog, nil
}

// GetDeckPath resolves a deck name to a card source file, looking in the
// deck library first (with or without the .csv extension) and then
// treating the name as a path
func GetDeckPath(deckName string) (string, error) {
	libraryPath := GetDeckLibraryPath()
	for _, candidate := range []string{
		filepath.Join(libraryPath, deckName),
		filepath.Join(libraryPath, deckName+".csv"),
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	if info, err := os.Stat(deckName); err == nil && !info.IsDir() {
		return deckName, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return Save(config)
}
