package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsondot/internal/exit"
	"github.com/jacoelho/jsondot/internal/search"
	"github.com/jacoelho/jsondot/internal/terminal"
)

const (
	// StdinFile names standard input as the document.
	StdinFile = "-"

	// DefaultRate is the default number of watch rescans per second.
	DefaultRate = 2.0
)

var (
	ErrNoArguments       = errors.New("no arguments provided")
	ErrNoFile            = errors.New("no file specified")
	ErrNoQuery           = errors.New("no query specified")
	ErrTooManyArguments  = errors.New("too many arguments")
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrInvalidRate       = errors.New("rate must not be negative")
	ErrStdinNotSupported = errors.New("stdin cannot be used with --interactive or --watch")
	ErrConflictingModes  = errors.New("--interactive and --watch cannot be combined")
	ErrNoLanguages       = errors.New("languages cannot be empty")
)

// Format selects the report output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatLSP  Format = "lsp"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatLSP}

// ParseFormat returns the format named by s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Config represents the complete configuration for the jsondot tool.
type Config struct {
	File  string
	Query string

	// Language overrides detection from the file extension.
	Language  string
	Languages []string
	Strict    bool

	Format      Format
	Color       terminal.ColorMode
	Interactive bool
	Watch       bool
	Rate        float64 // Watch rescans per second (0 = unlimited)

	LogLevel   slog.Level
	ConfigFile string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Languages: slices.Clone(search.DefaultLanguages),
		Format:    FormatText,
		Color:     terminal.ColorAuto,
		Rate:      DefaultRate,
		LogLevel:  slog.LevelWarn,
	}
}

// Stdin reports whether the document is read from standard input.
func (c *Config) Stdin() bool {
	return c.File == StdinFile
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.File == "" {
		return ErrNoFile
	}
	if c.Query == "" && !c.Interactive {
		return ErrNoQuery
	}
	if c.Interactive && c.Watch {
		return ErrConflictingModes
	}
	if c.Stdin() && (c.Interactive || c.Watch) {
		return ErrStdinNotSupported
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	if c.Rate < 0 {
		return ErrInvalidRate
	}
	if len(c.Languages) == 0 {
		return ErrNoLanguages
	}

	if !c.Stdin() {
		if _, err := os.Stat(c.File); err != nil {
			return fmt.Errorf("file %s not found: %w", c.File, err)
		}
	}

	return nil
}

// fileConfig is the YAML config file layout. Unset fields keep defaults.
type fileConfig struct {
	Languages []string `yaml:"languages"`
	Strict    *bool    `yaml:"strict"`
	Format    string   `yaml:"format"`
	Color     string   `yaml:"color"`
	Rate      *float64 `yaml:"rate"`
	LogLevel  string   `yaml:"log_level"`
}

// loadFile decodes a YAML config file. Unknown fields are rejected.
func loadFile(filename string) (*fileConfig, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, err)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(c *Config) error {
	if fc.Languages != nil {
		c.Languages = fc.Languages
	}
	if fc.Strict != nil {
		c.Strict = *fc.Strict
	}
	if fc.Format != "" {
		f, err := ParseFormat(fc.Format)
		if err != nil {
			return err
		}
		c.Format = f
	}
	if fc.Color != "" {
		mode, err := terminal.ParseColorMode(fc.Color)
		if err != nil {
			return err
		}
		c.Color = mode
	}
	if fc.Rate != nil {
		c.Rate = *fc.Rate
	}
	if fc.LogLevel != "" {
		if err := c.LogLevel.UnmarshalText([]byte(fc.LogLevel)); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		configFile  = fs.String("config", "", "Path to YAML config file")
		language    = fs.String("language", "", "Document language, detected from the file extension when empty")
		strict      = fs.Bool("strict", false, "Use parser key positions instead of the text heuristic")
		format      = fs.String("format", string(FormatText), "Report format: text, json, yaml or lsp")
		interactive = fs.Bool("interactive", false, "Prompt for queries and highlight matches")
		watch       = fs.Bool("watch", false, "Re-run the query when the file changes")
		rate        = fs.Float64("rate", DefaultRate, "Watch rescans per second (0 for unlimited)")
		colorMode   = fs.String("color", string(terminal.ColorAuto), "Color output: auto, always or never")
		debug       = fs.Bool("debug", false, "Enable debug logging")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	positional := fs.Args()
	if len(positional) > 2 {
		return nil, exit.Errorf("Error: %v: %s\n\n%s", ErrTooManyArguments, strings.Join(positional[2:], " "), Usage())
	}

	config := Default()
	if *configFile != "" {
		fc, err := loadFile(*configFile)
		if err != nil {
			return nil, exit.Errorf("Error: %v\n", err)
		}
		if err := fc.apply(config); err != nil {
			return nil, exit.Errorf("Error: config file %s: %v\n", *configFile, err)
		}
		config.ConfigFile = *configFile
	}

	// Explicit flags take precedence over the config file.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		var err error
		switch f.Name {
		case "language":
			config.Language = *language
		case "strict":
			config.Strict = *strict
		case "format":
			config.Format, err = ParseFormat(*format)
		case "interactive":
			config.Interactive = *interactive
		case "watch":
			config.Watch = *watch
		case "rate":
			config.Rate = *rate
		case "color":
			config.Color, err = terminal.ParseColorMode(*colorMode)
		case "debug":
			if *debug {
				config.LogLevel = slog.LevelDebug
			}
		}
		if err != nil && flagErr == nil {
			flagErr = err
		}
	})
	if flagErr != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", flagErr, Usage())
	}

	if len(positional) > 0 {
		config.File = positional[0]
	}
	if len(positional) > 1 {
		config.Query = positional[1]
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsondot - find JSON values by dot notation path

Usage: jsondot [options] <file> [query]

Options:
  --config FILE       YAML config file (languages, strict, format, color, rate, log_level)
  --language ID       Document language, detected from the file extension when empty
  --strict            Use parser key positions instead of the text heuristic
  --format FORMAT     Report format: text, json, yaml or lsp (default: text)
  --interactive       Prompt for queries and highlight matches
  --watch             Re-run the query when the file changes
  --rate N            Watch rescans per second (default: 2, 0 for unlimited)
  --color MODE        Color output: auto, always or never (default: auto)
  --debug             Enable debug logging
  -h, --help          Show this help message

Exit status: 0 when matches are found, 1 when none are, 2 on error.

Examples:
  jsondot package.json scripts.test          # Report every "scripts.test" location
  jsondot --format json data.json id         # Report matches as JSON
  jsondot --interactive settings.jsonc       # Prompt for queries
  cat data.json | jsondot - user.name        # Read the document from stdin
  jsondot --watch --rate 1 data.json a.b     # Re-run on change, at most once per second`
}
