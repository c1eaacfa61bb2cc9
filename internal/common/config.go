package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
)

// EnvPrefix is stripped from environment overrides. A double underscore
// separates sections: MDF_PDF__TIMEOUT -> pdf.timeout.
const EnvPrefix = "MDF_"

// Config holds all application configuration
type Config struct {
	Paths  PathsConfig  `koanf:"paths"`
	Roster RosterConfig `koanf:"roster"`
	PDF    PDFConfig    `koanf:"pdf"`
	Rules  RulesConfig  `koanf:"rules"`
	Output OutputConfig `koanf:"output"`
	Log    LogConfig    `koanf:"log"`
}

// PathsConfig holds where inputs are looked up. Relative paths resolve
// against BaseDir.
type PathsConfig struct {
	BaseDir        string   `koanf:"base_dir"`
	DocumentsDir   string   `koanf:"documents_dir"`
	Folders        []string `koanf:"folders"`
	SchemaFile     string   `koanf:"schema_file"`
	RosterPrefix   string   `koanf:"roster_prefix"`
	RosterFallback string   `koanf:"roster_fallback"`
}

// RosterConfig holds roster workbook reading limits
type RosterConfig struct {
	MaxSheets     int `koanf:"max_sheets"`
	StopEmptyRows int `koanf:"stop_empty_rows"`
}

// PDFConfig holds text-extraction configuration
type PDFConfig struct {
	Pdftotext string        `koanf:"pdftotext"`
	Layout    bool          `koanf:"layout"`
	Timeout   time.Duration `koanf:"timeout"`
}

// RulesConfig holds the per-folder business rules applied to records
type RulesConfig struct {
	Status       string         `koanf:"status"`
	KnownFolders []string       `koanf:"known_folders"`
	Destination  string         `koanf:"destination"`
	DelayFolder  string         `koanf:"delay_folder"`
	DelayReason  string         `koanf:"delay_reason"`
	PreferSheet  map[string]int `koanf:"prefer_sheet"`
}

// OutputConfig holds export configuration
type OutputConfig struct {
	CSVEncoding  string `koanf:"csv_encoding"`
	CutoffHour   int    `koanf:"cutoff_hour"`
	WriteHistory bool   `koanf:"write_history"`
	RemoveOld    bool   `koanf:"remove_old"`
}

// LogConfig holds logging and console configuration
type LogConfig struct {
	Level        string `koanf:"level"`
	Verbose      bool   `koanf:"verbose"`
	Color        bool   `koanf:"color"`
	SummaryLimit int    `koanf:"summary_limit"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			BaseDir:        ".",
			DocumentsDir:   "MDFs geradas",
			Folders:        constants.DefaultFolders(),
			SchemaFile:     "BASE.csv",
			RosterPrefix:   "escala",
			RosterFallback: "ESCALA MOTORISTAS 2025.xlsx",
		},
		Roster: RosterConfig{
			MaxSheets:     2,
			StopEmptyRows: 50,
		},
		PDF: PDFConfig{
			Pdftotext: "pdftotext",
			Layout:    true,
			Timeout:   30 * time.Second,
		},
		Rules: RulesConfig{
			Status:       "FATURADO",
			KnownFolders: []string{string(constants.Itu), string(constants.Sorocaba)},
			Destination:  "DHL",
			DelayFolder:  string(constants.Sorocaba),
			DelayReason:  "VETADO ANTECIPACAO DE MDF",
			PreferSheet:  map[string]int{string(constants.Itu): constants.SheetCurrentDay},
		},
		Output: OutputConfig{
			CSVEncoding:  "latin-1",
			CutoffHour:   22,
			WriteHistory: true,
			RemoveOld:    true,
		},
		Log: LogConfig{
			Level:        "info",
			Color:        true,
			SummaryLimit: 40,
		},
	}
}

// LoadConfig layers defaults, the optional YAML file at path and MDF_*
// environment variables, in that order of increasing precedence. Unknown
// keys in the file are rejected.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, NewAppError(CodeConfig, "read config file", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, NewAppError(CodeConfig, fmt.Sprintf("parse config file %s", path), err)
		}
		if err := validateConfigKeys(k.Raw()); err != nil {
			return nil, NewAppError(CodeConfig, fmt.Sprintf("config file %s", path), err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, NewAppError(CodeConfig, "load environment", err)
	}

	cfg := DefaultConfig()
	// Maps are merged key by key on decode; a configured preference table
	// replaces the default one instead.
	if k.Exists("rules.prefer_sheet") {
		cfg.Rules.PreferSheet = nil
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, NewAppError(CodeConfig, "decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.BaseDir) == "" {
		return NewAppError(CodeConfig, "paths.base_dir is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Paths.SchemaFile) == "" {
		return NewAppError(CodeConfig, "paths.schema_file is required", ErrInvalidInput)
	}
	if len(c.Paths.Folders) == 0 {
		return NewAppError(CodeConfig, "paths.folders must list at least one folder", ErrInvalidInput)
	}
	if c.Roster.MaxSheets <= 0 {
		return NewAppError(CodeConfig, "roster.max_sheets must be positive", ErrInvalidInput)
	}
	if c.Roster.StopEmptyRows <= 0 {
		return NewAppError(CodeConfig, "roster.stop_empty_rows must be positive", ErrInvalidInput)
	}
	if c.PDF.Timeout < 0 {
		return NewAppError(CodeConfig, "pdf.timeout cannot be negative", ErrInvalidInput)
	}
	if c.Output.CutoffHour < 0 || c.Output.CutoffHour > 24 {
		return NewAppError(CodeConfig, "output.cutoff_hour must be within 0..24", ErrInvalidInput)
	}
	switch strings.ToLower(c.Output.CSVEncoding) {
	case "latin-1", "latin1", "iso-8859-1", "cp1252", "windows-1252", "utf-8", "utf8":
	default:
		return NewAppError(CodeConfig, fmt.Sprintf("output.csv_encoding %q is not supported", c.Output.CSVEncoding), ErrInvalidInput)
	}
	return nil
}
