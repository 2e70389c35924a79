package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvDirectory   = "ORGJOURNAL_DIR"
	EnvFileFormat  = "ORGJOURNAL_FILE_FORMAT"
	EnvTitleFormat = "ORGJOURNAL_TITLE_FORMAT"
	EnvDateFormat  = "ORGJOURNAL_DATE_FORMAT"
	EnvTimeFormat  = "ORGJOURNAL_TIME_FORMAT"
	EnvEditor      = "ORGJOURNAL_EDITOR"
)

// Config is the user-facing journal configuration. All format fields are
// strftime patterns.
type Config struct {
	// Directory holds the monthly files. A leading ~ is expanded on Load.
	Directory string `json:"directory" yaml:"directory"`
	// FileNameFormat names a monthly file relative to Directory.
	FileNameFormat string `json:"file_name_format" yaml:"file_name_format"`
	// TitleFormat is the first line written into a new monthly file.
	TitleFormat string `json:"title_format" yaml:"title_format"`
	// DateHeadingFormat is the text of a day heading (without the "* " marker).
	DateHeadingFormat string `json:"date_heading_format" yaml:"date_heading_format"`
	// TimeHeadingFormat is the text of an entry heading (without the "** " marker).
	TimeHeadingFormat string `json:"time_heading_format" yaml:"time_heading_format"`
	// Editor overrides $VISUAL/$EDITOR for --edit.
	Editor string `json:"editor,omitempty" yaml:"editor,omitempty"`
}

// Default returns a Config with the stock journal layout.
func Default() Config {
	return Config{
		Directory:         "~/journal",
		FileNameFormat:    "%Y-%m.org",
		TitleFormat:       "#+TITLE: Journal %Y-%m",
		DateHeadingFormat: "%A, %d %B",
		TimeHeadingFormat: "%H%M",
	}
}

// Validate checks that every field is usable. Pattern syntax is checked
// separately when the journal compiles its layout.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Directory, validation.Required),
		validation.Field(&c.FileNameFormat, validation.Required, validation.By(relativePath)),
		validation.Field(&c.TitleFormat, validation.By(singleLine)),
		validation.Field(&c.DateHeadingFormat, validation.Required, validation.By(singleLine)),
		validation.Field(&c.TimeHeadingFormat, validation.Required, validation.By(singleLine)),
	)
}

func singleLine(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("must be a single line")
	}
	return nil
}

func relativePath(value any) error {
	s, _ := value.(string)
	if filepath.IsAbs(s) {
		return errors.New("must be relative to the journal directory")
	}
	for _, part := range strings.Split(filepath.ToSlash(s), "/") {
		if part == ".." {
			return errors.New("must not leave the journal directory")
		}
	}
	return nil
}

// Load reads the config file at path, layered as:
// defaults < file < environment. A missing file yields the defaults.
// ${VAR} references in the file are expanded before parsing.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("cannot read config at %s: %w", path, err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	dir, err := homedir.Expand(cfg.Directory)
	if err != nil {
		return Config{}, fmt.Errorf("expanding journal directory %q: %w", cfg.Directory, err)
	}
	cfg.Directory = dir

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		env   string
		field *string
	}{
		{EnvDirectory, &cfg.Directory},
		{EnvFileFormat, &cfg.FileNameFormat},
		{EnvTitleFormat, &cfg.TitleFormat},
		{EnvDateFormat, &cfg.DateHeadingFormat},
		{EnvTimeFormat, &cfg.TimeHeadingFormat},
		{EnvEditor, &cfg.Editor},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.field = v
		}
	}
}

// Save writes cfg to path as YAML, creating the parent directory.
// An existing file is only replaced when force is true.
func Save(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadEnvFiles loads dotenv files in priority order. Variables already set in
// the environment always win, and so does the first file that sets a variable.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func LoadEnvFiles() error {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading env file %s: %w", f, err)
		}
	}
	return nil
}
