package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file in a workspace root.
const FileName = "rollbook.yaml"

// EnvPrefix prefixes environment overrides, e.g. ROLLBOOK_DATABASE_PATH.
const EnvPrefix = "ROLLBOOK"

// Config represents the top-level rollbook.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Parser   ParserConfig   `yaml:"parser" envconfig:"PARSER"`
	Import   DirConfig      `yaml:"import" envconfig:"IMPORT"`
	Export   DirConfig      `yaml:"export" envconfig:"EXPORT"`
	Backup   DirConfig      `yaml:"backup" envconfig:"BACKUP"`
}

// DatabaseConfig locates the SQLite file, relative to the workspace root
// unless absolute.
type DatabaseConfig struct {
	Path string `yaml:"path" split_words:"true" validate:"required"`
}

// LoggingConfig controls the application log.
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=text json"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// ParserConfig tunes roster parsing.
type ParserConfig struct {
	HeaderPrefix string `yaml:"header_prefix" split_words:"true"`
}

// DirConfig names a workspace subdirectory.
type DirConfig struct {
	Dir string `yaml:"dir" split_words:"true" validate:"required"`
}

var validate = validator.New()

// Load reads a rollbook.yaml file, applies ROLLBOOK_* environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "attendance.db"},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "file",
			FilePath: "logs/rollbook.log",
		},
		Parser: ParserConfig{HeaderPrefix: "S.No"},
		Import: DirConfig{Dir: "import"},
		Export: DirConfig{Dir: "exports"},
		Backup: DirConfig{Dir: "backups"},
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// Resolve makes a configured path absolute against the workspace root.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
