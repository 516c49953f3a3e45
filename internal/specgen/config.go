package specgen

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the working directory when no config
// path is given.
const DefaultConfigName = "specgen.yaml"

type Config struct {
	Version int    `yaml:"version"`
	Entry   string `yaml:"entry"`
	Table   string `yaml:"table"`
	Absent  string `yaml:"absent"`
	Header  string `yaml:"header,omitempty"`
	Indent  int    `yaml:"indent"`
}

func DefaultConfig() Config {
	return Config{
		Version: 1,
		Entry:   "run",
		Table:   "TEST_LIST",
		Absent:  DefaultAbsent,
		Indent:  4,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ParseError(path, "read config", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, ParseError(path, "parse yaml", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		if specErr, ok := err.(*Error); ok {
			specErr.File = path
		}
		return nil, err
	}
	return &cfg, nil
}

var cIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func ValidateConfig(cfg *Config) error {
	if cfg.Version != 1 {
		return ConfigErrorf("", "unsupported config version: %d", cfg.Version)
	}
	if !cIdent.MatchString(cfg.Entry) {
		return ConfigErrorf("", "entry %q is not a C identifier", cfg.Entry)
	}
	if !cIdent.MatchString(cfg.Table) {
		return ConfigErrorf("", "table %q is not a C identifier", cfg.Table)
	}
	if cfg.Absent == "" {
		return ConfigErrorf("", "absent literal is empty")
	}
	if cfg.Indent < 0 || cfg.Indent > 16 {
		return ConfigErrorf("", "indent must be between 0 and 16, got %d", cfg.Indent)
	}
	return nil
}
