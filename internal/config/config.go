package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.skillscan/skillscan.yaml.
// Every path in it is resolved here and passed explicitly into the
// scanner, store and report layers; nothing below the cmd layer reads
// process-wide state.
type Config struct {
	OursPath  string  `yaml:"ours_path,omitempty"`
	CacheDir  string  `yaml:"cache_dir,omitempty"`
	ReportDir string  `yaml:"report_dir,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

// DefaultThreshold is the similarity cutoff used when neither the
// config file nor the --threshold flag sets one.
const DefaultThreshold = 0.15

// Dir returns the absolute path to ~/.skillscan/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".skillscan"), nil
}

// Path returns the absolute path to ~/.skillscan/skillscan.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillscan.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Config{
		CacheDir:  filepath.Join(dir, "cache"),
		ReportDir: "reports",
		Threshold: DefaultThreshold,
	}, nil
}

// Load reads ~/.skillscan/skillscan.yaml. On first run, when no file
// exists yet, the defaults are written out so users have a file to
// edit. The config file stays optional; flags override any value in
// it.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg, err := DefaultConfig()
			if err != nil {
				return nil, err
			}
			if err := Save(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	defaults, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaults.CacheDir
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = defaults.ReportDir
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = defaults.Threshold
	}

	for _, p := range []*string{&cfg.OursPath, &cfg.CacheDir, &cfg.ReportDir} {
		if *p == "" {
			continue
		}
		expanded, err := ExpandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to ~/.skillscan/skillscan.yaml.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
