package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are the config file names looked for in each directory, in
// order of preference.
var FileNames = []string{".solfmt.toml", ".solfmt.yaml", ".solfmt.yml"}

// Find walks up from startDir and returns the first config file found.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFile reads the config at path on top of Default and validates it.
func LoadFile(path string) (Config, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		err = decodeTOML(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("%w: %w", ErrUnknownKey, err)
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// LoadOptions selects where configuration comes from.
type LoadOptions struct {
	// StartDir is where discovery starts, usually the first target path.
	StartDir string
	// ExplicitPath skips discovery.
	ExplicitPath string
}

// LoadResult is the effective configuration and the file it came from.
type LoadResult struct {
	Config Config
	Path   string
}

// Load returns the explicit config, the discovered one, or Default.
func Load(opts LoadOptions) (LoadResult, error) {
	path := opts.ExplicitPath
	if path == "" {
		found, ok, err := Find(opts.StartDir)
		if err != nil {
			return LoadResult{}, err
		}
		if !ok {
			return LoadResult{Config: Default()}, nil
		}
		path = found
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return LoadResult{}, err
	}
	return LoadResult{Config: cfg, Path: path}, nil
}

// WriteTOML encodes cfg the way `solfmt init` writes it.
func WriteTOML(w io.Writer, cfg Config) error {
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if _, err := io.WriteString(w, "# solfmt configuration\n"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(cfg)
}
