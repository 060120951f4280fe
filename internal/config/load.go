package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// Path is an explicit credentials file. When empty the working directory
	// and its parents are searched; finding nothing is not an error.
	Path string
	// Profile overrides MTURK_PROFILE and the default profile name.
	Profile string
	// EnvFile is loaded before environment overrides; defaults to ./.env.
	EnvFile string
}

// Load resolves the client configuration from the credentials file, the
// .env file and the environment, then normalizes and validates it.
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}
	cfg := Config{ProfileName: strings.TrimSpace(opts.Profile)}
	if cfg.ProfileName == "" {
		cfg.ProfileName, _ = lookupEnv(EnvProfile)
	}
	if cfg.ProfileName == "" {
		cfg.ProfileName = DefaultProfile
	}

	collector := &issueCollector{}
	path, err := resolvePath(opts.Path)
	switch {
	case errors.Is(err, ErrConfigNotFound):
	case err != nil:
		return Config{}, err
	default:
		file, err := ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		profile, ok := file.Profiles[cfg.ProfileName]
		if !ok {
			collector.add("profiles."+cfg.ProfileName, fmt.Sprintf("profile not found in %s", path))
		}
		cfg.Profile = profile
		cfg.SourcePath = path
	}

	applyEnv(&cfg, collector)
	Normalize(&cfg)
	validateInto(&cfg, collector)
	if err := collector.result(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return FindConfigPath("")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// ReadFile parses a credentials file. Files ending in .json are read as JSON
// and may use either {"profiles": {...}} or a bare map of profile names;
// everything else is strict YAML.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSONFile(data)
	}
	return parseYAMLFile(data)
}

func parseYAMLFile(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return file, nil
}

func parseJSONFile(data []byte) (File, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	raw, ok := top["profiles"]
	if !ok {
		raw = data
	}
	profiles := map[string]Profile{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&profiles); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return File{Profiles: profiles}, nil
}
