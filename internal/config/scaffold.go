package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scaffold writes a credentials file at path holding a single profile. The
// file is created with owner-only permissions and never overwritten.
func Scaffold(path, profileName string, profile Profile) error {
	profileName = strings.TrimSpace(profileName)
	if profileName == "" {
		profileName = DefaultProfile
	}
	candidate := Config{ProfileName: profileName, Profile: profile}
	Normalize(&candidate)
	if err := Validate(&candidate); err != nil {
		return err
	}
	data, err := yaml.Marshal(File{Profiles: map[string]Profile{profileName: candidate.Profile}})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return file.Close()
}
