package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSandbox         = "MTURK_SANDBOX"
	EnvRegion          = "MTURK_REGION"
	EnvEndpoint        = "MTURK_ENDPOINT"
	EnvProfile         = "MTURK_PROFILE"
)

// loadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing default file
// is not an error.
func loadEnvFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = EnvFileName
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config, collector *issueCollector) {
	if v, ok := lookupEnv(EnvAccessKeyID); ok {
		cfg.AccessKeyID = v
	}
	if v, ok := lookupEnv(EnvSecretAccessKey); ok {
		cfg.SecretAccessKey = v
	}
	if v, ok := lookupEnv(EnvRegion); ok {
		cfg.Region = v
	}
	if v, ok := lookupEnv(EnvEndpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := lookupEnv(EnvSandbox); ok {
		sandbox, err := strconv.ParseBool(v)
		if err != nil {
			collector.add(EnvSandbox, fmt.Sprintf("invalid boolean %q", v))
		} else {
			cfg.Sandbox = sandbox
		}
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
