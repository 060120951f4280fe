package config

import "strings"

// Defaults applied during normalization.
const (
	DefaultProfile = "default"
	DefaultRegion  = "us-east-1"

	ProductionEndpoint = "https://mturk-requester.us-east-1.amazonaws.com"
	SandboxEndpoint    = "https://mturk-requester-sandbox.us-east-1.amazonaws.com"
)

// Normalize trims values and fills defaults.
func Normalize(cfg *Config) {
	cfg.ProfileName = strings.TrimSpace(cfg.ProfileName)
	if cfg.ProfileName == "" {
		cfg.ProfileName = DefaultProfile
	}
	cfg.AccessKeyID = strings.TrimSpace(cfg.AccessKeyID)
	cfg.SecretAccessKey = strings.TrimSpace(cfg.SecretAccessKey)
	cfg.Region = strings.TrimSpace(cfg.Region)
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
}
