package config

import (
	"fmt"
	"net/url"
)

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	validateInto(cfg, collector)
	return collector.result()
}

func validateInto(cfg *Config, collector *issueCollector) {
	// The requester API is only served from us-east-1.
	if cfg.Region != DefaultRegion {
		collector.add("region", fmt.Sprintf("unsupported region %q (mturk is only available in %s)", cfg.Region, DefaultRegion))
	}
	switch {
	case cfg.AccessKeyID != "" && cfg.SecretAccessKey == "":
		collector.add("aws_secret_access_key", "is required when aws_access_key_id is set")
	case cfg.AccessKeyID == "" && cfg.SecretAccessKey != "":
		collector.add("aws_access_key_id", "is required when aws_secret_access_key is set")
	}
	if cfg.Endpoint != "" {
		parsed, err := url.Parse(cfg.Endpoint)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			collector.add("endpoint", fmt.Sprintf("invalid endpoint URL %q", cfg.Endpoint))
		}
	}
}
