package config

// File is the on-disk credentials file holding named profiles.
type File struct {
	Profiles map[string]Profile `yaml:"profiles" json:"profiles"`
}

// Profile holds the requester credentials and endpoint choice for one account.
type Profile struct {
	AccessKeyID     string `yaml:"aws_access_key_id" json:"aws_access_key_id"`
	SecretAccessKey string `yaml:"aws_secret_access_key" json:"aws_secret_access_key"`
	Sandbox         bool   `yaml:"sandbox" json:"sandbox"`
	Region          string `yaml:"region" json:"region"`
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
}

// Config is the resolved client configuration after file, .env and
// environment overrides are applied.
type Config struct {
	ProfileName string
	SourcePath  string
	Profile
}

// HasStaticCredentials reports whether explicit keys were configured. When
// false the AWS default credential chain is used.
func (c Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// EndpointURL returns the requester API endpoint: the explicit override when
// set, otherwise the sandbox or production endpoint.
func (c Config) EndpointURL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Sandbox {
		return SandboxEndpoint
	}
	return ProductionEndpoint
}
