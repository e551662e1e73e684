package config

import (
	"github.com/tiendc/go-deepcopy"
)

var (
	Commit     string //nolint: gochecknoglobals
	BinaryType string //nolint: gochecknoglobals
	GoVersion  string //nolint: gochecknoglobals
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	DefaultLogLevel = "info"

	redacted = "******"
)

func OutputFormats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
	Audit  string `mapstructure:"audit"`
}

// Config holds the inputs of one retention run.
type Config struct {
	Owner       string `mapstructure:"owner"`
	Repo        string `mapstructure:"repo"`
	PackageName string `mapstructure:"package-name"`

	// PackageVersionIDs, when set, are deleted as is and no version query is made.
	PackageVersionIDs []string `mapstructure:"package-version-ids"`

	NumOldVersionsToDelete int `mapstructure:"num-old-versions-to-delete"`
	NumOldVersionsToKeep   int `mapstructure:"num-old-versions-to-keep"`

	Token      string `mapstructure:"token"`
	APIURL     string `mapstructure:"api-url"`
	GraphQLURL string `mapstructure:"graphql-url"`

	DryRun bool       `mapstructure:"dry-run"`
	Format string     `mapstructure:"format"`
	Log    *LogConfig `mapstructure:"log"`
}

func New() *Config {
	return &Config{
		PackageVersionIDs: []string{},
		Format:            FormatText,
		Log:               &LogConfig{Level: DefaultLogLevel},
	}
}

// HasOldestVersionQueryInfo reports whether the registry can be queried for old versions.
func (c *Config) HasOldestVersionQueryInfo() bool {
	return c.Owner != "" &&
		c.Repo != "" &&
		c.PackageName != "" &&
		(c.NumOldVersionsToDelete > 0 || c.NumOldVersionsToKeep > 0) &&
		c.Token != ""
}

func (c *Config) HasExplicitVersionIDs() bool {
	return len(c.PackageVersionIDs) > 0
}

// Sanitize makes a sanitized copy of the config removing any secrets.
func (c *Config) Sanitize() *Config {
	if c.Token == "" {
		return c
	}

	s := &Config{}
	if err := deepcopy.Copy(s, c); err != nil {
		panic(err)
	}

	s.Token = redacted

	return s
}
