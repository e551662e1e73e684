package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	"github.com/pkgsweep/pkgsweep/pkg/common"
)

// inputEnvPrefix is how GitHub Actions exposes the inputs of a step.
const inputEnvPrefix = "INPUT_"

type setting struct {
	key  string
	flag string
	env  []string // read after INPUT_<FLAG>
}

//nolint:gochecknoglobals
var settings = []setting{
	{key: "owner", flag: "owner", env: []string{"GITHUB_REPOSITORY_OWNER"}},
	{key: "repo", flag: "repo"},
	{key: "package-name", flag: "package-name"},
	{key: "package-version-ids", flag: "package-version-ids"},
	{key: "num-old-versions-to-delete", flag: "num-old-versions-to-delete"},
	{key: "num-old-versions-to-keep", flag: "num-old-versions-to-keep"},
	{key: "token", flag: "token", env: []string{"GITHUB_TOKEN"}},
	{key: "api-url", flag: "api-url"},
	{key: "graphql-url", flag: "graphql-url", env: []string{"GITHUB_GRAPHQL_URL"}},
	{key: "dry-run", flag: "dry-run"},
	{key: "format", flag: "format"},
	{key: "log::level", flag: "log-level"},
	{key: "log::output", flag: "log-output"},
	{key: "log::audit", flag: "audit-log"},
}

// FlagNames returns the flag bound to every config key.
func FlagNames() []string {
	names := make([]string, 0, len(settings))

	for _, s := range settings {
		names = append(names, s.flag)
	}

	return names
}

// LoadConfiguration resolves config from flags, then INPUT_* environment variables, then the optional file.
func LoadConfiguration(config *Config, flags *pflag.FlagSet, configPath string) error {
	// Default is dot (.), keep the same delimiter everywhere for nested keys.
	viperInstance := viper.NewWithOptions(viper.KeyDelimiter("::"))

	for _, s := range settings {
		if flags != nil {
			if flag := flags.Lookup(s.flag); flag != nil {
				if err := viperInstance.BindPFlag(s.key, flag); err != nil {
					return err
				}
			}
		}

		envNames := append([]string{inputEnvPrefix + strings.ToUpper(s.flag)}, s.env...)

		if err := viperInstance.BindEnv(append([]string{s.key}, envNames...)...); err != nil {
			return err
		}
	}

	if configPath != "" {
		viperInstance.SetConfigFile(configPath)

		if err := viperInstance.ReadInConfig(); err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("failed to read configuration")

			return fmt.Errorf("%w: %w", zerr.ErrBadConfig, err)
		}
	}

	if err := unmarshal(viperInstance, config); err != nil {
		return err
	}

	// defaults
	applyDefaultValues(config)

	if err := Validate(config); err != nil {
		log.Error().Err(err).Msg("config is not valid")

		return err
	}

	return nil
}

func unmarshal(viperInstance *viper.Viper, config *Config) error {
	metaData := &mapstructure.Metadata{}

	decoderOpts := []viper.DecoderConfigOption{
		metadataConfig(metaData),
		viper.DecodeHook(mapstructure.StringToSliceHookFunc(",")),
	}

	if err := viperInstance.Unmarshal(config, decoderOpts...); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal new config")

		return fmt.Errorf("%w: %w", zerr.ErrBadConfig, err)
	}

	if len(metaData.Unused) > 0 {
		log.Error().Err(zerr.ErrBadConfig).Strs("keys", metaData.Unused).Msg("failed to load config due to unknown keys")

		return fmt.Errorf("%w: unknown keys %v", zerr.ErrBadConfig, metaData.Unused)
	}

	return nil
}

func metadataConfig(md *mapstructure.Metadata) viper.DecoderConfigOption {
	return func(c *mapstructure.DecoderConfig) {
		c.Metadata = md
	}
}

func applyDefaultValues(config *Config) {
	if config.Log == nil {
		config.Log = &LogConfig{}
	}

	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}

	config.Format = strings.ToLower(strings.TrimSpace(config.Format))
	if config.Format == "" {
		config.Format = FormatText
	}

	config.PackageVersionIDs = common.RemoveEmpty(config.PackageVersionIDs)

	// GITHUB_REPOSITORY is "<owner>/<repo>" inside a workflow run.
	if owner, repo, found := strings.Cut(os.Getenv("GITHUB_REPOSITORY"), "/"); found {
		if config.Owner == "" {
			config.Owner = owner
		}

		if config.Repo == "" {
			config.Repo = repo
		}
	}
}
