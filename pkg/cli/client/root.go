package client

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pkgsweep/pkgsweep/pkg/api/config"
	"github.com/pkgsweep/pkgsweep/pkg/retention/types"
)

type Option func(*options)

type options struct {
	httpClient *http.Client
	executor   types.Executor
}

// WithHTTPClient sets the transport used to reach the registry.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = httpClient
	}
}

// WithExecutor hands the selected versions over to executor unless running dry.
func WithExecutor(executor types.Executor) Option {
	return func(opts *options) {
		opts.executor = executor
	}
}

// "pkgsweep" - package version retention.
func NewCliRootCmd(opts ...Option) *cobra.Command {
	showVersion := false
	configPath := ""

	cmdOpts := options{}
	for _, opt := range opts {
		opt(&cmdOpts)
	}

	rootCmd := &cobra.Command{
		Use:   "pkgsweep",
		Short: "`pkgsweep` selects old package versions for deletion",
		Long: "`pkgsweep` queries a package registry for the versions of a package and selects, " +
			"oldest first, the ones a retention policy says should be deleted",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				log.Info().Str("commit", config.Commit).Str("binary-type", config.BinaryType).
					Str("go version", config.GoVersion).Msg("version")

				return nil
			}

			conf := config.New()

			if err := config.LoadConfiguration(conf, cmd.Flags(), configPath); err != nil {
				return err
			}

			sweeper, err := newSweeper(conf, cmdOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return sweeper.run(cmd.Context())
		},
	}

	rootCmd.SilenceUsage = true

	flags := rootCmd.Flags()
	flags.BoolVarP(&showVersion, VersionFlag, "v", false, "show the version and exit")
	flags.StringVarP(&configPath, ConfigFlag, "c", "", "optional config file, any format viper supports")
	flags.String(OwnerFlag, "", "owner of the repository hosting the package")
	flags.String(RepoFlag, "", "name of the repository hosting the package")
	flags.String(PackageNameFlag, "", "name of the package")
	flags.StringSlice(PackageVersionIDsFlag, []string{}, "ids of the versions to delete, skips the version query")
	flags.Int(NumToDeleteFlag, 0, "number of oldest versions to delete")
	flags.Int(NumToKeepFlag, 0, "number of newest versions to keep, takes precedence over "+NumToDeleteFlag)
	flags.String(TokenFlag, "", "token used to authenticate against the registry")
	flags.String(APIURLFlag, "", "GitHub Enterprise Server url, empty for github.com")
	flags.String(GraphQLURLFlag, "", "GraphQL endpoint, absolute or relative to the api url")
	flags.Bool(DryRunFlag, false, "only report the selected versions")
	flags.StringP(OutputFormatFlag, "f", config.FormatText,
		"output format of the selected versions: "+strings.Join(config.OutputFormats(), ", "))
	flags.String(LogLevelFlag, config.DefaultLogLevel, "log level")
	flags.String(LogOutputFlag, "", "log file, stderr when empty")
	flags.String(AuditLogFlag, "", "audit log file receiving one entry per deleted version")

	return rootCmd
}
