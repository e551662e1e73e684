package client

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	"github.com/pkgsweep/pkgsweep/pkg/api/config"
	"github.com/pkgsweep/pkgsweep/pkg/common"
	zlog "github.com/pkgsweep/pkgsweep/pkg/log"
	"github.com/pkgsweep/pkgsweep/pkg/registry"
	"github.com/pkgsweep/pkgsweep/pkg/retention"
	"github.com/pkgsweep/pkgsweep/pkg/retention/types"
)

type sweeper struct {
	conf     *config.Config
	opts     options
	out      io.Writer
	log      zlog.Logger
	auditLog *zlog.Logger
}

func newSweeper(conf *config.Config, opts options, out, errOut io.Writer) (sweeper, error) {
	runID := uuid.New().String()

	var logger zlog.Logger

	if conf.Log.Output == "" {
		logger = zlog.NewLoggerWithWriter(conf.Log.Level, errOut)
	} else {
		logger = zlog.NewLogger(conf.Log.Level, conf.Log.Output)
	}

	logger = zlog.Logger{Logger: logger.With().Str("run-id", runID).Logger()}

	var auditLog *zlog.Logger

	if conf.Log.Audit != "" {
		var err error

		auditLog, err = zlog.NewAuditLogger(conf.Log.Level, conf.Log.Audit)
		if err != nil {
			err = fmt.Errorf("%w: cannot open audit log %q: %w", zerr.ErrBadConfig, conf.Log.Audit, err)
			logger.Error().Err(err).Msg("failed to create audit logger")

			return sweeper{}, err
		}

		auditLog.Logger = auditLog.With().Str("run-id", runID).Logger()
	}

	return sweeper{conf: conf, opts: opts, out: out, log: logger, auditLog: auditLog}, nil
}

func (s sweeper) run(ctx context.Context) error {
	if err := s.sweep(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to sweep package versions")

		return err
	}

	return nil
}

func (s sweeper) sweep(ctx context.Context) error {
	s.log.Debug().Interface("config", s.conf.Sanitize()).Msg("configuration settings")

	var (
		candidates []types.Version
		err        error
	)

	switch {
	case s.conf.HasExplicitVersionIDs():
		candidates = s.explicitCandidates()
	case s.conf.HasOldestVersionQueryInfo():
		candidates, err = s.selectCandidates(ctx)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: owner, repo, package-name, token and a positive %s or %s are required",
			zerr.ErrInvalidPolicy, NumToDeleteFlag, NumToKeepFlag)
	}

	if err := s.execute(ctx, candidates); err != nil {
		return err
	}

	return printCandidates(s.out, s.conf.Format, candidates)
}

func (s sweeper) selectCandidates(ctx context.Context) ([]types.Version, error) {
	if s.conf.NumOldVersionsToDelete > 0 && s.conf.NumOldVersionsToKeep > 0 {
		s.log.Warn().Int(NumToDeleteFlag, s.conf.NumOldVersionsToDelete).Int(NumToKeepFlag, s.conf.NumOldVersionsToKeep).
			Msg("both version counts set, keeping the newest versions takes precedence")
	}

	policy, err := retention.NewPolicy(s.conf.NumOldVersionsToDelete, s.conf.NumOldVersionsToKeep)
	if err != nil {
		return nil, err
	}

	client, err := registry.NewClient(s.conf.Token,
		registry.WithHTTPClient(s.opts.httpClient),
		registry.WithAPIURL(s.conf.APIURL),
		registry.WithGraphQLURL(s.conf.GraphQLURL),
		registry.WithLogger(s.log),
	)
	if err != nil {
		return nil, err
	}

	reader := registry.NewReader(client, s.log)

	window, err := reader.FetchVersionWindow(ctx, s.conf.Owner, s.conf.Repo, s.conf.PackageName, policy)
	if err != nil {
		return nil, err
	}

	policyManager := retention.NewPolicyManager(policy, s.dryRun(), s.log, s.auditLog)

	return policyManager.GetCandidates(window), nil
}

// explicitCandidates turns the configured ids into candidates, their labels are unknown.
func (s sweeper) explicitCandidates() []types.Version {
	candidates := make([]types.Version, 0, len(s.conf.PackageVersionIDs))

	for _, id := range s.conf.PackageVersionIDs {
		candidates = append(candidates, types.Version{ID: id})

		s.logExplicit(id, &s.log)

		if s.auditLog != nil {
			s.logExplicit(id, s.auditLog)
		}
	}

	return candidates
}

func (s sweeper) logExplicit(id string, log *zlog.Logger) {
	log.Info().Str("module", "retention").Bool("dry-run", s.dryRun()).Str("id", id).
		Str("decision", "delete").Str("reason", "requested by id").Msg("applied policy")
}

func (s sweeper) dryRun() bool {
	return s.conf.DryRun || s.opts.executor == nil
}

func (s sweeper) execute(ctx context.Context, candidates []types.Version) error {
	if len(candidates) == 0 {
		s.log.Info().Msg("no package versions to delete")

		return nil
	}

	if s.opts.executor == nil {
		s.log.Info().Int("count", len(candidates)).Msg("no deletion executor configured, only reporting package versions")

		return nil
	}

	if s.conf.DryRun {
		s.log.Info().Int("count", len(candidates)).Msg("dry run, skipping deletion of package versions")

		return nil
	}

	if common.IsContextDone(ctx) {
		s.log.Warn().Int("count", len(candidates)).Msg("interrupted before deleting package versions")

		return ctx.Err()
	}

	if err := s.opts.executor.Delete(ctx, candidates); err != nil {
		s.log.Error().Err(err).Int("count", len(candidates)).Msg("failed to delete package versions")

		return fmt.Errorf("%w: %w", zerr.ErrDeleteFailed, err)
	}

	s.log.Info().Int("count", len(candidates)).Msg("deleted package versions")

	return nil
}
