package retention

import (
	"fmt"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	zlog "github.com/pkgsweep/pkgsweep/pkg/log"
	"github.com/pkgsweep/pkgsweep/pkg/retention/types"
)

const (
	// reasons for keeping a version.
	floatingTag          = "floating tag is never deleted"
	outsideWindowFormat  = "outside %s window"
	retainedStrFormat    = "retained by %s policy"
	selectedStrFormat    = "selected by %s policy"
	noActivePolicyReason = "no active retention policy"
)

// NewPolicy picks the retention mode, keeping takes precedence over deleting when both counts are positive.
func NewPolicy(numToDelete, numToKeep int) (types.Policy, error) {
	if numToKeep > 0 {
		return types.Policy{Mode: types.KeepNewest, Count: numToKeep}, nil
	}

	if numToDelete > 0 {
		return types.Policy{Mode: types.DeleteOldest, Count: numToDelete}, nil
	}

	return types.Policy{}, fmt.Errorf("%w: delete=%d keep=%d", zerr.ErrInvalidPolicy, numToDelete, numToKeep)
}

// GetRules returns the ordered rules applied to a newest first window for the given policy.
func GetRules(policy types.Policy) []types.Rule {
	if !policy.IsActive() {
		return nil
	}

	rules := make([]types.Rule, 0)

	if policy.Mode == types.KeepNewest {
		rules = append(rules, NewKeepNewest(policy.Count))
	}

	rules = append(rules, NewSkipTag(types.LatestTag), NewChronological())

	if policy.Mode == types.DeleteOldest {
		rules = append(rules, NewDeleteOldest(policy.Count))
	}

	return rules
}

// SelectForDeletion returns the versions of a newest first window to delete, oldest first.
func SelectForDeletion(window types.Window, policy types.Policy) []types.Version {
	rules := GetRules(policy)
	if len(rules) == 0 {
		return []types.Version{}
	}

	candidates := []types.Version(window)

	for _, rule := range rules {
		candidates = rule.Perform(candidates)
	}

	return candidates
}

type PolicyManager struct {
	policy   types.Policy
	dryRun   bool
	log      zlog.Logger
	auditLog *zlog.Logger
}

func NewPolicyManager(policy types.Policy, dryRun bool, log zlog.Logger, auditLog *zlog.Logger) PolicyManager {
	return PolicyManager{
		policy:   policy,
		dryRun:   dryRun,
		log:      log,
		auditLog: auditLog,
	}
}

func (p PolicyManager) Policy() types.Policy {
	return p.policy
}

// GetCandidates selects the versions to delete and logs the decision taken for every version of the window.
func (p PolicyManager) GetCandidates(window types.Window) []types.Version {
	candidates := SelectForDeletion(window, p.policy)

	selected := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		selected[candidate.ID] = struct{}{}
	}

	for idx, version := range window {
		if _, ok := selected[version.ID]; ok {
			continue
		}

		p.logAction("keep", p.keepReason(idx, version), version, &p.log)
	}

	reason := fmt.Sprintf(selectedStrFormat, p.policy)

	for _, candidate := range candidates {
		p.logAction("delete", reason, candidate, &p.log)

		if p.auditLog != nil {
			p.logAction("delete", reason, candidate, p.auditLog)
		}
	}

	return candidates
}

func (p PolicyManager) keepReason(idx int, version types.Version) string {
	switch {
	case !p.policy.IsActive():
		return noActivePolicyReason
	case version.Label == types.LatestTag:
		return floatingTag
	case p.policy.Mode == types.KeepNewest && idx < p.policy.Count:
		return fmt.Sprintf(retainedStrFormat, p.policy)
	default:
		return fmt.Sprintf(outsideWindowFormat, p.policy)
	}
}

func (p PolicyManager) logAction(decision, reason string, version types.Version, log *zlog.Logger) {
	log.Info().Str("module", "retention").
		Bool("dry-run", p.dryRun).
		Str("id", version.ID).
		Str("version", version.Label).
		Str("decision", decision).
		Str("reason", reason).Msg("applied policy")
}
