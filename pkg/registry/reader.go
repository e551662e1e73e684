package registry

import (
	"context"
	"fmt"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	zlog "github.com/pkgsweep/pkgsweep/pkg/log"
	"github.com/pkgsweep/pkgsweep/pkg/retention/types"
)

// MaxWindowSize is large enough to hold the whole version history of a package.
const MaxWindowSize = 10000

//nolint:gochecknoglobals
var getVersionsQuery = MustParseQuery(`
	query getVersions($owner: String!, $repo: String!, $package: String!, $last: Int!) {
		repository(owner: $owner, name: $repo) {
			packages(first: 1, names: [$package]) {
				edges {
					node {
						name
						versions(last: $last) {
							edges {
								node {
									id
									version
								}
							}
						}
					}
				}
			}
		}
	}`)

type versionNode struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

type getVersionsResponse struct {
	Repository *struct {
		Packages struct {
			Edges []struct {
				Node *struct {
					Name     string `json:"name"`
					Versions struct {
						Edges []struct {
							Node versionNode `json:"node"`
						} `json:"edges"`
					} `json:"versions"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"packages"`
	} `json:"repository"`
}

// WindowSize returns how many versions to request for the policy.
// The registry paginates from the oldest end, so keeping the newest needs the full history.
func WindowSize(policy types.Policy) int {
	if policy.Mode == types.KeepNewest {
		return MaxWindowSize
	}

	return policy.Count
}

// Reader fetches version windows from the registry.
//
// The returned window keeps the registry's native order: versions are listed newest first,
// and for a window smaller than the history they are the oldest versions of the package.
type Reader struct {
	client Querier
	log    zlog.Logger
}

func NewReader(client Querier, log zlog.Logger) Reader {
	return Reader{client: client, log: log}
}

func (r Reader) FetchVersionWindow(ctx context.Context, owner, repo, packageName string, policy types.Policy,
) (types.Window, error) {
	if !policy.IsActive() {
		return nil, fmt.Errorf("%w: %s", zerr.ErrInvalidPolicy, policy)
	}

	last := WindowSize(policy)

	variables := map[string]interface{}{
		"owner":   owner,
		"repo":    repo,
		"package": packageName,
		"last":    last,
	}

	result := getVersionsResponse{}

	if err := r.client.Query(ctx, getVersionsQuery, variables, &result); err != nil {
		r.log.Error().Err(err).Str("module", "registry").Str("owner", owner).Str("repository", repo).
			Str("package", packageName).Int("last", last).Msg("failed to query package versions")

		return nil, err
	}

	if result.Repository == nil || len(result.Repository.Packages.Edges) < 1 ||
		result.Repository.Packages.Edges[0].Node == nil {
		return nil, fmt.Errorf("%w: package: %s not found for owner: %s in repo: %s",
			zerr.ErrPackageNotFound, packageName, owner, repo)
	}

	edges := result.Repository.Packages.Edges[0].Node.Versions.Edges
	window := make(types.Window, 0, len(edges))

	for _, edge := range edges {
		window = append(window, types.Version{ID: edge.Node.ID, Label: edge.Node.Version})
	}

	r.log.Info().Str("module", "registry").Str("owner", owner).Str("repository", repo).
		Str("package", packageName).Int("requested", last).Int("received", len(window)).
		Msg("fetched package versions")

	return window, nil
}
