package retention

import (
	"fmt"

	"github.com/pkgsweep/pkgsweep/pkg/retention/types"
)

const (
	// rules name.
	keepNewestName    = "keepNewest"
	deleteOldestName  = "deleteOldest"
	skipTagName       = "skipTag"
	chronologicalName = "chronological"
)

// rules implementation, every rule returns a new slice and leaves its input untouched

// keepNewest drops the count most recent versions of a newest first window.
type keepNewest struct {
	count int
}

func NewKeepNewest(count int) keepNewest {
	return keepNewest{count: count}
}

func (kn keepNewest) Name() string {
	return fmt.Sprintf("%s:%d", keepNewestName, kn.count)
}

func (kn keepNewest) Perform(versions []types.Version) []types.Version {
	if len(versions) <= kn.count {
		return []types.Version{}
	}

	return append([]types.Version{}, versions[kn.count:]...)
}

type skipTag struct {
	tag string
}

func NewSkipTag(tag string) skipTag {
	return skipTag{tag: tag}
}

func (st skipTag) Name() string {
	return fmt.Sprintf("%s:%s", skipTagName, st.tag)
}

func (st skipTag) Perform(versions []types.Version) []types.Version {
	filtered := make([]types.Version, 0, len(versions))

	for _, version := range versions {
		if version.Label != st.tag {
			filtered = append(filtered, version)
		}
	}

	return filtered
}

// chronological turns a newest first sequence into an oldest first one.
type chronological struct{}

func NewChronological() chronological {
	return chronological{}
}

func (chronological) Name() string {
	return chronologicalName
}

func (chronological) Perform(versions []types.Version) []types.Version {
	reversed := make([]types.Version, 0, len(versions))

	for idx := len(versions) - 1; idx >= 0; idx-- {
		reversed = append(reversed, versions[idx])
	}

	return reversed
}

// deleteOldest takes the count first versions of an oldest first sequence.
type deleteOldest struct {
	count int
}

func NewDeleteOldest(count int) deleteOldest {
	return deleteOldest{count: count}
}

func (do deleteOldest) Name() string {
	return fmt.Sprintf("%s:%d", deleteOldestName, do.count)
}

func (do deleteOldest) Perform(versions []types.Version) []types.Version {
	upper := do.count
	if do.count > len(versions) {
		upper = len(versions)
	}

	return append([]types.Version{}, versions[:upper]...)
}
