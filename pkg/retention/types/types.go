package types

import (
	"context"
	"fmt"
)

// LatestTag is the floating label pointing at the current release, it is never deleted.
const LatestTag = "latest"

type Mode int

const (
	ModeNone Mode = iota
	DeleteOldest
	KeepNewest
)

func (m Mode) String() string {
	switch m {
	case DeleteOldest:
		return "deleteOldest"
	case KeepNewest:
		return "keepNewest"
	default:
		return "none"
	}
}

type Policy struct {
	Mode  Mode
	Count int
}

func (p Policy) IsActive() bool {
	return p.Mode != ModeNone && p.Count > 0
}

func (p Policy) String() string {
	return fmt.Sprintf("%s:%d", p.Mode, p.Count)
}

type Version struct {
	ID    string `json:"id"    yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Window holds versions as returned by one registry query, newest first.
type Window []Version

type Rule interface {
	Name() string
	Perform(versions []Version) []Version
}

// Executor removes the selected versions, oldest first.
type Executor interface {
	Delete(ctx context.Context, versions []Version) error
}
