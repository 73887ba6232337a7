package reconcile

import (
	"errors"
	"fmt"

	"pathsync/core/path"
)

// ErrNilBackend is returned by New when either side is missing.
var ErrNilBackend = errors.New("reconcile: nil backend")

// ActionType represents the outcome of reconciling a single path.
type ActionType string

const (
	// ActionNone means both sides already hold equal items.
	ActionNone ActionType = "none"
	// ActionOverwriteLocal replaces a differing local item with the remote one.
	ActionOverwriteLocal ActionType = "overwrite_local"
	// ActionPushRemote copies a local-only item to remote.
	ActionPushRemote ActionType = "push_remote"
	// ActionPullLocal copies a remote-only item to local.
	ActionPullLocal ActionType = "pull_local"
	// ActionVanished means the path was absent on both sides when re-read.
	ActionVanished ActionType = "vanished"
)

// Writes reports whether the action modifies a backend.
func (t ActionType) Writes() bool {
	switch t {
	case ActionOverwriteLocal, ActionPushRemote, ActionPullLocal:
		return true
	default:
		return false
	}
}

// Action is the decision taken for one path.
type Action struct {
	// Type specifies what was (or would be) done.
	Type ActionType `json:"type"`

	// Path is the reconciled entry.
	Path path.FilePath `json:"path"`

	// Reason explains the decision.
	Reason string `json:"reason"`
}

// Summary provides aggregate counts for a pass.
type Summary struct {
	// Total is the number of reconciled paths.
	Total int `json:"total"`

	Unchanged        int `json:"unchanged"`
	PushedRemote     int `json:"pushed_remote"`
	PulledLocal      int `json:"pulled_local"`
	OverwrittenLocal int `json:"overwritten_local"`
	Vanished         int `json:"vanished"`
}

// Writes returns the number of backend writes the summarized actions imply.
func (s Summary) Writes() int {
	return s.PushedRemote + s.PulledLocal + s.OverwrittenLocal
}

func (s *Summary) add(t ActionType) {
	s.Total++
	switch t {
	case ActionNone:
		s.Unchanged++
	case ActionPushRemote:
		s.PushedRemote++
	case ActionPullLocal:
		s.PulledLocal++
	case ActionOverwriteLocal:
		s.OverwrittenLocal++
	case ActionVanished:
		s.Vanished++
	}
}

// Report describes a synchronization pass.
type Report struct {
	// Actions lists every path reconciled so far, ordered by path.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts over Actions.
	Summary Summary `json:"summary"`

	// Complete is false when the pass was aborted.
	Complete bool `json:"complete"`

	// DryRun is true when no writes were performed.
	DryRun bool `json:"dry_run"`
}

func (r *Report) record(a Action) {
	r.Actions = append(r.Actions, a)
	r.Summary.add(a.Type)
}

// Plan is the outcome of a dry-run pass.
type Plan struct {
	// Depth and Scope bound the planned pass.
	Depth path.Depth      `json:"depth"`
	Scope path.FolderPath `json:"scope"`

	// Actions contains the decision for every candidate path.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Side names one of the two synchronized backends.
type Side string

const (
	SideLocal  Side = "local"
	SideRemote Side = "remote"
)

// SyncError reports the backend call that aborted a pass.
type SyncError struct {
	// Op is the failing backend operation: "list", "get" or "set".
	Op string

	// Side is the backend the call went to.
	Side Side

	// Path is the entry involved; zero for list calls.
	Path path.FilePath

	// Scope is the listed folder for list calls.
	Scope path.FolderPath

	// Err is the backend's error.
	Err error
}

func (e *SyncError) Error() string {
	target := e.Path.String()
	if e.Op == "list" {
		target = e.Scope.String()
	}
	return fmt.Sprintf("reconcile: %s %s %s: %v", e.Op, e.Side, target, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
