package path

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDepth is returned by ParseDepth for unknown values.
var ErrInvalidDepth = errors.New("path: invalid depth")

// Depth selects how far a scoped operation reaches below its scope folder.
type Depth int

const (
	// Simple includes only entries whose folder is exactly the scope.
	Simple Depth = iota
	// Recursive includes entries in the scope folder and every descendant.
	Recursive
)

// ParseDepth parses "simple" or "recursive" (case-insensitive).
func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return Simple, nil
	case "recursive":
		return Recursive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDepth, s)
	}
}

func (d Depth) String() string {
	switch d {
	case Simple:
		return "simple"
	case Recursive:
		return "recursive"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// InScope reports whether an entry stored in folder is visible to an operation
// bounded by depth and scope.
func InScope(depth Depth, scope, folder FolderPath) bool {
	if depth == Recursive {
		return scope.Contains(folder)
	}
	return scope.Equal(folder)
}

// MarshalText renders the depth with String.
func (d Depth) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
