// Package path provides hierarchical addressing for synchronized entries.
//
// A FolderPath is an ordered sequence of segment names; the empty sequence is the
// root. A FilePath is a FolderPath plus a single terminal file name. Both are
// immutable value types compared structurally, segment by segment.
//
// # Scope
//
// Listing and synchronization calls are bounded by a scope folder and a Depth:
//   - Simple: entries whose folder is exactly the scope.
//   - Recursive: entries whose folder is the scope or any descendant of it.
//
// InScope implements that predicate so every backend applies the same rule.
//
// # Usage
//
//	folder := path.NewFolderPath("folder")
//	file := path.NewFilePath(folder, "item1")
//
//	p, err := path.FilePathFromSegments([]string{"folder", "item2"})
//	if errors.Is(err, path.ErrMissingFileName) {
//	    // no segments were supplied
//	}
//
//	path.Root().Contains(folder) // true
package path
