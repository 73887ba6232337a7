package path

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrMissingFileName is returned when a FilePath is built from zero segments.
var ErrMissingFileName = errors.New("path: missing file name")

// FolderPath is a position in the hierarchical namespace.
// The zero value is the root.
type FolderPath struct {
	segments []string
}

// Root returns the empty-segment path.
func Root() FolderPath {
	return FolderPath{}
}

// NewFolderPath creates a folder path from the given segments.
// The input slice is copied.
func NewFolderPath(segments ...string) FolderPath {
	if len(segments) == 0 {
		return FolderPath{}
	}
	return FolderPath{segments: slices.Clone(segments)}
}

// ParseFolderPath splits a slash separated string into a folder path.
// Empty segments are ignored, so "", "/" and "//" all yield the root.
func ParseFolderPath(s string) FolderPath {
	return NewFolderPath(splitSlash(s)...)
}

// Segments returns a copy of the folder segments.
func (p FolderPath) Segments() []string {
	return slices.Clone(p.segments)
}

// Len returns the number of segments.
func (p FolderPath) Len() int {
	return len(p.segments)
}

// IsRoot reports whether p has no segments.
func (p FolderPath) IsRoot() bool {
	return len(p.segments) == 0
}

// Child returns the folder path extended by one segment.
func (p FolderPath) Child(name string) FolderPath {
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	return FolderPath{segments: append(segments, name)}
}

// Parent returns the containing folder. The parent of the root is the root.
func (p FolderPath) Parent() FolderPath {
	if len(p.segments) <= 1 {
		return FolderPath{}
	}
	return FolderPath{segments: slices.Clone(p.segments[:len(p.segments)-1])}
}

// Contains reports whether p is a structural prefix of other.
// A path contains itself and all of its descendants; the relation is not symmetric.
func (p FolderPath) Contains(other FolderPath) bool {
	if len(p.segments) > len(other.segments) {
		return false
	}
	for i, segment := range p.segments {
		if other.segments[i] != segment {
			return false
		}
	}
	return true
}

// Equal reports whether both paths have the same segments in the same order.
func (p FolderPath) Equal(other FolderPath) bool {
	return slices.Equal(p.segments, other.segments)
}

// Compare orders folder paths segment by segment; a proper prefix sorts first.
func (p FolderPath) Compare(other FolderPath) int {
	return slices.Compare(p.segments, other.segments)
}

// Key returns an unambiguous encoding of p suitable for use as a map key.
func (p FolderPath) Key() string {
	var b strings.Builder
	for _, segment := range p.segments {
		writeKeySegment(&b, segment)
	}
	return b.String()
}

// String renders the folder as "a/b/". The root renders as "/".
func (p FolderPath) String() string {
	return strings.Join(p.segments, "/") + "/"
}

// FilePath addresses a single entry: a containing folder plus a file name.
type FilePath struct {
	folder   FolderPath
	fileName string
}

// NewFilePath creates a file path inside folder.
func NewFilePath(folder FolderPath, fileName string) FilePath {
	return FilePath{folder: folder, fileName: fileName}
}

// FilePathFromSegments splits a flat segment list into folder and file name.
// The last segment becomes the file name. Empty input fails with ErrMissingFileName.
func FilePathFromSegments(segments []string) (FilePath, error) {
	if len(segments) == 0 {
		return FilePath{}, ErrMissingFileName
	}
	last := len(segments) - 1
	return FilePath{
		folder:   NewFolderPath(segments[:last]...),
		fileName: segments[last],
	}, nil
}

// ParseFilePath splits a slash separated string into a file path.
// Empty segments are ignored; a string without any segment fails with ErrMissingFileName.
func ParseFilePath(s string) (FilePath, error) {
	return FilePathFromSegments(splitSlash(s))
}

// Folder returns the containing folder.
func (p FilePath) Folder() FolderPath {
	return p.folder
}

// FileName returns the terminal segment.
func (p FilePath) FileName() string {
	return p.fileName
}

// Segments returns the folder segments followed by the file name.
func (p FilePath) Segments() []string {
	return append(p.folder.Segments(), p.fileName)
}

// Equal reports whether both folder and file name are equal.
func (p FilePath) Equal(other FilePath) bool {
	return p.fileName == other.fileName && p.folder.Equal(other.folder)
}

// Compare orders by folder first, then by file name.
func (p FilePath) Compare(other FilePath) int {
	if c := p.folder.Compare(other.folder); c != 0 {
		return c
	}
	return strings.Compare(p.fileName, other.fileName)
}

// Key returns an unambiguous encoding of p suitable for use as a map key.
func (p FilePath) Key() string {
	var b strings.Builder
	b.WriteString(p.folder.Key())
	b.WriteByte('|')
	writeKeySegment(&b, p.fileName)
	return b.String()
}

// String renders the path as "a/b/name". A file at the root renders as "/name".
func (p FilePath) String() string {
	return p.folder.String() + p.fileName
}

// writeKeySegment length-prefixes the segment so no separator can be forged.
func writeKeySegment(b *strings.Builder, segment string) {
	b.WriteString(strconv.Itoa(len(segment)))
	b.WriteByte(':')
	b.WriteString(segment)
}

func splitSlash(s string) []string {
	var segments []string
	for _, part := range strings.Split(s, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// MarshalText renders the folder with String.
func (p FolderPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MarshalText renders the file path with String.
func (p FilePath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
