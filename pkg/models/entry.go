package models

// Kind distinguishes the two node types a tree walk can produce
type Kind string

const (
	// KindFile is a regular file
	KindFile Kind = "file"
	// KindDir is a directory
	KindDir Kind = "directory"
)

// Entry represents one file-system node on one side of a comparison.
// Entries are produced fresh per run by directory enumeration and are
// never mutated afterwards.
type Entry struct {
	// AbsolutePath is the full path on the backend
	AbsolutePath string

	// RelativePath is the slash-separated path relative to the root
	RelativePath string

	// Name is the base name of the entry
	Name string

	// Kind indicates file or directory
	Kind Kind

	// Size in bytes (zero for directories)
	Size int64
}

// IsDir reports whether the entry is a directory
func (e *Entry) IsDir() bool {
	return e.Kind == KindDir
}
