// Package diff turns raw unified-diff text and old/new text pairs into
// structured records for session file viewers: per-file change records,
// line-level hunks with configurable context, intra-line change tokens,
// and addition/deletion counts.
//
// Every function in this package is total over arbitrary string input.
// Malformed diff text degrades to best-effort output instead of an error;
// callers must tolerate files with a placeholder path or empty reconstructed
// content.
package diff

// LineType represents the kind of line in a diff.
type LineType int

const (
	LineContext LineType = iota // Line exists in both files
	LineAdded                   // Line added in the new file
	LineRemoved                 // Line removed from the old file
)

// FileKind classifies how a file changed within a multi-file diff.
type FileKind string

const (
	FileAdded    FileKind = "added"
	FileDeleted  FileKind = "deleted"
	FileModified FileKind = "modified"
)

// Token is a sub-line span used for intra-line highlighting. Concatenating
// the Values of a line's tokens in order reproduces the line content exactly.
type Token struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// DiffLine represents a single line in a diff.
type DiffLine struct {
	Kind      LineType `json:"kind"`
	Content   string   `json:"content"`                // Content without the leading diff marker
	OldLineNo int      `json:"oldLineNo,omitempty"`    // Line number in the old file (0 for added lines)
	NewLineNo int      `json:"newLineNo,omitempty"`    // Line number in the new file (0 for removed lines)
	Tokens    []Token  `json:"tokens,omitempty"`       // Intra-line spans; nil unless the line was paired with its counterpart
}

// Hunk is a contiguous region of changed and context lines. Starts are
// 1-based per unified-diff convention; a side with no lines uses start 0.
type Hunk struct {
	OldStart int        `json:"oldStart"`
	OldLines int        `json:"oldLines"`
	NewStart int        `json:"newStart"`
	NewLines int        `json:"newLines"`
	Lines    []DiffLine `json:"lines"`
}

// DiffFile is one file's change within a multi-file diff.
type DiffFile struct {
	ID      string   `json:"id"`
	Path    string   `json:"path"`
	Kind    FileKind `json:"kind"`
	RawDiff string   `json:"rawDiff"` // Original unified-diff text for this file, verbatim
	OldText string   `json:"oldText"` // Full file content before the change, reconstructed from hunks
	NewText string   `json:"newText"` // Full file content after the change, reconstructed from hunks
}

// Stats holds addition/deletion counts for badges and summaries.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}
