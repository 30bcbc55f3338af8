package diff

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// placeholderPath labels a file segment whose path could not be determined.
const placeholderPath = "Diff"

var (
	gitHeaderRe  = regexp.MustCompile(`^diff --git a/(.*) b/(.*)$`)
	pathCollator = collate.New(language.Und)
)

// PathResolver maps a diff-internal path to a display path. See
// workspace.Resolver for the session-metadata-backed implementation.
type PathResolver func(string) string

// fileBuilder accumulates one file segment while scanning a multi-file diff.
type fileBuilder struct {
	path        string
	rawLines    []string
	oldLines    []string
	newLines    []string
	newFile     bool
	deletedFile bool
	renamed     bool
	inHunk      bool
}

// ParseMultiFile splits a raw multi-file unified diff into per-file records.
// Files are deduplicated by ID (first occurrence wins) and sorted by display
// path using locale-aware comparison. resolve may be nil.
//
// The parser never fails: a segment with no recognizable path becomes a
// placeholder entry, and a segment with no hunks keeps its RawDiff but has
// empty reconstructed content.
func ParseMultiFile(diffText string, resolve PathResolver) []DiffFile {
	lines := strings.Split(diffText, "\n")

	var files []DiffFile
	var cur *fileBuilder

	finalize := func() {
		if cur == nil {
			return
		}
		files = append(files, cur.build(resolve))
		cur = nil
	}

	for _, line := range lines {
		if m := gitHeaderRe.FindStringSubmatch(line); m != nil {
			finalize()
			cur = &fileBuilder{}
			// Prefer the post-image side of the header.
			if m[2] != "" {
				cur.path = m[2]
			} else {
				cur.path = m[1]
			}
			cur.rawLines = append(cur.rawLines, line)
			continue
		}

		// Diffs without a git envelope start directly with ---/+++ headers.
		if cur == nil {
			if line == "" {
				continue
			}
			cur = &fileBuilder{}
		}

		cur.rawLines = append(cur.rawLines, line)

		if strings.HasPrefix(line, "+++ ") {
			p := strings.TrimPrefix(line, "+++ ")
			p = strings.TrimPrefix(p, "b/")
			// /dev/null marks a deleted file; keep the header-derived path.
			if p != "/dev/null" {
				cur.path = p
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "new file mode"):
			cur.newFile = true
			continue
		case strings.HasPrefix(line, "deleted file mode"):
			cur.deletedFile = true
			continue
		case strings.HasPrefix(line, "rename from"), strings.HasPrefix(line, "rename to"):
			cur.renamed = true
			continue
		}

		if strings.HasPrefix(line, "@@") {
			cur.inHunk = true
			continue
		}

		if !cur.inHunk {
			continue
		}

		switch {
		case strings.HasPrefix(line, "\\ No newline at end of file"):
			// Marker only; contributes to neither side.
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			cur.newLines = append(cur.newLines, line[1:])
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			cur.oldLines = append(cur.oldLines, line[1:])
		case strings.HasPrefix(line, " "):
			cur.oldLines = append(cur.oldLines, line[1:])
			cur.newLines = append(cur.newLines, line[1:])
		default:
			// Anything else inside a hunk is ignored without altering state.
		}
	}
	finalize()

	// Defensive against malformed input repeating a file segment.
	seen := make(map[string]bool, len(files))
	deduped := files[:0]
	for _, f := range files {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return pathCollator.CompareString(deduped[i].Path, deduped[j].Path) < 0
	})

	return deduped
}

func (b *fileBuilder) build(resolve PathResolver) DiffFile {
	kind := FileModified
	switch {
	case b.newFile:
		kind = FileAdded
	case b.deletedFile:
		kind = FileDeleted
	}

	path := b.path
	if path != "" && resolve != nil {
		path = resolve(path)
	}
	if path == "" {
		path = placeholderPath
	}

	return DiffFile{
		ID:      path,
		Path:    path,
		Kind:    kind,
		RawDiff: strings.Join(b.rawLines, "\n"),
		OldText: strings.Join(b.oldLines, "\n"),
		NewText: strings.Join(b.newLines, "\n"),
	}
}
