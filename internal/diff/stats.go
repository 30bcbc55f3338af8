package diff

import "strings"

// ComputeStats counts added and removed lines between two text blobs. The
// counts agree with the add/remove lines produced by Unified for the same
// pair, at any context width.
func ComputeStats(oldText, newText string) Stats {
	var s Stats
	for _, h := range Unified(oldText, newText, 0) {
		for _, l := range h.Lines {
			switch l.Kind {
			case LineAdded:
				s.Additions++
			case LineRemoved:
				s.Deletions++
			}
		}
	}
	return s
}

// CountRawStats counts additions and deletions by scanning raw unified-diff
// text, trusting the diff's own hunks rather than recomputing them. File
// header lines (+++/---) are excluded.
func CountRawStats(rawDiff string) Stats {
	var s Stats
	for _, line := range strings.Split(rawDiff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			s.Additions++
		case strings.HasPrefix(line, "-"):
			s.Deletions++
		}
	}
	return s
}
