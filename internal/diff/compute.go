package diff

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/aymanbagabas/go-udiff/myers"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContextLines is the number of unchanged lines shown around a change.
const DefaultContextLines = 3

// Unified computes a line-level diff between two text blobs, grouped into
// hunks with contextLines lines of surrounding context. Hunks closer than
// twice the context merge into one. Changed line pairs carry intra-line
// tokens. Identical inputs yield no hunks.
func Unified(oldText, newText string, contextLines int) []Hunk {
	if oldText == newText {
		return nil
	}
	if contextLines < 0 {
		contextLines = 0
	}

	edits := myers.ComputeEdits(oldText, newText)
	ud, err := udiff.ToUnifiedDiff("old", "new", oldText, edits, contextLines)
	if err != nil {
		// Edits computed from the inputs themselves always apply cleanly.
		return nil
	}

	hunks := make([]Hunk, 0, len(ud.Hunks))
	for _, uh := range ud.Hunks {
		h := Hunk{OldStart: uh.FromLine, NewStart: uh.ToLine}
		oldNo, newNo := uh.FromLine, uh.ToLine

		for _, ul := range uh.Lines {
			content := strings.TrimSuffix(ul.Content, "\n")
			switch ul.Kind {
			case udiff.Equal:
				h.Lines = append(h.Lines, DiffLine{
					Kind:      LineContext,
					Content:   content,
					OldLineNo: oldNo,
					NewLineNo: newNo,
				})
				oldNo++
				newNo++
				h.OldLines++
				h.NewLines++
			case udiff.Delete:
				h.Lines = append(h.Lines, DiffLine{
					Kind:      LineRemoved,
					Content:   content,
					OldLineNo: oldNo,
				})
				oldNo++
				h.OldLines++
			case udiff.Insert:
				h.Lines = append(h.Lines, DiffLine{
					Kind:      LineAdded,
					Content:   content,
					NewLineNo: newNo,
				})
				newNo++
				h.NewLines++
			}
		}

		// Empty-range convention used by git for created/deleted files.
		if h.OldLines == 0 {
			h.OldStart = 0
		}
		if h.NewLines == 0 {
			h.NewStart = 0
		}

		attachTokens(&h)
		hunks = append(hunks, h)
	}

	return hunks
}

// FormatUnified serializes the diff of a text pair back to conventional
// unified-diff text with ---/+++ headers.
func FormatUnified(fromPath, toPath, oldText, newText string, contextLines int) string {
	if contextLines < 0 {
		contextLines = 0
	}
	edits := myers.ComputeEdits(oldText, newText)
	out, err := udiff.ToUnified(fromPath, toPath, oldText, edits, contextLines)
	if err != nil {
		return ""
	}
	return out
}

// attachTokens pairs each run of removed lines with the run of added lines
// immediately following it, 1:1 in order, and computes intra-line tokens for
// each pair. Leftover lines in the longer run keep nil tokens.
func attachTokens(h *Hunk) {
	i := 0
	for i < len(h.Lines) {
		if h.Lines[i].Kind != LineRemoved {
			i++
			continue
		}
		j := i
		for j < len(h.Lines) && h.Lines[j].Kind == LineRemoved {
			j++
		}
		k := j
		for k < len(h.Lines) && h.Lines[k].Kind == LineAdded {
			k++
		}
		n := j - i
		if k-j < n {
			n = k - j
		}
		for p := 0; p < n; p++ {
			removed := &h.Lines[i+p]
			added := &h.Lines[j+p]
			if removed.Content == added.Content {
				continue
			}
			removed.Tokens, added.Tokens = tokenizePair(removed.Content, added.Content)
		}
		i = k
	}
}

// tokenizePair computes character-level differences between a removed line
// and the added line replacing it. Each side's tokens concatenate back to
// that side's content.
func tokenizePair(oldLine, newLine string) (oldTokens, newTokens []Token) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCleanupMerge(diffs)
	diffs = dmp.DiffCleanupEfficiency(diffs)

	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldTokens = append(oldTokens, Token{Value: d.Text})
			newTokens = append(newTokens, Token{Value: d.Text})
		case diffmatchpatch.DiffDelete:
			oldTokens = append(oldTokens, Token{Value: d.Text, Removed: true})
		case diffmatchpatch.DiffInsert:
			newTokens = append(newTokens, Token{Value: d.Text, Added: true})
		}
	}

	return splitLeadingWhitespace(oldTokens), splitLeadingWhitespace(newTokens)
}

// splitLeadingWhitespace carves indentation off the first token so renderers
// can visualize whitespace changes distinctly from the rest of the line.
func splitLeadingWhitespace(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	first := tokens[0]
	ws := 0
	for ws < len(first.Value) && (first.Value[ws] == ' ' || first.Value[ws] == '\t') {
		ws++
	}
	if ws == 0 || ws == len(first.Value) {
		return tokens
	}
	out := make([]Token, 0, len(tokens)+1)
	out = append(out,
		Token{Value: first.Value[:ws], Added: first.Added, Removed: first.Removed},
		Token{Value: first.Value[ws:], Added: first.Added, Removed: first.Removed},
	)
	return append(out, tokens[1:]...)
}
