// Package workspace carries the session/workspace metadata used to turn
// diff-internal paths into display paths.
package workspace

import (
	"path/filepath"
	"strings"
)

// Metadata describes the workspace a session's diffs belong to.
type Metadata struct {
	SessionID string `json:"sessionId,omitempty"`
	Root      string `json:"root,omitempty"` // Workspace root directory; empty when unknown
}

// DisplayMode selects how resolved paths are presented.
type DisplayMode string

const (
	DisplayRelative DisplayMode = "relative"
	DisplayAbsolute DisplayMode = "absolute"
)

// IsValid checks if the display mode is a known value.
func (m DisplayMode) IsValid() bool {
	return m == DisplayRelative || m == DisplayAbsolute
}

// Resolve maps a diff-internal path to a display path using the workspace
// root. It never fails; unresolvable paths pass through verbatim.
func Resolve(rawPath string, md Metadata, mode DisplayMode) string {
	if rawPath == "" || md.Root == "" {
		return rawPath
	}
	root := filepath.Clean(md.Root)

	if mode == DisplayAbsolute {
		if filepath.IsAbs(rawPath) {
			return rawPath
		}
		return filepath.Join(root, rawPath)
	}

	if !filepath.IsAbs(rawPath) {
		return rawPath
	}
	rel, err := filepath.Rel(root, rawPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return rawPath
	}
	return rel
}

// Resolver adapts metadata to the parser's path resolution hook.
func Resolver(md Metadata, mode DisplayMode) func(string) string {
	return func(p string) string {
		return Resolve(p, md, mode)
	}
}
