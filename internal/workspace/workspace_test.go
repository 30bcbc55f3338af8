package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	md := Metadata{SessionID: "ses_123", Root: "/home/dev/project"}

	tests := []struct {
		name string
		raw  string
		md   Metadata
		mode DisplayMode
		want string
	}{
		{
			name: "absolute inside root becomes relative",
			raw:  "/home/dev/project/src/main.go",
			md:   md,
			mode: DisplayRelative,
			want: "src/main.go",
		},
		{
			name: "absolute outside root passes through",
			raw:  "/etc/hosts",
			md:   md,
			mode: DisplayRelative,
			want: "/etc/hosts",
		},
		{
			name: "relative stays relative",
			raw:  "src/main.go",
			md:   md,
			mode: DisplayRelative,
			want: "src/main.go",
		},
		{
			name: "relative joined to root in absolute mode",
			raw:  "src/main.go",
			md:   md,
			mode: DisplayAbsolute,
			want: "/home/dev/project/src/main.go",
		},
		{
			name: "absolute stays absolute in absolute mode",
			raw:  "/home/dev/project/src/main.go",
			md:   md,
			mode: DisplayAbsolute,
			want: "/home/dev/project/src/main.go",
		},
		{
			name: "no root passes through",
			raw:  "/home/dev/project/src/main.go",
			md:   Metadata{SessionID: "ses_123"},
			mode: DisplayRelative,
			want: "/home/dev/project/src/main.go",
		},
		{
			name: "empty path passes through",
			raw:  "",
			md:   md,
			mode: DisplayRelative,
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Resolve(tt.raw, tt.md, tt.mode))
		})
	}
}

func TestDisplayMode_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, DisplayRelative.IsValid())
	assert.True(t, DisplayAbsolute.IsValid())
	assert.False(t, DisplayMode("sideways").IsValid())
}

func TestResolver(t *testing.T) {
	t.Parallel()

	resolve := Resolver(Metadata{Root: "/ws"}, DisplayRelative)
	assert.Equal(t, "a.txt", resolve("/ws/a.txt"))
}
