package format

import (
	"testing"
)

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format OutputFormat
		want   bool
	}{
		{
			name:   "text format",
			format: TextFormat,
			want:   true,
		},
		{
			name:   "json format",
			format: JSONFormat,
			want:   true,
		},
		{
			name:   "invalid format",
			format: "invalid",
			want:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.format.IsValid(); got != tt.want {
				t.Errorf("OutputFormat.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	type payload struct {
		Path      string `json:"path"`
		Additions int    `json:"additions"`
	}

	tests := []struct {
		name    string
		value   any
		format  OutputFormat
		want    string
		wantErr bool
	}{
		{
			name:    "text passthrough",
			value:   "src/main.go +3 -1",
			format:  TextFormat,
			want:    "src/main.go +3 -1",
			wantErr: false,
		},
		{
			name:    "json payload",
			value:   payload{Path: "src/main.go", Additions: 3},
			format:  JSONFormat,
			want:    "{\n  \"path\": \"src/main.go\",\n  \"additions\": 3\n}",
			wantErr: false,
		},
		{
			name:    "invalid format",
			value:   "anything",
			format:  "invalid",
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Render(tt.value, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("Render() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Render() = %v, want %v", got, tt.want)
			}
		})
	}
}
