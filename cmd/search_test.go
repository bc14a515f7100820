package cmd

import (
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/spotkit/spotkit/pkg/spotify"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "A Very Long Artist Name",
			width:    10,
			expected: "A Very ...",
		},
		{
			name:     "width smaller than ellipsis",
			input:    "Hello",
			width:    2,
			expected: "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padToWidth(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
			if tt.width > 0 {
				if w := runewidth.StringWidth(got); w != tt.width {
					t.Errorf("result width = %d, want %d", w, tt.width)
				}
			}
		})
	}
}

func TestPadToWidth_Unicode(t *testing.T) {
	// CJK characters occupy two display columns each
	got := padToWidth("東京事変", 10)
	if w := runewidth.StringWidth(got); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
}

func TestFormatArtist(t *testing.T) {
	artist := &spotify.Artist{
		ID:         "a1",
		Name:       "Radiohead",
		Popularity: 79,
		Genres:     []string{"art rock"},
		Followers:  spotify.Followers{Total: 7625607},
	}

	tests := []struct {
		name     string
		template string
		expected string
		wantErr  bool
	}{
		{
			name:     "name only",
			template: "{{.Name}}",
			expected: "Radiohead",
		},
		{
			name:     "name with followers",
			template: "{{.Name}} ({{.Followers.Total}} followers)",
			expected: "Radiohead (7625607 followers)",
		},
		{
			name:     "invalid template",
			template: "{{.Name",
			wantErr:  true,
		},
		{
			name:     "unknown field",
			template: "{{.Nope}}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatArtist(artist, tt.template)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("formatArtist failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("formatArtist = %q, want %q", got, tt.expected)
			}
		})
	}
}
