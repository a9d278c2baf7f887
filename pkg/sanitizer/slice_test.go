package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeSizes(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"trim whitespace", []string{" S ", "M", "L "}, []string{"S", "M", "L"}},
		{"remove duplicates keeping order", []string{"M", "S", "M", "L", "S"}, []string{"M", "S", "L"}},
		{"filter empty strings", []string{"S", "", "  ", "M"}, []string{"S", "M"}},
		{"case sensitive", []string{"m", "M"}, []string{"m", "M"}},
		{"empty input", []string{}, []string{}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSizes(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeSizes(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeImageURLs(t *testing.T) {
	input := []string{
		" https://Images.Unsplash.com/photo-1?w=800 ",
		"https://images.unsplash.com/photo-1?w=800",
		"",
		"HTTP://cdn.example.com/Cloak.PNG",
	}
	want := []string{
		"https://images.unsplash.com/photo-1?w=800",
		"http://cdn.example.com/Cloak.PNG",
	}

	if got := NormalizeImageURLs(input); !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeImageURLs() = %v, want %v", got, want)
	}
}

func TestNormalizeURL_LeavesRelativeForValidator(t *testing.T) {
	if got := NormalizeURL("  /static/cloak.png "); got != "/static/cloak.png" {
		t.Errorf("expected trimmed relative path, got %q", got)
	}
}
