package titlestream

import "testing"

func TestStripScheme(t *testing.T) {
	tests := []struct {
		locator string
		want    string
	}{
		{"dvd:/dev/sr0", "/dev/sr0"},
		{"dvd:/mnt/movie", "/mnt/movie"},
		{"DVD:/dev/sr0", "/dev/sr0"},
		{"/dev/sr0", "/dev/sr0"},
		{"  dvd:/dev/sr0  ", "/dev/sr0"},
		{"dvd:", ""},
		{"", ""},
		{"dvds:/dev/sr0", "dvds:/dev/sr0"},
	}
	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			if got := StripScheme(tt.locator); got != tt.want {
				t.Errorf("StripScheme(%q) = %q, want %q", tt.locator, got, tt.want)
			}
		})
	}
}

func TestTitleInRange(t *testing.T) {
	tests := []struct {
		title int
		want  bool
	}{
		{AutoTitle, true},
		{0, true},
		{1, true},
		{MaxTitle, true},
		{-2, false},
		{MaxTitle + 1, false},
	}
	for _, tt := range tests {
		if got := titleInRange(tt.title); got != tt.want {
			t.Errorf("titleInRange(%d) = %v, want %v", tt.title, got, tt.want)
		}
	}
}
