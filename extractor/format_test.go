package extractor

import "testing"

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"Zero", 0, "0:00"},
		{"Under a minute", 45, "0:45"},
		{"Minutes", 212, "3:32"},
		{"Exactly an hour", 3600, "1:00:00"},
		{"Hours", 7325, "2:02:05"},
		{"Negative clamps", -5, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanDuration(tt.seconds); got != tt.want {
				t.Errorf("humanDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestHumanCount(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"Small", 999, "999"},
		{"Thousands", 1234, "1,234"},
		{"Millions", 1234567, "1,234,567"},
		{"Exact group", 1000000, "1,000,000"},
		{"Negative", -1, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanCount(tt.n); got != tt.want {
				t.Errorf("humanCount(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"Unknown", 0, "Unknown"},
		{"Bytes", 512, "512.0 Bytes"},
		{"KB", 1536, "1.5 KB"},
		{"MB", 1048576, "1.0 MB"},
		{"GB", 1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanSize(tt.bytes); got != tt.want {
				t.Errorf("humanSize(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Clean", "My Video", "My Video"},
		{"Slashes and colons", "a/b\\c:d", "abcd"},
		{"Quotes and angle brackets", `say "hi" <now>`, "say hi now"},
		{"Trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMimeExt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Video mp4 with codecs", `video/mp4; codecs="avc1.640028"`, "mp4"},
		{"Audio webm", "audio/webm", "webm"},
		{"Plain", "video/3gpp", "3gpp"},
		{"Empty falls back", "", "mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mimeExt(tt.in); got != tt.want {
				t.Errorf("mimeExt(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProgressWriterWindow(t *testing.T) {
	var got []int
	w := &progressWriter{total: 100, sink: func(p int) { got = append(got, p) }, lo: 0, hi: 100}

	w.Write(make([]byte, 25))
	w.Write(make([]byte, 50))
	w.Write(make([]byte, 25))

	want := []int{25, 75, 100}
	if len(got) != len(want) {
		t.Fatalf("Expected %d callbacks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Callback %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestProgressWriterScaledWindow(t *testing.T) {
	var last int
	w := &progressWriter{total: 200, sink: func(p int) { last = p }, lo: 70, hi: 90}

	w.Write(make([]byte, 100))
	if last != 80 {
		t.Errorf("Expected midpoint of window to report 80, got %d", last)
	}
	w.Write(make([]byte, 100))
	if last != 90 {
		t.Errorf("Expected window end to report 90, got %d", last)
	}
	w.Write(make([]byte, 50)) // overshoot clamps to hi
	if last != 90 {
		t.Errorf("Expected overshoot to clamp at 90, got %d", last)
	}
}
