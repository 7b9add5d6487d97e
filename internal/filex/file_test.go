package filex

import "testing"

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"cat.png", "cat.png"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system.ini`, "system.ini"},
		{"..hidden.png", "hidden.png"},
		{"résumé.jpg", "rsum.jpg"},
		{"a b c.jpeg", "a_b_c.jpeg"},
		{"...", ""},
		{"", ""},
	}

	for _, tc := range tests {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFilename_Deterministic(t *testing.T) {
	t.Parallel()

	in := "some weird/../name (1).png"
	if SanitizeFilename(in) != SanitizeFilename(in) {
		t.Fatalf("sanitization is not deterministic for %q", in)
	}
}

func TestBaseNameAsJPEG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"originals/cat.png", "cat.jpg"},
		{"cat.jpeg", "cat.jpg"},
		{"dir/photo.JPG", "photo.jpg"},
		{"noext", "noext.jpg"},
	}

	for _, tc := range tests {
		if got := BaseNameAsJPEG(tc.in); got != tc.want {
			t.Errorf("BaseNameAsJPEG(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
