package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Cool Project", "my-cool-project"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"C++ & Go!", "c-go"},
		{"already-a-slug", "already-a-slug"},
		{"___", "untitled"},
		{"", "untitled"},
		{"MiXeD CaSe 123", "mixed-case-123"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword("hunter2hunter2", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.io"}
	invalid := []string{"", "nope", "a@b", "a @b.co"}

	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}
