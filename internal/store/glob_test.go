package store

import "testing"

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern, key string
		want         bool
	}{
		{"*", "anything", true},
		{"*", "", true},
		{"user:*", "user:1", true},
		{"user:*", "product:1", false},
		{"h?llo", "hello", true},
		{"h?llo", "heello", false},
		{"h[ae]llo", "hallo", true},
		{"h[ae]llo", "hello", true},
		{"h[ae]llo", "hillo", false},
		{"h[^ae]llo", "hillo", true},
		{"h[^ae]llo", "hallo", false},
		{"[a-c]at", "bat", true},
		{"[a-c]at", "dat", false},
		{"a\\*b", "a*b", true},
		{"a\\*b", "axb", false},
		{"", "", true},
		{"", "x", false},
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"*foo*", "xxfooyy", true},
		{"*foo*", "bar", false},
	}

	for _, tt := range tests {
		got := globMatch([]byte(tt.pattern), []byte(tt.key))
		if got != tt.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
}

func TestGlobMatchUnterminatedClass(t *testing.T) {
	if globMatch([]byte("[abc"), []byte("a")) {
		t.Error("unterminated class should never match")
	}
}
