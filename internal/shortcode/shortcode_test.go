package shortcode

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Brandon's Barber Shop", "brandon-s-barber-shop"},
		{"  --Hello   World--  ", "hello-world"},
		{"Café ☕ Menu", "caf-menu"},
		{"!!!", "item"},
		{"", "item"},
		{"already-kebab", "already-kebab"},
	}
	for _, tc := range cases {
		if got := MakeSlug(tc.in); got != tc.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeSlug_Truncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	if got := MakeSlug(long); len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
}

func TestRandom(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := Random(7)
		if len(code) != 7 {
			t.Fatalf("len(%q) = %d, want 7", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("code %q contains %q outside alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 95 { // collisions at this scale suggest a broken generator
		t.Fatalf("only %d distinct codes out of 100", len(seen))
	}
}

func TestRandom_MinLength(t *testing.T) {
	if got := Random(1); len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
}
