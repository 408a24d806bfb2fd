package icon

import "testing"

func TestVariant(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Instagram", "instagram"},
		{"INSTAGRAM", "instagram"},
		{"Email us", "mail"},
		{"Call the shop", "phone"}, // "call" outranks "shop" by table order
		{"Lunch Menu", "menu"},
		{"Website", "globe"},
		{"Something else entirely", DefaultVariant},
		{"", DefaultVariant},
	}
	for _, tc := range cases {
		if got := Variant(tc.title); got != tc.want {
			t.Errorf("Variant(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
