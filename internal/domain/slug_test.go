package domain

import "testing"

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"WeBump", "webump"},
		{"we bump!", "webump"},
		{"Yaka Voyager", "yakavoyager"},
		{"QUNKS", "qunks"},
		{"REMO's World", "remosworld"},
		{"The-Rabbit_Project!!", "the_rabbitproject"},
		{"The Rabbit Project", "the_rabbitproject"},
		{"snake_case_kept", "snake_case_kept"},
		{"1234!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSlug(tc.in); got != tc.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSlugIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"The-Rabbit_Project!!", "WeBump", "dob", "Grapes on Sei",
		"unfrgtn", "colony", "already_normal", "", "1234!!",
	}
	for _, in := range inputs {
		once := NormalizeSlug(in)
		twice := NormalizeSlug(once)
		if once != twice {
			t.Errorf("NormalizeSlug not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugOverridesAreFixedPoints(t *testing.T) {
	t.Parallel()

	for from, to := range slugOverrides {
		if got := NormalizeSlug(to); got != to {
			t.Errorf("override %q -> %q is not a fixed point, normalizes to %q", from, to, got)
		}
	}
}
