package advisor

import "testing"

func TestExtractCollections(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"how is webump doing", []string{"webump"}},
		{"compare ghosty and seiyans please", []string{"ghosty", "seiyans"}},
		{"is The Rabbit Project still moving?", []string{"the_rabbitproject"}},
		{"what looks strong today", nil},
		{"webump webump WEBUMP", []string{"webump"}},
	}
	for _, tc := range cases {
		got := ExtractCollections(tc.text)
		if len(got) != len(tc.want) {
			t.Errorf("ExtractCollections(%q) = %v, want %v", tc.text, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ExtractCollections(%q) = %v, want %v", tc.text, got, tc.want)
				break
			}
		}
	}
}
