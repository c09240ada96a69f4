package format

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold and link", "Check **this** out: [here](http://x.com/a)", "Check *this* out: http://x.com/a"},
		{"underscore and strike", "__bold__ and ~~strike~~", "_bold_ and ~strike~"},
		{"plain text untouched", "halo, apa kabar?", "halo, apa kabar?"},
		{"empty", "", ""},
		{"two links", "[a](http://a.io) dan [b](https://b.io/x?y=1)", "http://a.io dan https://b.io/x?y=1"},
		{"unclosed label runs to next link", "[x] and (y) then [docs](http://d.io)", "http://d.io"},
		{"single markers kept", "*a* _b_ ~c~", "*a* _b_ ~c~"},
		{"quadruple collapses pairwise", "****", "**"},
		{"multiline", "**Judul**\n- [link](http://l.io)\n~~lama~~", "*Judul*\n- http://l.io\n~lama~"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.in); got != tc.want {
				t.Errorf("Text(%q): wanted %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestCollapseEmphasis_CountsMarkers(t *testing.T) {
	in := "a **b** c **d** e **f**"
	n := strings.Count(in, "**")

	got := CollapseEmphasis(in)
	if strings.Contains(got, "**") {
		t.Fatalf("expected no doubled markers in %q", got)
	}
	if c := strings.Count(got, "*"); c != n {
		t.Errorf("expected %d single markers, got %d", n, c)
	}
}

func TestText_StableOnceNormalised(t *testing.T) {
	inputs := []string{
		"Check **this** out: [here](http://x.com/a)",
		"__bold__ and ~~strike~~",
		"*already* _single_ ~markers~",
	}
	for _, in := range inputs {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Errorf("Text not stable for %q: %q then %q", in, once, twice)
		}
	}
}

func TestStripLinks_KeepsUnrelatedBrackets(t *testing.T) {
	in := "pilih [ya] atau (tidak)"
	if got := StripLinks(in); got != in {
		t.Errorf("expected %q unchanged, got %q", in, got)
	}
}
