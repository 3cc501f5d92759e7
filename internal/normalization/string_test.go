package normalization

import "testing"

func TestParseInputString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"UPPER", "upper"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := ParseInputString(c.in); got != c.want {
			t.Fatalf("ParseInputString(%q): want=%q got=%q", c.in, c.want, got)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("a \t b\n\nc"); got != "a b c" {
		t.Fatalf("CollapseWhitespace: got=%q", got)
	}
	if got := CollapseWhitespace("   "); got != "" {
		t.Fatalf("CollapseWhitespace on blanks: got=%q", got)
	}
}

func TestStripPunctuation(t *testing.T) {
	if got := StripPunctuation("it's, alive!"); got != "its alive" {
		t.Fatalf("StripPunctuation: got=%q", got)
	}
}
