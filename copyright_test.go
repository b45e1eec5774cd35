package mapreport

import "testing"

func TestJoinCopyright(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"© A"}, "© A"},
		{"joined", []string{"© A", "© B"}, "© A | © B"},
		{"deduplicated in order", []string{"© B", "© A", "© B"}, "© B | © A"},
		{"blank parts dropped", []string{"© A", "", "  ", "© B"}, "© A | © B"},
		{"whitespace trimmed", []string{" © A ", "© A"}, "© A"},
		{"all blank", []string{"", "  "}, ""},
	}
	for _, tc := range cases {
		if got := JoinCopyright(tc.parts); got != tc.want {
			t.Errorf("%s: JoinCopyright(%q) = %q, want %q", tc.name, tc.parts, got, tc.want)
		}
	}
}

func TestEncodeLink(t *testing.T) {
	data, err := encodeLink("https://maps.example.org/?view=riverton", 128)
	if err != nil {
		t.Fatalf("encodeLink: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PNG data")
	}
	// PNG signature
	if data[0] != 0x89 || string(data[1:4]) != "PNG" {
		t.Error("encoded link is not a PNG")
	}
}
