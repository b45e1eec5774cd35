package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveDefaultFormat(t *testing.T) {
	// A4 carries no overrides, so resolving it yields the raw default sheet.
	if diff := cmp.Diff(Default(), Resolve(FormatA4)); diff != "" {
		t.Errorf("Resolve(A4) differs from default sheet (-want +got):\n%s", diff)
	}
}

func TestResolveOverrideWins(t *testing.T) {
	def := Default()
	a5 := Resolve(FormatA5)

	// Every default key must be present.
	for k := range def {
		if _, ok := a5[k]; !ok {
			t.Errorf("Resolve(A5) missing default key %q", k)
		}
	}

	// Overridden keys win, untouched keys keep the default value.
	if got, want := a5.Get("title.fontSize"), 14.0; got != want {
		t.Errorf("A5 title.fontSize = %g, want override %g", got, want)
	}
	if got, want := a5.Get("page.margin"), def.Get("page.margin"); got != want {
		t.Errorf("A5 page.margin = %g, want default %g", got, want)
	}
}

func TestResolveUnknownFormat(t *testing.T) {
	if diff := cmp.Diff(Default(), Resolve(Format("B7"))); diff != "" {
		t.Errorf("Resolve(unknown) differs from default sheet (-want +got):\n%s", diff)
	}
}

func TestResolveDoesNotAliasDefaults(t *testing.T) {
	s := Resolve(FormatA4)
	s["page.margin"] = 99
	if Default().Get("page.margin") == 99 {
		t.Fatal("mutating a resolved sheet leaked into the defaults")
	}
}

func TestByOrientation(t *testing.T) {
	s := Default()
	if got := s.ByOrientation("title.maxLineCount", Portrait); got != 2 {
		t.Errorf("title.maxLineCount portrait = %g, want 2", got)
	}
	if got := s.ByOrientation("title.maxLineCount", Landscape); got != 1 {
		t.Errorf("title.maxLineCount landscape = %g, want 1", got)
	}
}

func TestPageSize(t *testing.T) {
	p := PageSize(FormatA4, Portrait)
	if p.W != 8.27 || p.H != 11.69 {
		t.Errorf("A4 portrait = %v", p)
	}
	l := PageSize(FormatA4, Landscape)
	if l.W != 11.69 || l.H != 8.27 {
		t.Errorf("A4 landscape = %v", l)
	}
	if PageSize(Format("nope"), Portrait) != PageSize(FormatA4, Portrait) {
		t.Error("unknown format should fall back to A4")
	}
}

func TestParseOverrides(t *testing.T) {
	src := []byte(`
[A3]
"title.fontSize" = 24.0
"info.widthRatio.landscape" = 0.3

[A5]
"page.margin" = 0.25
`)
	got, err := ParseOverrides(src)
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	want := map[Format]Sheet{
		FormatA3: {"title.fontSize": 24, "info.widthRatio.landscape": 0.3},
		FormatA5: {"page.margin": 0.25},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseOverrides mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOverridesBadTOML(t *testing.T) {
	if _, err := ParseOverrides([]byte(`[A3`)); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}
