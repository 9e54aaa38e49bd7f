package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#112233", color.RGBA{0x11, 0x22, 0x33, 0xFF}, false},
		{"#11223344", color.RGBA{0x11, 0x22, 0x33, 0x44}, false},
		{"112233", color.RGBA{}, true},
		{"#1122", color.RGBA{}, true},
		{"#GG2233", color.RGBA{}, true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("%s: got %v, %v want %v", tc.in, got, err, tc.want)
		}
		if Hex(got) != strings.ToUpper(tc.in) {
			t.Errorf("Hex(%v) = %s want %s", got, Hex(got), tc.in)
		}
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Mine\n// comment\nselectiondash: #FF0000\nTabActive: #000000\n"))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Mine" || th.SelectionDash != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("unexpected theme %+v", th)
	}
	if th.CheckerLight != Default().CheckerLight {
		t.Fatal("missing keys must keep defaults")
	}
}

func TestEmbeddedThemesMatchFields(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"default", "dark"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if th.Name == "" {
			t.Fatalf("%s: missing name", name)
		}
	}
	def, _ := l.Load("default")
	if *def != *Default() {
		t.Fatalf("embedded default theme drifted from Default():\n%+v\n%+v", def, Default())
	}
}

func TestLoaderPrefersConfiguredThemes(t *testing.T) {
	custom := Default()
	custom.Name = "custom"
	l := &Loader{Extra: map[string]*Theme{"custom": custom}}
	got, err := l.Load("custom")
	if err != nil || got != custom {
		t.Fatalf("expected configured theme, got %v, %v", got, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestFields(t *testing.T) {
	fields := Fields(Default())
	if len(fields) == 0 || fields[0].Name != "Background" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}
