package image7color

import "testing"

func TestColorCodes(t *testing.T) {
	tests := []struct {
		c    Color
		code uint8
		name string
	}{
		{Black, 0, "black"},
		{White, 1, "white"},
		{Green, 2, "green"},
		{Blue, 3, "blue"},
		{Red, 4, "red"},
		{Yellow, 5, "yellow"},
		{Orange, 6, "orange"},
		{Clean, 7, "clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if uint8(tt.c) != tt.code {
				t.Errorf("code = %d, want %d", uint8(tt.c), tt.code)
			}
			if tt.c.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.c.String(), tt.name)
			}
			got, err := ParseColor(" " + tt.name + " ")
			if err != nil || got != tt.c {
				t.Errorf("ParseColor(%q) = %v, %v", tt.name, got, err)
			}
		})
	}
}

func TestSignificantExcludesClean(t *testing.T) {
	s := Significant()
	if len(s) != 7 {
		t.Fatalf("len(Significant()) = %d, want 7", len(s))
	}
	for i, c := range s {
		if c == Clean {
			t.Error("Significant() contains Clean")
		}
		if int(c) != i {
			t.Errorf("Significant()[%d] = %v, want code %d", i, c, i)
		}
	}

	// Callers must not be able to reorder the shared slice.
	s[0] = Orange
	if Significant()[0] != Black {
		t.Error("Significant() returned a shared slice")
	}
}

func TestParseColorUnknown(t *testing.T) {
	if _, err := ParseColor("purple"); err == nil {
		t.Error("ParseColor(purple) should fail")
	}
}

func TestColorText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("Orange")); err != nil {
		t.Fatal(err)
	}
	if c != Orange {
		t.Errorf("UnmarshalText(Orange) = %v", c)
	}
	b, err := Yellow.MarshalText()
	if err != nil || string(b) != "yellow" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
	if _, err := Color(12).MarshalText(); err == nil {
		t.Error("MarshalText of an invalid color should fail")
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Red.RGBA()
	if r>>8 != 156 || g>>8 != 72 || b>>8 != 75 || a != 0xFFFF {
		t.Errorf("Red.RGBA() = (%d, %d, %d, %d), want preview (156, 72, 75)", r>>8, g>>8, b>>8, a)
	}
}
