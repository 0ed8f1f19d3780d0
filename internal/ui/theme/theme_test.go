package theme

import "testing"

func TestTier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Excellent", Good.Render("x")},
		{"Good (80-89)", Good.Render("x")},
		{"Good", Warn.Render("x")},
		{"Average (70-79)", Warn.Render("x")},
		{"Needs Improvement", Bad.Render("x")},
		{"Poor (<60)", Bad.Render("x")},
	}
	for _, tt := range tests {
		if got := Tier(tt.name).Render("x"); got != tt.want {
			t.Errorf("Tier(%q) rendered %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	if got, want := Score(50, 70).Render("x"), Bad.Render("x"); got != want {
		t.Errorf("below pass = %q, want %q", got, want)
	}
	if got, want := Score(85, 70).Render("x"), Body.Render("x"); got != want {
		t.Errorf("above pass = %q, want %q", got, want)
	}
}
