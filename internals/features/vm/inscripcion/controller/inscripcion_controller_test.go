package controller

import "testing"

func TestSoloElegiblesParam(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"  ", true},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"basura", false},
	}
	for _, c := range cases {
		if got := soloElegiblesParam(c.in); got != c.want {
			t.Errorf("soloElegiblesParam(%q) = %v, quería %v", c.in, got, c.want)
		}
	}
}
