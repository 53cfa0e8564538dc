package model

import "testing"

func TestMetodoMostrado(t *testing.T) {
	cases := []struct {
		metodo      string
		fueraDeHora bool
		want        string
	}{
		{MetodoQr, false, "QR"},
		{MetodoQr, true, "QR"},
		{MetodoManual, false, "MANUAL"},
		{MetodoManual, true, "MANUAL_JUSTIFICADA"},
	}
	for _, c := range cases {
		if got := MetodoMostrado(c.metodo, c.fueraDeHora); got != c.want {
			t.Errorf("MetodoMostrado(%q, %v) = %q, quería %q", c.metodo, c.fueraDeHora, got, c.want)
		}
	}
}
