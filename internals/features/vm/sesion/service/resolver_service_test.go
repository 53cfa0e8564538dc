package service

import (
	"testing"
	"time"

	sesmodel "univm_backend/internals/features/vm/sesion/model"
)

func strPtr(s string) *string { return &s }

func sesionDePrueba(fecha string, ini, fin *string) *sesmodel.SesionModel {
	f, _ := time.Parse("2006-01-02", fecha)
	return &sesmodel.SesionModel{
		SesionFecha:      f,
		SesionHoraInicio: ini,
		SesionHoraFin:    fin,
	}
}

func TestNormalizarHora(t *testing.T) {
	cases := []struct{ in, want string }{
		{"08:00", "08:00:00"},
		{"08:00:30", "08:00:30"},
		{"  14:15 ", "14:15:00"},
		{"2:30 PM", "14:30:00"},
		{"basura", "basura"},
	}
	for _, c := range cases {
		if got := NormalizarHora(c.in); got != c.want {
			t.Errorf("NormalizarHora(%q) = %q, quería %q", c.in, got, c.want)
		}
	}
}

func TestEstadoSinAsistencia(t *testing.T) {
	// ventana extendida [09:00, 14:00] para sesión 10:00-13:00
	ses := sesionDePrueba("2025-05-01", strPtr("10:00"), strPtr("13:00"))
	en := func(hora string) time.Time {
		tt, _ := time.Parse("2006-01-02 15:04:05", "2025-05-01 "+hora)
		return tt
	}

	cases := []struct {
		nombre string
		ahora  time.Time
		want   string
	}{
		{"antes de abrir la ventana", en("08:00:00"), "FALTA"},
		{"justo al abrir", en("09:00:00"), ""},
		{"durante la sesión", en("11:30:00"), ""},
		{"justo al cerrar", en("14:00:00"), ""},
		{"después de cerrar", en("15:00:00"), "FALTA"},
	}
	for _, c := range cases {
		if got := EstadoSinAsistencia(ses, c.ahora); got != c.want {
			t.Errorf("%s: EstadoSinAsistencia = %q, quería %q", c.nombre, got, c.want)
		}
	}
}

func TestVentanaSesion(t *testing.T) {
	cases := []struct {
		nombre    string
		ini, fin  *string
		wantDesde string
		wantHasta string
	}{
		{"ambas horas", strPtr("08:00"), strPtr("10:00"), "07:00:00", "11:00:00"},
		{"solo inicio", strPtr("08:00"), nil, "07:00:00", "10:00:00"},
		{"solo fin", nil, strPtr("10:00"), "08:00:00", "11:00:00"},
		{"sin horas", nil, nil, "00:00:00", "23:59:59"},
	}
	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			ses := sesionDePrueba("2025-05-01", c.ini, c.fin)
			desde, hasta := VentanaSesion(ses)
			if got := desde.Format("15:04:05"); got != c.wantDesde {
				t.Errorf("desde = %s, quería %s", got, c.wantDesde)
			}
			if got := hasta.Format("15:04:05"); got != c.wantHasta {
				t.Errorf("hasta = %s, quería %s", got, c.wantHasta)
			}
			if desde.Format("2006-01-02") != "2025-05-01" {
				t.Errorf("la ventana perdió la fecha de la sesión: %s", desde)
			}
		})
	}
}

func TestMinutosSesion(t *testing.T) {
	cases := []struct {
		nombre   string
		ini, fin *string
		want     int
	}{
		{"dos horas", strPtr("08:00"), strPtr("10:00"), 120},
		{"media hora con segundos", strPtr("09:00:00"), strPtr("09:30:00"), 30},
		{"invertida no acredita", strPtr("10:00"), strPtr("08:00"), 0},
		{"sin fin", strPtr("08:00"), nil, 0},
		{"sin horas", nil, nil, 0},
	}
	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			ses := sesionDePrueba("2025-05-01", c.ini, c.fin)
			if got := MinutosSesion(ses); got != c.want {
				t.Errorf("MinutosSesion = %d, quería %d", got, c.want)
			}
		})
	}
}
