package service

import (
	"testing"
	"time"

	sesmodel "univm_backend/internals/features/vm/sesion/model"
)

func intPtr(n int) *int { return &n }
func f64Ptr(f float64) *float64 { return &f }

func tokenDePrueba(activo bool, desde, hasta time.Time, maxUsos *int, usos int) *sesmodel.QrTokenModel {
	return &sesmodel.QrTokenModel{
		QrTokenActivo:     activo,
		QrTokenUsableFrom: desde,
		QrTokenExpiresAt:  hasta,
		QrTokenMaxUsos:    maxUsos,
		QrTokenUsos:       usos,
	}
}

func TestCheckVentana(t *testing.T) {
	ahora := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	antes := ahora.Add(-time.Hour)
	despues := ahora.Add(time.Hour)

	cases := []struct {
		nombre   string
		tok      *sesmodel.QrTokenModel
		wantCode string
	}{
		{"vigente sin tope", tokenDePrueba(true, antes, despues, nil, 99), ""},
		{"inactivo", tokenDePrueba(false, antes, despues, nil, 0), "VENTANA_INVALIDA"},
		{"aún no usable", tokenDePrueba(true, despues, despues.Add(time.Hour), nil, 0), "VENTANA_INVALIDA"},
		{"expirado", tokenDePrueba(true, antes.Add(-time.Hour), antes, nil, 0), "VENTANA_INVALIDA"},
		{"con cupo disponible", tokenDePrueba(true, antes, despues, intPtr(10), 9), ""},
		{"cupo agotado", tokenDePrueba(true, antes, despues, intPtr(10), 10), "VENTANA_SIN_CUPO"},
	}
	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			f := CheckVentana(c.tok, ahora)
			switch {
			case c.wantCode == "" && f != nil:
				t.Errorf("rechazó un token válido: %s", f.Code)
			case c.wantCode != "" && f == nil:
				t.Errorf("aceptó un token inválido, esperaba %s", c.wantCode)
			case c.wantCode != "" && f.Code != c.wantCode:
				t.Errorf("code = %s, quería %s", f.Code, c.wantCode)
			}
		})
	}
}

func TestCheckGeocerca(t *testing.T) {
	base := &sesmodel.QrTokenModel{
		QrTokenLat:    f64Ptr(-12.0464),
		QrTokenLng:    f64Ptr(-77.0428),
		QrTokenRadioM: intPtr(100),
	}

	t.Run("sin geocerca acepta sin coordenadas", func(t *testing.T) {
		tok := &sesmodel.QrTokenModel{}
		if f := CheckGeocerca(tok, nil, nil); f != nil {
			t.Errorf("rechazó sin geocerca configurada: %s", f.Code)
		}
	})

	t.Run("geocerca sin coordenadas exige ubicación", func(t *testing.T) {
		f := CheckGeocerca(base, nil, nil)
		if f == nil || f.Code != "GEO_REQUERIDA" {
			t.Errorf("esperaba GEO_REQUERIDA, obtuve %v", f)
		}
	})

	t.Run("dentro del radio pasa", func(t *testing.T) {
		if f := CheckGeocerca(base, f64Ptr(-12.0464), f64Ptr(-77.0428)); f != nil {
			t.Errorf("rechazó en el mismo punto: %s", f.Code)
		}
	})

	t.Run("fuera del radio rechaza", func(t *testing.T) {
		// 0.001° de latitud ≈ 111 m, fuera de los 100 m permitidos
		f := CheckGeocerca(base, f64Ptr(-12.0474), f64Ptr(-77.0428))
		if f == nil || f.Code != "FUERA_DE_RANGO" {
			t.Errorf("esperaba FUERA_DE_RANGO, obtuve %v", f)
		}
	})
}

func TestDistanciaMetros(t *testing.T) {
	if d := DistanciaMetros(-12.0464, -77.0428, -12.0464, -77.0428); d != 0 {
		t.Errorf("distancia al mismo punto = %d, quería 0", d)
	}
	d := DistanciaMetros(-12.0464, -77.0428, -12.0474, -77.0428)
	if d < 100 || d > 125 {
		t.Errorf("0.001° de latitud debería rondar 111 m, obtuve %d", d)
	}
}

func TestNuevoTokenHex(t *testing.T) {
	visto := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := NuevoTokenHex()
		if err != nil {
			t.Fatalf("error inesperado: %v", err)
		}
		if len(tok) != 32 {
			t.Fatalf("largo = %d, quería 32", len(tok))
		}
		for _, r := range tok {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("carácter no hex %q en %s", r, tok)
			}
		}
		if visto[tok] {
			t.Fatalf("token repetido: %s", tok)
		}
		visto[tok] = true
	}
}
