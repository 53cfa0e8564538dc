package service

import (
	"testing"

	"github.com/google/uuid"

	prmodel "univm_backend/internals/features/vm/proyecto/model"
)

func nivelPtr(n int) *int { return &n }

func proyectoVinculado(estado string, nivel int, epSede uuid.UUID) *prmodel.ProyectoModel {
	return &prmodel.ProyectoModel{
		ProyectoId:                uuid.New(),
		ProyectoEpSedeId:          epSede,
		ProyectoTipo:              prmodel.TipoVinculado,
		ProyectoEstado:            estado,
		ProyectoNivel:             nivelPtr(nivel),
		ProyectoHorasPlanificadas: 40,
	}
}

func TestEvaluarEscalera(t *testing.T) {
	epSede := uuid.New()
	otraEpSede := uuid.New()

	cases := []struct {
		nombre   string
		snap     *Snapshot
		wantCode string
	}{
		{
			"vinculado nivel 1 limpio",
			&Snapshot{Proyecto: proyectoVinculado("EN_CURSO", 1, epSede), ExpedienteEpSedeId: epSede},
			"",
		},
		{
			"proyecto cerrado",
			&Snapshot{Proyecto: proyectoVinculado("CERRADO", 1, epSede), ExpedienteEpSedeId: epSede},
			"PROJECT_NOT_ACTIVE",
		},
		{
			"expediente de otra escuela-sede",
			&Snapshot{Proyecto: proyectoVinculado("EN_CURSO", 1, epSede), ExpedienteEpSedeId: otraEpSede},
			"DIFFERENT_EP_SEDE",
		},
		{
			"ya inscrito",
			&Snapshot{Proyecto: proyectoVinculado("EN_CURSO", 1, epSede), ExpedienteEpSedeId: epSede, YaInscrito: true},
			"ALREADY_ENROLLED",
		},
		{
			"vinculado previo pendiente bloquea",
			&Snapshot{
				Proyecto:           proyectoVinculado("EN_CURSO", 2, epSede),
				ExpedienteEpSedeId: epSede,
				Pendiente: &PendienteVinculado{
					ProyectoId: uuid.New(), Nivel: nivelPtr(1),
					RequeridoMin: 2400, AcumuladoMin: 1800,
				},
				NivelPrevioFinalizado: true,
			},
			"PENDING_LINKED_PREV",
		},
		{
			"nivel 2 sin concluir nivel 1",
			&Snapshot{Proyecto: proyectoVinculado("EN_CURSO", 2, epSede), ExpedienteEpSedeId: epSede},
			"LEVEL_NOT_ALLOWED",
		},
		{
			"nivel 2 con nivel 1 concluido",
			&Snapshot{Proyecto: proyectoVinculado("EN_CURSO", 2, epSede), ExpedienteEpSedeId: epSede, NivelPrevioFinalizado: true},
			"",
		},
		{
			"nivel ya completado",
			&Snapshot{Proyecto: proyectoVinculado("EN_CURSO", 1, epSede), ExpedienteEpSedeId: epSede, NivelYaCompletado: true},
			"LEVEL_ALREADY_COMPLETED",
		},
	}

	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			f := Evaluar(c.snap)
			switch {
			case c.wantCode == "" && f != nil:
				t.Errorf("rechazó una inscripción válida: %s", f.Code)
			case c.wantCode != "" && f == nil:
				t.Errorf("aceptó, esperaba %s", c.wantCode)
			case c.wantCode != "" && f.Code != c.wantCode:
				t.Errorf("code = %s, quería %s", f.Code, c.wantCode)
			}
		})
	}
}

func TestEvaluarLibreIgnoraEscalera(t *testing.T) {
	epSede := uuid.New()
	libre := &prmodel.ProyectoModel{
		ProyectoId:       uuid.New(),
		ProyectoEpSedeId: epSede,
		ProyectoTipo:     prmodel.TipoLibre,
		ProyectoEstado:   prmodel.EstadoEnCurso,
	}
	// un LIBRE no revisa pendientes ni niveles
	snap := &Snapshot{
		Proyecto:           libre,
		ExpedienteEpSedeId: epSede,
		Pendiente:          &PendienteVinculado{ProyectoId: uuid.New()},
		NivelYaCompletado:  true,
	}
	if f := Evaluar(snap); f != nil {
		t.Errorf("LIBRE no debería pasar por la escalera: %s", f.Code)
	}
}

func TestEvaluarAliasProyecto(t *testing.T) {
	epSede := uuid.New()
	// el alias histórico "PROYECTO" cuenta como VINCULADO
	p := proyectoVinculado("EN_CURSO", 2, epSede)
	p.ProyectoTipo = "PROYECTO"
	snap := &Snapshot{Proyecto: p, ExpedienteEpSedeId: epSede}
	f := Evaluar(snap)
	if f == nil || f.Code != "LEVEL_NOT_ALLOWED" {
		t.Errorf("esperaba LEVEL_NOT_ALLOWED para alias PROYECTO, obtuve %v", f)
	}
}

func TestParticipacionConcluida(t *testing.T) {
	fila := func(estado string, horasMin int) *participacionProyecto {
		p := proyectoVinculado("EN_CURSO", 1, uuid.New())
		p.ProyectoHorasPlanificadas = 0
		p.ProyectoHorasMinimasParticipante = &horasMin
		return &participacionProyecto{
			ParticipacionEstado: estado,
			ProyectoModel:       *p,
		}
	}

	cases := []struct {
		nombre    string
		f         *participacionProyecto
		acumulado int
		want      bool
	}{
		{"finalizado por estado sin horas", fila(prmodel.ParticipacionFinalizado, 40), 0, true},
		{"horas cubiertas", fila(prmodel.ParticipacionConfirmado, 40), 2400, true},
		{"horas insuficientes", fila(prmodel.ParticipacionConfirmado, 40), 1800, false},
		// requerido 0: la meta queda cubierta de entrada, nunca pendiente
		{"requerido cero sin acumulado", fila(prmodel.ParticipacionConfirmado, 0), 0, true},
		{"requerido cero inscrito", fila(prmodel.ParticipacionInscrito, 0), 0, true},
	}
	for _, tc := range cases {
		if got := participacionConcluida(tc.f, tc.acumulado); got != tc.want {
			t.Errorf("%s: participacionConcluida = %v, quería %v", tc.nombre, got, tc.want)
		}
	}
}

func TestPendienteFaltanMin(t *testing.T) {
	p := &PendienteVinculado{RequeridoMin: 2400, AcumuladoMin: 2500}
	if got := p.FaltanMin(); got != 0 {
		t.Errorf("FaltanMin con exceso = %d, quería 0", got)
	}
	p.AcumuladoMin = 1000
	if got := p.FaltanMin(); got != 1400 {
		t.Errorf("FaltanMin = %d, quería 1400", got)
	}
}
