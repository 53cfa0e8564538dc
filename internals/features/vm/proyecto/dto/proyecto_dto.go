package dto

import (
	"github.com/google/uuid"

	model "univm_backend/internals/features/vm/proyecto/model"
)

/* ==============================
   Proyecto
============================== */

type CreateProyectoRequest struct {
	ProyectoEpSedeId  uuid.UUID `json:"proyecto_ep_sede_id" validate:"required"`
	ProyectoPeriodoId uuid.UUID `json:"proyecto_periodo_id" validate:"required"`

	ProyectoTitulo      string  `json:"proyecto_titulo" validate:"required,min=3,max=250"`
	ProyectoDescripcion *string `json:"proyecto_descripcion" validate:"omitempty,max=2000"`

	ProyectoTipo      string `json:"proyecto_tipo" validate:"required,oneof=LIBRE VINCULADO PROYECTO"`
	ProyectoModalidad string `json:"proyecto_modalidad" validate:"required,oneof=PRESENCIAL VIRTUAL MIXTA"`

	ProyectoNivel *int `json:"proyecto_nivel" validate:"omitempty,min=1,max=10"`

	ProyectoHorasPlanificadas        int  `json:"proyecto_horas_planificadas" validate:"min=0"`
	ProyectoHorasMinimasParticipante *int `json:"proyecto_horas_minimas_participante" validate:"omitempty,min=0"`
}

func (r *CreateProyectoRequest) ToModel() *model.ProyectoModel {
	m := &model.ProyectoModel{
		ProyectoEpSedeId:                 r.ProyectoEpSedeId,
		ProyectoPeriodoId:                r.ProyectoPeriodoId,
		ProyectoTitulo:                   r.ProyectoTitulo,
		ProyectoDescripcion:              r.ProyectoDescripcion,
		ProyectoTipo:                     r.ProyectoTipo,
		ProyectoModalidad:                r.ProyectoModalidad,
		ProyectoEstado:                   model.EstadoPlanificado,
		ProyectoHorasPlanificadas:        r.ProyectoHorasPlanificadas,
		ProyectoHorasMinimasParticipante: r.ProyectoHorasMinimasParticipante,
	}
	if m.ProyectoTipo == "PROYECTO" {
		m.ProyectoTipo = model.TipoVinculado
	}
	// el nivel solo tiene sentido en la escalera
	if m.ProyectoTipo == model.TipoVinculado {
		m.ProyectoNivel = r.ProyectoNivel
	}
	return m
}

/* ==============================
   Proceso
============================== */

type CreateProcesoRequest struct {
	ProcesoNombre      string  `json:"proceso_nombre" validate:"required,min=3,max=200"`
	ProcesoDescripcion *string `json:"proceso_descripcion" validate:"omitempty,max=2000"`
}

func (r *CreateProcesoRequest) ToModel(proyectoId uuid.UUID) *model.ProcesoModel {
	return &model.ProcesoModel{
		ProcesoProyectoId:  proyectoId,
		ProcesoNombre:      r.ProcesoNombre,
		ProcesoDescripcion: r.ProcesoDescripcion,
	}
}

/* ==============================
   Respuestas
============================== */

// ProyectoAlumnoItem: proyecto anotado para el panel del alumno.
type ProyectoAlumnoItem struct {
	Proyecto     *model.ProyectoModel   `json:"proyecto"`
	RequeridoMin int                    `json:"requerido_min"`
	AcumuladoMin int                    `json:"acumulado_min"`
	FaltanMin    int                    `json:"faltan_min"`
	Razon        string                 `json:"razon,omitempty"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
}
