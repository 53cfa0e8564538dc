package dto

import (
	"time"

	"github.com/google/uuid"

	model "univm_backend/internals/features/vm/evento/model"
)

type CreateEventoRequest struct {
	EventoPeriodoId uuid.UUID `json:"evento_periodo_id" validate:"required"`

	EventoTargetableType string    `json:"evento_targetable_type" validate:"required,oneof=ep_sede sede facultad"`
	EventoTargetableId   uuid.UUID `json:"evento_targetable_id" validate:"required"`

	EventoTitulo      string  `json:"evento_titulo" validate:"required,min=3,max=250"`
	EventoDescripcion *string `json:"evento_descripcion" validate:"omitempty,max=2000"`

	EventoFecha      string  `json:"evento_fecha" validate:"required,datetime=2006-01-02"`
	EventoHoraInicio *string `json:"evento_hora_inicio" validate:"omitempty,max=8"`
	EventoHoraFin    *string `json:"evento_hora_fin" validate:"omitempty,max=8"`

	EventoRequiereInscripcion bool `json:"evento_requiere_inscripcion"`
	EventoCupoMaximo          *int `json:"evento_cupo_maximo" validate:"omitempty,min=1"`
}

func (r *CreateEventoRequest) ToModel() (*model.EventoModel, error) {
	fecha, err := time.ParseInLocation("2006-01-02", r.EventoFecha, time.Local)
	if err != nil {
		return nil, err
	}
	return &model.EventoModel{
		EventoPeriodoId:           r.EventoPeriodoId,
		EventoTargetableType:      r.EventoTargetableType,
		EventoTargetableId:        r.EventoTargetableId,
		EventoTitulo:              r.EventoTitulo,
		EventoDescripcion:         r.EventoDescripcion,
		EventoFecha:               fecha,
		EventoHoraInicio:          r.EventoHoraInicio,
		EventoHoraFin:             r.EventoHoraFin,
		EventoRequiereInscripcion: r.EventoRequiereInscripcion,
		EventoCupoMaximo:          r.EventoCupoMaximo,
		EventoEstado:              model.EventoPlanificado,
	}, nil
}

type UpdateEventoRequest struct {
	EventoTitulo      *string `json:"evento_titulo" validate:"omitempty,min=3,max=250"`
	EventoDescripcion *string `json:"evento_descripcion" validate:"omitempty,max=2000"`

	EventoFecha      *string `json:"evento_fecha" validate:"omitempty,datetime=2006-01-02"`
	EventoHoraInicio *string `json:"evento_hora_inicio" validate:"omitempty,max=8"`
	EventoHoraFin    *string `json:"evento_hora_fin" validate:"omitempty,max=8"`

	EventoRequiereInscripcion *bool `json:"evento_requiere_inscripcion"`
	EventoCupoMaximo          *int  `json:"evento_cupo_maximo" validate:"omitempty,min=1"`
}

func (r *UpdateEventoRequest) ApplyTo(m *model.EventoModel) error {
	if r.EventoTitulo != nil {
		m.EventoTitulo = *r.EventoTitulo
	}
	if r.EventoDescripcion != nil {
		m.EventoDescripcion = r.EventoDescripcion
	}
	if r.EventoFecha != nil {
		fecha, err := time.ParseInLocation("2006-01-02", *r.EventoFecha, time.Local)
		if err != nil {
			return err
		}
		m.EventoFecha = fecha
	}
	if r.EventoHoraInicio != nil {
		m.EventoHoraInicio = r.EventoHoraInicio
	}
	if r.EventoHoraFin != nil {
		m.EventoHoraFin = r.EventoHoraFin
	}
	if r.EventoRequiereInscripcion != nil {
		m.EventoRequiereInscripcion = *r.EventoRequiereInscripcion
	}
	if r.EventoCupoMaximo != nil {
		m.EventoCupoMaximo = r.EventoCupoMaximo
	}
	return nil
}
