package dto

import (
	"github.com/google/uuid"

	model "univm_backend/internals/features/academico/institucion/model"
)

/* ==============================
   Universidad (singleton)
============================== */

type UpdateUniversidadRequest struct {
	UniversidadNombre               *string `json:"universidad_nombre" validate:"omitempty,min=3,max=200"`
	UniversidadTipoGestion          *string `json:"universidad_tipo_gestion" validate:"omitempty,oneof=PUBLICO PRIVADO"`
	UniversidadEstadoLicenciamiento *string `json:"universidad_estado_licenciamiento" validate:"omitempty,oneof=NINGUNO EN_PROCESO LICENCIADA DENEGADA"`
}

func (r *UpdateUniversidadRequest) ApplyTo(m *model.UniversidadModel) {
	if r.UniversidadNombre != nil {
		m.UniversidadNombre = *r.UniversidadNombre
	}
	if r.UniversidadTipoGestion != nil {
		m.UniversidadTipoGestion = *r.UniversidadTipoGestion
	}
	if r.UniversidadEstadoLicenciamiento != nil {
		m.UniversidadEstadoLicenciamiento = *r.UniversidadEstadoLicenciamiento
	}
}

/* ==============================
   Facultad
============================== */

type CreateFacultadRequest struct {
	FacultadUniversidadId uuid.UUID `json:"facultad_universidad_id" validate:"required"`
	FacultadCodigo        string    `json:"facultad_codigo" validate:"required,max=20"`
	FacultadNombre        string    `json:"facultad_nombre" validate:"required,min=3,max=200"`
}

func (r *CreateFacultadRequest) ToModel() *model.FacultadModel {
	return &model.FacultadModel{
		FacultadUniversidadId: r.FacultadUniversidadId,
		FacultadCodigo:        r.FacultadCodigo,
		FacultadNombre:        r.FacultadNombre,
	}
}

/* ==============================
   Escuela profesional
============================== */

type CreateEscuelaRequest struct {
	EscuelaFacultadId uuid.UUID `json:"escuela_facultad_id" validate:"required"`
	EscuelaCodigo     string    `json:"escuela_codigo" validate:"required,max=20"`
	EscuelaNombre     string    `json:"escuela_nombre" validate:"required,min=3,max=200"`
}

func (r *CreateEscuelaRequest) ToModel() *model.EscuelaProfesionalModel {
	return &model.EscuelaProfesionalModel{
		EscuelaFacultadId: r.EscuelaFacultadId,
		EscuelaCodigo:     r.EscuelaCodigo,
		EscuelaNombre:     r.EscuelaNombre,
	}
}

/* ==============================
   Sede
============================== */

type CreateSedeRequest struct {
	SedeUniversidadId uuid.UUID `json:"sede_universidad_id" validate:"required"`
	SedeNombre        string    `json:"sede_nombre" validate:"required,min=3,max=200"`
	SedeEsPrincipal   bool      `json:"sede_es_principal"`
}

func (r *CreateSedeRequest) ToModel() *model.SedeModel {
	return &model.SedeModel{
		SedeUniversidadId: r.SedeUniversidadId,
		SedeNombre:        r.SedeNombre,
		SedeEsPrincipal:   r.SedeEsPrincipal,
	}
}

/* ==============================
   EP-Sede (junction)
============================== */

type CreateEpSedeRequest struct {
	EpSedeEscuelaId uuid.UUID `json:"ep_sede_escuela_id" validate:"required"`
	EpSedeSedeId    uuid.UUID `json:"ep_sede_sede_id" validate:"required"`
}

func (r *CreateEpSedeRequest) ToModel() *model.EpSedeModel {
	return &model.EpSedeModel{
		EpSedeEscuelaId: r.EpSedeEscuelaId,
		EpSedeSedeId:    r.EpSedeSedeId,
	}
}
