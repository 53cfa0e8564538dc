package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ==============================
   Tokens
============================== */

type GenerarTokenQrRequest struct {
	MaxUsos *int     `json:"max_usos" validate:"omitempty,min=1"`
	Lat     *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng     *float64 `json:"lng" validate:"omitempty,longitude"`
	RadioM  *int     `json:"radio_m" validate:"omitempty,min=1"`
}

/* ==============================
   Check-in
============================== */

type CheckInQrRequest struct {
	Token string   `json:"token" validate:"required,len=32,hexadecimal"`
	Lat   *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng   *float64 `json:"lng" validate:"omitempty,longitude"`
}

type CheckInManualRequest struct {
	Codigo string `json:"codigo" validate:"required,max=20"`
}

type CheckInJustificadaRequest struct {
	Codigo        string `json:"codigo" validate:"required,max=20"`
	Justificacion string `json:"justificacion" validate:"required,min=5,max=1000"`

	// por defecto sí se otorgan horas
	OtorgarHoras *bool `json:"otorgar_horas"`
}

func (r *CheckInJustificadaRequest) Otorgar() bool {
	return r.OtorgarHoras == nil || *r.OtorgarHoras
}

/* ==============================
   Validación masiva
============================== */

type ValidarAsistenciasRequest struct {
	// vacío = todas las pendientes de la sesión
	Ids []uuid.UUID `json:"ids" validate:"omitempty,dive,required"`

	CrearRegistroHoras *bool `json:"crear_registro_horas"`
}

func (r *ValidarAsistenciasRequest) CrearRegistro() bool {
	return r.CrearRegistroHoras == nil || *r.CrearRegistroHoras
}

/* ==============================
   Roster / reporte
============================== */

type ParticipanteRow struct {
	ExpedienteId     uuid.UUID  `json:"expediente_id"`
	Nombres          string     `json:"nombres"`
	Apellidos        string     `json:"apellidos"`
	Codigo           string     `json:"codigo"`
	Dni              string     `json:"dni"`
	EstadoCalculado  string     `json:"estado_calculado"`
	Metodo           string     `json:"metodo,omitempty"`
	CheckInAt        *time.Time `json:"check_in_at,omitempty"`
	EstadoAsistencia string     `json:"estado_asistencia,omitempty"`
	MinutosValidados int        `json:"minutos_validados"`
}
