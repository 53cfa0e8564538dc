package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AsistenciaPendiente = "PENDIENTE"
	AsistenciaValidado  = "VALIDADO"
	AsistenciaRechazado = "RECHAZADO"

	MetodoQr     = "QR"
	MetodoManual = "MANUAL"
)

// AsistenciaModel: una por (sesión, expediente). Nace PENDIENTE al hacer
// check-in y pasa a VALIDADO en la validación masiva del responsable.
type AsistenciaModel struct {
	AsistenciaId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:asistencia_id" json:"asistencia_id"`

	AsistenciaSesionId     uuid.UUID `gorm:"type:uuid;not null;column:asistencia_sesion_id;uniqueIndex:uq_asistencia_sesion_exp" json:"asistencia_sesion_id"`
	AsistenciaExpedienteId uuid.UUID `gorm:"type:uuid;not null;column:asistencia_expediente_id;uniqueIndex:uq_asistencia_sesion_exp" json:"asistencia_expediente_id"`

	AsistenciaParticipacionId *uuid.UUID `gorm:"type:uuid;column:asistencia_participacion_id" json:"asistencia_participacion_id,omitempty"`
	AsistenciaQrTokenId       *uuid.UUID `gorm:"type:uuid;column:asistencia_qr_token_id"      json:"asistencia_qr_token_id,omitempty"`

	AsistenciaMetodo string `gorm:"not null;column:asistencia_metodo"                     json:"asistencia_metodo"`
	AsistenciaEstado string `gorm:"not null;default:PENDIENTE;column:asistencia_estado"   json:"asistencia_estado"`

	AsistenciaCheckInAt  *time.Time `gorm:"column:asistencia_check_in_at"  json:"asistencia_check_in_at,omitempty"`
	AsistenciaCheckOutAt *time.Time `gorm:"column:asistencia_check_out_at" json:"asistencia_check_out_at,omitempty"`

	AsistenciaMinutosValidados int `gorm:"not null;default:0;column:asistencia_minutos_validados" json:"asistencia_minutos_validados"`

	AsistenciaMeta datatypes.JSONMap `gorm:"column:asistencia_meta" json:"asistencia_meta,omitempty"`

	AsistenciaCreatedAt time.Time  `gorm:"column:asistencia_created_at;autoCreateTime" json:"asistencia_created_at"`
	AsistenciaUpdatedAt *time.Time `gorm:"column:asistencia_updated_at;autoUpdateTime" json:"asistencia_updated_at,omitempty"`
}

func (AsistenciaModel) TableName() string { return "vm_asistencias" }

// FueraDeHora: check-in justificado fuera de ventana (marca en meta).
func (a *AsistenciaModel) FueraDeHora() bool {
	if a.AsistenciaMeta == nil {
		return false
	}
	v, ok := a.AsistenciaMeta["fuera_de_hora"]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// MetodoMostrado alinea la presentación: MANUAL fuera de hora se reporta
// como MANUAL_JUSTIFICADA.
func MetodoMostrado(metodo string, fueraDeHora bool) string {
	if metodo == MetodoManual && fueraDeHora {
		return "MANUAL_JUSTIFICADA"
	}
	return metodo
}
