package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RegistroAprobado  = "APROBADO"
	RegistroPendiente = "PENDIENTE"
)

// RegistroHoraModel: fila del libro de horas. Una por asistencia
// (uniqueIndex sobre asistencia_id) para que revalidar actualice y
// nunca duplique.
type RegistroHoraModel struct {
	RegistroHoraId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:registro_hora_id" json:"registro_hora_id"`

	RegistroHoraExpedienteId uuid.UUID  `gorm:"type:uuid;not null;index;column:registro_hora_expediente_id" json:"registro_hora_expediente_id"`
	RegistroHoraEpSedeId     uuid.UUID  `gorm:"type:uuid;not null;column:registro_hora_ep_sede_id"          json:"registro_hora_ep_sede_id"`
	RegistroHoraPeriodoId    *uuid.UUID `gorm:"type:uuid;column:registro_hora_periodo_id"                   json:"registro_hora_periodo_id,omitempty"`

	RegistroHoraSesionId     *uuid.UUID `gorm:"type:uuid;column:registro_hora_sesion_id" json:"registro_hora_sesion_id,omitempty"`
	RegistroHoraAsistenciaId *uuid.UUID `gorm:"type:uuid;uniqueIndex;column:registro_hora_asistencia_id" json:"registro_hora_asistencia_id,omitempty"`

	RegistroHoraVinculableType *string    `gorm:"column:registro_hora_vinculable_type" json:"registro_hora_vinculable_type,omitempty"`
	RegistroHoraVinculableId   *uuid.UUID `gorm:"type:uuid;column:registro_hora_vinculable_id" json:"registro_hora_vinculable_id,omitempty"`

	RegistroHoraFecha     time.Time `gorm:"type:date;not null;column:registro_hora_fecha" json:"registro_hora_fecha"`
	RegistroHoraMinutos   int       `gorm:"not null;default:0;column:registro_hora_minutos" json:"registro_hora_minutos"`
	RegistroHoraActividad string    `gorm:"not null;column:registro_hora_actividad" json:"registro_hora_actividad"`
	RegistroHoraEstado    string    `gorm:"not null;default:APROBADO;column:registro_hora_estado" json:"registro_hora_estado"`

	RegistroHoraMeta datatypes.JSONMap `gorm:"column:registro_hora_meta" json:"registro_hora_meta,omitempty"`

	RegistroHoraCreatedAt time.Time  `gorm:"column:registro_hora_created_at;autoCreateTime" json:"registro_hora_created_at"`
	RegistroHoraUpdatedAt *time.Time `gorm:"column:registro_hora_updated_at;autoUpdateTime" json:"registro_hora_updated_at,omitempty"`
}

func (RegistroHoraModel) TableName() string { return "vm_registro_horas" }
