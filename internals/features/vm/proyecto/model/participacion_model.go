package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles y estados de una participación.
const (
	ParticipacionRolAlumno      = "ALUMNO"
	ParticipacionRolResponsable = "RESPONSABLE"

	ParticipacionInscrito   = "INSCRITO"
	ParticipacionConfirmado = "CONFIRMADO"
	ParticipacionRetirado   = "RETIRADO"
	ParticipacionFinalizado = "FINALIZADO"
)

// EstadosParticipacionActiva habilita check-in de asistencia.
var EstadosParticipacionActiva = []string{ParticipacionInscrito, ParticipacionConfirmado}

// ParticipacionModel vincula un expediente a un participable polimórfico
// (vm_proceso o vm_evento). La terna (type, id, expediente) es única.
type ParticipacionModel struct {
	ParticipacionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:participacion_id" json:"participacion_id"`

	ParticipacionParticipableType string    `gorm:"not null;column:participacion_participable_type;uniqueIndex:uq_participacion_triple" json:"participacion_participable_type"`
	ParticipacionParticipableId   uuid.UUID `gorm:"type:uuid;not null;column:participacion_participable_id;uniqueIndex:uq_participacion_triple" json:"participacion_participable_id"`

	ParticipacionExpedienteId uuid.UUID `gorm:"type:uuid;not null;column:participacion_expediente_id;uniqueIndex:uq_participacion_triple" json:"participacion_expediente_id"`

	ParticipacionRol    string `gorm:"not null;default:ALUMNO;column:participacion_rol"      json:"participacion_rol"`
	ParticipacionEstado string `gorm:"not null;default:INSCRITO;column:participacion_estado" json:"participacion_estado"`

	ParticipacionCreatedAt time.Time      `gorm:"column:participacion_created_at;autoCreateTime" json:"participacion_created_at"`
	ParticipacionUpdatedAt *time.Time     `gorm:"column:participacion_updated_at;autoUpdateTime" json:"participacion_updated_at,omitempty"`
	ParticipacionDeletedAt gorm.DeletedAt `gorm:"column:participacion_deleted_at;index"          json:"participacion_deleted_at,omitempty"`
}

func (ParticipacionModel) TableName() string { return "vm_participaciones" }
