package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"univm_backend/internals/constants"
)

// Roles y estados válidos de un expediente.
const (
	RolEstudiante  = constants.RolEstudiante
	RolCoordinador = constants.RolCoordinador
	RolEncargado   = constants.RolEncargado

	EstadoActivo = constants.EstadoActivo
	EstadoCesado = constants.EstadoCesado
)

// ExpedienteAcademicoModel: una fila por (user, ep_sede).
// Nota de esquema: instalaciones antiguas usan la columna
// expediente_usuario_id en lugar de expediente_user_id; el
// EpScopeService resuelve el nombre una sola vez al arrancar.
type ExpedienteAcademicoModel struct {
	ExpedienteId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:expediente_id" json:"expediente_id"`

	ExpedienteUserId   uuid.UUID `gorm:"type:uuid;not null;column:expediente_user_id;uniqueIndex:uq_expediente_user_ep" json:"expediente_user_id"`
	ExpedienteEpSedeId uuid.UUID `gorm:"type:uuid;not null;column:expediente_ep_sede_id;uniqueIndex:uq_expediente_user_ep" json:"expediente_ep_sede_id"`

	ExpedienteCodigoEstudiante    *string `gorm:"column:expediente_codigo_estudiante" json:"expediente_codigo_estudiante,omitempty"`
	ExpedienteGrupo               *string `gorm:"column:expediente_grupo"             json:"expediente_grupo,omitempty"`
	ExpedienteCorreoInstitucional *string `gorm:"column:expediente_correo_institucional" json:"expediente_correo_institucional,omitempty"`

	ExpedienteRol    string `gorm:"not null;default:ESTUDIANTE;column:expediente_rol" json:"expediente_rol"`
	ExpedienteEstado string `gorm:"not null;default:ACTIVO;column:expediente_estado"  json:"expediente_estado"`

	ExpedienteVigenteDesde *time.Time `gorm:"type:date;column:expediente_vigente_desde" json:"expediente_vigente_desde,omitempty"`
	ExpedienteVigenteHasta *time.Time `gorm:"type:date;column:expediente_vigente_hasta" json:"expediente_vigente_hasta,omitempty"`

	ExpedienteCreatedAt time.Time      `gorm:"column:expediente_created_at;autoCreateTime" json:"expediente_created_at"`
	ExpedienteUpdatedAt *time.Time     `gorm:"column:expediente_updated_at;autoUpdateTime" json:"expediente_updated_at,omitempty"`
	ExpedienteDeletedAt gorm.DeletedAt `gorm:"column:expediente_deleted_at;index"          json:"expediente_deleted_at,omitempty"`
}

func (ExpedienteAcademicoModel) TableName() string { return "expedientes_academicos" }
