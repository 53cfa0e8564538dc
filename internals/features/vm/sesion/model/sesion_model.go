package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SesionModel: sesión de asistencia colgada de un dueño polimórfico
// (vm_proceso o vm_evento) vía sessionable_type/id.
type SesionModel struct {
	SesionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:sesion_id" json:"sesion_id"`

	SesionSessionableType string    `gorm:"not null;column:sesion_sessionable_type" json:"sesion_sessionable_type"`
	SesionSessionableId   uuid.UUID `gorm:"type:uuid;not null;column:sesion_sessionable_id" json:"sesion_sessionable_id"`

	SesionNombre *string   `gorm:"column:sesion_nombre"            json:"sesion_nombre,omitempty"`
	SesionFecha  time.Time `gorm:"type:date;not null;column:sesion_fecha" json:"sesion_fecha"`

	// horas en "HH:MM" o "HH:MM:SS"; pueden faltar ambas
	SesionHoraInicio *string `gorm:"column:sesion_hora_inicio" json:"sesion_hora_inicio,omitempty"`
	SesionHoraFin    *string `gorm:"column:sesion_hora_fin"    json:"sesion_hora_fin,omitempty"`

	SesionLugar *string `gorm:"column:sesion_lugar" json:"sesion_lugar,omitempty"`

	SesionCreatedAt time.Time      `gorm:"column:sesion_created_at;autoCreateTime" json:"sesion_created_at"`
	SesionUpdatedAt *time.Time     `gorm:"column:sesion_updated_at;autoUpdateTime" json:"sesion_updated_at,omitempty"`
	SesionDeletedAt gorm.DeletedAt `gorm:"column:sesion_deleted_at;index"          json:"sesion_deleted_at,omitempty"`
}

func (SesionModel) TableName() string { return "vm_sesiones" }
