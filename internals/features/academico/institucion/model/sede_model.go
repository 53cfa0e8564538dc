package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SedeModel struct {
	SedeId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:sede_id" json:"sede_id"`

	SedeUniversidadId uuid.UUID `gorm:"type:uuid;not null;column:sede_universidad_id" json:"sede_universidad_id"`

	SedeNombre string `gorm:"not null;column:sede_nombre" json:"sede_nombre"`

	SedeEsPrincipal    bool `gorm:"not null;default:false;column:sede_es_principal"    json:"sede_es_principal"`
	SedeEstaSuspendida bool `gorm:"not null;default:false;column:sede_esta_suspendida" json:"sede_esta_suspendida"`

	SedeCreatedAt time.Time      `gorm:"column:sede_created_at;autoCreateTime" json:"sede_created_at"`
	SedeUpdatedAt *time.Time     `gorm:"column:sede_updated_at;autoUpdateTime" json:"sede_updated_at,omitempty"`
	SedeDeletedAt gorm.DeletedAt `gorm:"column:sede_deleted_at;index"          json:"sede_deleted_at,omitempty"`
}

func (SedeModel) TableName() string { return "sedes" }
