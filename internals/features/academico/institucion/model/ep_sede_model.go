package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EpSedeModel vincula una Escuela Profesional con una Sede (N:M).
// Es el ancla de scoping para expedientes, proyectos y eventos.
type EpSedeModel struct {
	EpSedeId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:ep_sede_id" json:"ep_sede_id"`

	EpSedeEscuelaId uuid.UUID `gorm:"type:uuid;not null;column:ep_sede_escuela_id;uniqueIndex:uq_ep_sede_par" json:"ep_sede_escuela_id"`
	EpSedeSedeId    uuid.UUID `gorm:"type:uuid;not null;column:ep_sede_sede_id;uniqueIndex:uq_ep_sede_par"    json:"ep_sede_sede_id"`

	EpSedeVigenteDesde *time.Time `gorm:"type:date;column:ep_sede_vigente_desde" json:"ep_sede_vigente_desde,omitempty"`
	EpSedeVigenteHasta *time.Time `gorm:"type:date;column:ep_sede_vigente_hasta" json:"ep_sede_vigente_hasta,omitempty"`

	EpSedeCreatedAt time.Time      `gorm:"column:ep_sede_created_at;autoCreateTime" json:"ep_sede_created_at"`
	EpSedeUpdatedAt *time.Time     `gorm:"column:ep_sede_updated_at;autoUpdateTime" json:"ep_sede_updated_at,omitempty"`
	EpSedeDeletedAt gorm.DeletedAt `gorm:"column:ep_sede_deleted_at;index"          json:"ep_sede_deleted_at,omitempty"`
}

func (EpSedeModel) TableName() string { return "ep_sede" }
