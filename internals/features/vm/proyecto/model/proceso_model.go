package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcesoModel: fase de ejecución de un proyecto, ordenada por proceso_orden.
type ProcesoModel struct {
	ProcesoId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:proceso_id" json:"proceso_id"`

	ProcesoProyectoId uuid.UUID `gorm:"type:uuid;not null;column:proceso_proyecto_id" json:"proceso_proyecto_id"`

	ProcesoNombre      string  `gorm:"not null;column:proceso_nombre" json:"proceso_nombre"`
	ProcesoDescripcion *string `gorm:"column:proceso_descripcion"     json:"proceso_descripcion,omitempty"`
	ProcesoOrden       int     `gorm:"not null;default:1;column:proceso_orden" json:"proceso_orden"`

	ProcesoCreatedAt time.Time      `gorm:"column:proceso_created_at;autoCreateTime" json:"proceso_created_at"`
	ProcesoUpdatedAt *time.Time     `gorm:"column:proceso_updated_at;autoUpdateTime" json:"proceso_updated_at,omitempty"`
	ProcesoDeletedAt gorm.DeletedAt `gorm:"column:proceso_deleted_at;index"          json:"proceso_deleted_at,omitempty"`
}

func (ProcesoModel) TableName() string { return "vm_procesos" }
