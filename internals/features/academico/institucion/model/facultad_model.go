package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacultadModel struct {
	FacultadId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:facultad_id" json:"facultad_id"`

	FacultadUniversidadId uuid.UUID `gorm:"type:uuid;not null;column:facultad_universidad_id" json:"facultad_universidad_id"`

	FacultadCodigo string `gorm:"not null;column:facultad_codigo;uniqueIndex:uq_facultad_codigo,where:facultad_deleted_at IS NULL" json:"facultad_codigo"`
	FacultadNombre string `gorm:"not null;column:facultad_nombre" json:"facultad_nombre"`

	FacultadCreatedAt time.Time      `gorm:"column:facultad_created_at;autoCreateTime" json:"facultad_created_at"`
	FacultadUpdatedAt *time.Time     `gorm:"column:facultad_updated_at;autoUpdateTime" json:"facultad_updated_at,omitempty"`
	FacultadDeletedAt gorm.DeletedAt `gorm:"column:facultad_deleted_at;index"          json:"facultad_deleted_at,omitempty"`
}

func (FacultadModel) TableName() string { return "facultades" }
