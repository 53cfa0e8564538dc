package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EscuelaProfesionalModel struct {
	EscuelaId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:escuela_id" json:"escuela_id"`

	EscuelaFacultadId uuid.UUID `gorm:"type:uuid;not null;column:escuela_facultad_id" json:"escuela_facultad_id"`

	EscuelaCodigo string `gorm:"not null;column:escuela_codigo" json:"escuela_codigo"`
	EscuelaNombre string `gorm:"not null;column:escuela_nombre" json:"escuela_nombre"`

	EscuelaCreatedAt time.Time      `gorm:"column:escuela_created_at;autoCreateTime" json:"escuela_created_at"`
	EscuelaUpdatedAt *time.Time     `gorm:"column:escuela_updated_at;autoUpdateTime" json:"escuela_updated_at,omitempty"`
	EscuelaDeletedAt gorm.DeletedAt `gorm:"column:escuela_deleted_at;index"          json:"escuela_deleted_at,omitempty"`
}

func (EscuelaProfesionalModel) TableName() string { return "escuelas_profesionales" }
