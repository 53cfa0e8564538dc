package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventoPlanificado = "PLANIFICADO"
	EventoEnCurso     = "EN_CURSO"
	EventoCerrado     = "CERRADO"
	EventoCancelado   = "CANCELADO"
)

// Alcances válidos del targetable de un evento.
const (
	TargetEpSede   = "ep_sede"
	TargetSede     = "sede"
	TargetFacultad = "facultad"
)

// EventoModel: actividad puntual dirigida a un alcance institucional
// (ep_sede, sede o facultad) dentro de un periodo académico.
type EventoModel struct {
	EventoId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:evento_id" json:"evento_id"`

	EventoPeriodoId uuid.UUID `gorm:"type:uuid;not null;column:evento_periodo_id" json:"evento_periodo_id"`

	EventoTargetableType string    `gorm:"not null;column:evento_targetable_type" json:"evento_targetable_type"`
	EventoTargetableId   uuid.UUID `gorm:"type:uuid;not null;column:evento_targetable_id" json:"evento_targetable_id"`

	EventoCodigo      string  `gorm:"uniqueIndex;not null;column:evento_codigo" json:"evento_codigo"`
	EventoTitulo      string  `gorm:"not null;column:evento_titulo"             json:"evento_titulo"`
	EventoDescripcion *string `gorm:"column:evento_descripcion"                 json:"evento_descripcion,omitempty"`

	EventoFecha      time.Time `gorm:"type:date;not null;column:evento_fecha" json:"evento_fecha"`
	EventoHoraInicio *string   `gorm:"column:evento_hora_inicio"              json:"evento_hora_inicio,omitempty"`
	EventoHoraFin    *string   `gorm:"column:evento_hora_fin"                 json:"evento_hora_fin,omitempty"`

	EventoRequiereInscripcion bool `gorm:"not null;default:false;column:evento_requiere_inscripcion" json:"evento_requiere_inscripcion"`
	EventoCupoMaximo          *int `gorm:"column:evento_cupo_maximo" json:"evento_cupo_maximo,omitempty"`

	EventoEstado string `gorm:"not null;default:PLANIFICADO;column:evento_estado" json:"evento_estado"`

	EventoCreadoPor *uuid.UUID        `gorm:"type:uuid;column:evento_creado_por" json:"evento_creado_por,omitempty"`
	EventoMeta      datatypes.JSONMap `gorm:"column:evento_meta"                 json:"evento_meta,omitempty"`

	EventoCreatedAt time.Time      `gorm:"column:evento_created_at;autoCreateTime" json:"evento_created_at"`
	EventoUpdatedAt *time.Time     `gorm:"column:evento_updated_at;autoUpdateTime" json:"evento_updated_at,omitempty"`
	EventoDeletedAt gorm.DeletedAt `gorm:"column:evento_deleted_at;index"          json:"evento_deleted_at,omitempty"`
}

func (EventoModel) TableName() string { return "vm_eventos" }
