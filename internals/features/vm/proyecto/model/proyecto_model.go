package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de proyecto: LIBRE (inscripción abierta) o VINCULADO (escalera de
// niveles 1..10). "PROYECTO" es un alias histórico de VINCULADO.
const (
	TipoLibre     = "LIBRE"
	TipoVinculado = "VINCULADO"

	EstadoPlanificado = "PLANIFICADO"
	EstadoEnCurso     = "EN_CURSO"
	EstadoCerrado     = "CERRADO"
	EstadoCancelado   = "CANCELADO"

	NivelMaximo = 10
)

type ProyectoModel struct {
	ProyectoId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:proyecto_id" json:"proyecto_id"`

	ProyectoEpSedeId  uuid.UUID `gorm:"type:uuid;not null;column:proyecto_ep_sede_id"  json:"proyecto_ep_sede_id"`
	ProyectoPeriodoId uuid.UUID `gorm:"type:uuid;not null;column:proyecto_periodo_id" json:"proyecto_periodo_id"`

	ProyectoCodigo      string  `gorm:"uniqueIndex;not null;column:proyecto_codigo" json:"proyecto_codigo"`
	ProyectoTitulo      string  `gorm:"not null;column:proyecto_titulo"             json:"proyecto_titulo"`
	ProyectoDescripcion *string `gorm:"column:proyecto_descripcion"                 json:"proyecto_descripcion,omitempty"`

	ProyectoTipo      string `gorm:"not null;column:proyecto_tipo"      json:"proyecto_tipo"`
	ProyectoModalidad string `gorm:"not null;column:proyecto_modalidad" json:"proyecto_modalidad"`
	ProyectoEstado    string `gorm:"not null;default:PLANIFICADO;column:proyecto_estado" json:"proyecto_estado"`

	// nivel 1..10 solo para VINCULADO; NULL en LIBRE
	ProyectoNivel *int `gorm:"column:proyecto_nivel" json:"proyecto_nivel,omitempty"`

	ProyectoHorasPlanificadas        int  `gorm:"not null;default:0;column:proyecto_horas_planificadas" json:"proyecto_horas_planificadas"`
	ProyectoHorasMinimasParticipante *int `gorm:"column:proyecto_horas_minimas_participante" json:"proyecto_horas_minimas_participante,omitempty"`

	ProyectoCreatedAt time.Time      `gorm:"column:proyecto_created_at;autoCreateTime" json:"proyecto_created_at"`
	ProyectoUpdatedAt *time.Time     `gorm:"column:proyecto_updated_at;autoUpdateTime" json:"proyecto_updated_at,omitempty"`
	ProyectoDeletedAt gorm.DeletedAt `gorm:"column:proyecto_deleted_at;index"          json:"proyecto_deleted_at,omitempty"`
}

func (ProyectoModel) TableName() string { return "vm_proyectos" }

// TipoNormalizado colapsa el alias histórico "PROYECTO" a VINCULADO.
func (p *ProyectoModel) TipoNormalizado() string {
	if p.ProyectoTipo == "PROYECTO" {
		return TipoVinculado
	}
	return p.ProyectoTipo
}

// EsVinculado incluye el alias histórico.
func (p *ProyectoModel) EsVinculado() bool {
	return p.TipoNormalizado() == TipoVinculado
}

// AdmiteInscripcion: PLANIFICADO o EN_CURSO.
func (p *ProyectoModel) AdmiteInscripcion() bool {
	return p.ProyectoEstado == EstadoPlanificado || p.ProyectoEstado == EstadoEnCurso
}

// MinutosRequeridos = horas mínimas del participante (o, en su defecto,
// horas planificadas) × 60.
func (p *ProyectoModel) MinutosRequeridos() int {
	h := p.ProyectoHorasPlanificadas
	if p.ProyectoHorasMinimasParticipante != nil && *p.ProyectoHorasMinimasParticipante > 0 {
		h = *p.ProyectoHorasMinimasParticipante
	}
	return h * 60
}
