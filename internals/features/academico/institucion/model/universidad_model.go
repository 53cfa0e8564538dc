package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catálogos
var (
	TipoGestion          = []string{"PUBLICO", "PRIVADO"}
	EstadoLicenciamiento = []string{"LICENCIA_OTORGADA", "LICENCIA_DENEGADA", "EN_PROCESO", "NINGUNO"}
)

type UniversidadModel struct {
	UniversidadId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:universidad_id" json:"universidad_id"`

	UniversidadCodigo string `gorm:"uniqueIndex;not null;column:universidad_codigo" json:"universidad_codigo"`
	UniversidadNombre string `gorm:"not null;column:universidad_nombre"             json:"universidad_nombre"`

	UniversidadTipoGestion          string `gorm:"not null;default:PUBLICO;column:universidad_tipo_gestion"           json:"universidad_tipo_gestion"`
	UniversidadEstadoLicenciamiento string `gorm:"not null;default:NINGUNO;column:universidad_estado_licenciamiento" json:"universidad_estado_licenciamiento"`

	UniversidadCreatedAt time.Time      `gorm:"column:universidad_created_at;autoCreateTime" json:"universidad_created_at"`
	UniversidadUpdatedAt *time.Time     `gorm:"column:universidad_updated_at;autoUpdateTime" json:"universidad_updated_at,omitempty"`
	UniversidadDeletedAt gorm.DeletedAt `gorm:"column:universidad_deleted_at;index"          json:"universidad_deleted_at,omitempty"`
}

func (UniversidadModel) TableName() string { return "universidades" }

// Unica devuelve la única universidad del sistema; si no existe la crea
// con los valores base (invariante: a lo sumo un registro activo).
func Unica(db *gorm.DB) (*UniversidadModel, error) {
	var uni UniversidadModel
	err := db.Order("universidad_created_at ASC").First(&uni).Error
	if err == nil {
		return &uni, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	uni = UniversidadModel{
		UniversidadCodigo:               "UNI-001",
		UniversidadNombre:               "Universidad",
		UniversidadTipoGestion:          "PUBLICO",
		UniversidadEstadoLicenciamiento: "NINGUNO",
	}
	if err := db.Create(&uni).Error; err != nil {
		return nil, err
	}
	return &uni, nil
}
