package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PeriodoAcademicoModel struct {
	PeriodoId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:periodo_id" json:"periodo_id"`

	PeriodoCodigo      string    `gorm:"uniqueIndex;not null;column:periodo_codigo" json:"periodo_codigo"`
	PeriodoFechaInicio time.Time `gorm:"type:date;not null;column:periodo_fecha_inicio" json:"periodo_fecha_inicio"`
	PeriodoFechaFin    time.Time `gorm:"type:date;not null;column:periodo_fecha_fin"    json:"periodo_fecha_fin"`

	PeriodoCreatedAt time.Time      `gorm:"column:periodo_created_at;autoCreateTime" json:"periodo_created_at"`
	PeriodoUpdatedAt *time.Time     `gorm:"column:periodo_updated_at;autoUpdateTime" json:"periodo_updated_at,omitempty"`
	PeriodoDeletedAt gorm.DeletedAt `gorm:"column:periodo_deleted_at;index"          json:"periodo_deleted_at,omitempty"`
}

func (PeriodoAcademicoModel) TableName() string { return "periodos_academicos" }

// VigentePorFecha: periodo cuya ventana [inicio, fin] contiene la fecha.
func VigentePorFecha(db *gorm.DB, fecha time.Time) (*PeriodoAcademicoModel, error) {
	var p PeriodoAcademicoModel
	err := db.
		Where("periodo_fecha_inicio <= ?", fecha.Format("2006-01-02")).
		Where("periodo_fecha_fin >= ?", fecha.Format("2006-01-02")).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
