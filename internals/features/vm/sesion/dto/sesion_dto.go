package dto

import (
	"time"

	"github.com/google/uuid"

	model "univm_backend/internals/features/vm/sesion/model"
)

// SesionInput: una sesión del lote. La fecha viaja como YYYY-MM-DD.
type SesionInput struct {
	SesionNombre     *string `json:"sesion_nombre" validate:"omitempty,max=200"`
	SesionFecha      string  `json:"sesion_fecha" validate:"required,datetime=2006-01-02"`
	SesionHoraInicio *string `json:"sesion_hora_inicio" validate:"omitempty,max=8"`
	SesionHoraFin    *string `json:"sesion_hora_fin" validate:"omitempty,max=8"`
	SesionLugar      *string `json:"sesion_lugar" validate:"omitempty,max=200"`
}

type CreateSesionesRequest struct {
	Sesiones []SesionInput `json:"sesiones" validate:"required,min=1,dive"`
}

func (i *SesionInput) ToModel(ownerTag string, ownerId uuid.UUID) (*model.SesionModel, error) {
	fecha, err := time.ParseInLocation("2006-01-02", i.SesionFecha, time.Local)
	if err != nil {
		return nil, err
	}
	return &model.SesionModel{
		SesionSessionableType: ownerTag,
		SesionSessionableId:   ownerId,
		SesionNombre:          i.SesionNombre,
		SesionFecha:           fecha,
		SesionHoraInicio:      i.SesionHoraInicio,
		SesionHoraFin:         i.SesionHoraFin,
		SesionLugar:           i.SesionLugar,
	}, nil
}
