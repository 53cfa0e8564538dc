package dto

import (
	"github.com/google/uuid"

	model "univm_backend/internals/features/academico/expediente/model"
)

type CreateExpedienteRequest struct {
	ExpedienteUserId   uuid.UUID `json:"expediente_user_id" validate:"required"`
	ExpedienteEpSedeId uuid.UUID `json:"expediente_ep_sede_id" validate:"required"`

	ExpedienteCodigoEstudiante    *string `json:"expediente_codigo_estudiante" validate:"omitempty,max=20"`
	ExpedienteGrupo               *string `json:"expediente_grupo" validate:"omitempty,max=20"`
	ExpedienteCorreoInstitucional *string `json:"expediente_correo_institucional" validate:"omitempty,email"`

	ExpedienteRol *string `json:"expediente_rol" validate:"omitempty,oneof=ESTUDIANTE COORDINADOR ENCARGADO"`
}

func (r *CreateExpedienteRequest) ToModel() *model.ExpedienteAcademicoModel {
	m := &model.ExpedienteAcademicoModel{
		ExpedienteUserId:              r.ExpedienteUserId,
		ExpedienteEpSedeId:            r.ExpedienteEpSedeId,
		ExpedienteCodigoEstudiante:    r.ExpedienteCodigoEstudiante,
		ExpedienteGrupo:               r.ExpedienteGrupo,
		ExpedienteCorreoInstitucional: r.ExpedienteCorreoInstitucional,
		ExpedienteRol:                 model.RolEstudiante,
		ExpedienteEstado:              model.EstadoActivo,
	}
	if r.ExpedienteRol != nil {
		m.ExpedienteRol = *r.ExpedienteRol
	}
	return m
}

// AssignResponsableRequest: designación de coordinador o encargado de una
// EP-Sede. El rol lo fija la ruta, no el body.
type AssignResponsableRequest struct {
	UserId   uuid.UUID `json:"user_id" validate:"required"`
	EpSedeId uuid.UUID `json:"ep_sede_id" validate:"required"`

	CodigoEstudiante    *string `json:"codigo_estudiante" validate:"omitempty,max=20"`
	CorreoInstitucional *string `json:"correo_institucional" validate:"omitempty,email"`
}
