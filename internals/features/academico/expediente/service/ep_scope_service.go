// file: internals/features/academico/expediente/service/ep_scope_service.go
package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"univm_backend/internals/constants"
	expModel "univm_backend/internals/features/academico/expediente/model"
)

// EpScopeService responde "¿el usuario U gestiona / pertenece a la unidad X?".
// Solo lectura; sin efectos secundarios.
type EpScopeService struct {
	DB *gorm.DB

	// Columna FK de usuario resuelta una sola vez al construir el
	// servicio (instalaciones viejas usan expediente_usuario_id).
	userCol string
}

func NewEpScopeService(db *gorm.DB) *EpScopeService {
	col := "expediente_user_id"
	var n int64
	err := db.Raw(
		`SELECT COUNT(*) FROM information_schema.columns
		  WHERE table_name = 'expedientes_academicos' AND column_name = 'expediente_user_id'`,
	).Scan(&n).Error
	if err != nil {
		log.Printf("[WARN] ep_scope: no se pudo inspeccionar el esquema (%v), asumiendo %s", err, col)
	} else if n == 0 {
		col = "expediente_usuario_id"
		log.Printf("[INFO] ep_scope: columna legacy detectada, usando %s", col)
	}
	return &EpScopeService{DB: db, userCol: col}
}

// UserCol expone la columna FK resuelta (para queries crudas de otros módulos).
func (s *EpScopeService) UserCol() string { return s.userCol }

// UserManagesEpSede: rol staff ACTIVO directamente sobre la EP_SEDE.
func (s *EpScopeService) UserManagesEpSede(userID, epSedeID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.Model(&expModel.ExpedienteAcademicoModel{}).
		Where(s.userCol+" = ?", userID).
		Where("expediente_ep_sede_id = ?", epSedeID).
		Where("expediente_estado = ?", expModel.EstadoActivo).
		Where("expediente_rol IN ?", constants.StaffRoles).
		Count(&n).Error
	return n > 0, err
}

// UserManagesSede: rol staff ACTIVO sobre alguna EP_SEDE de esa sede.
func (s *EpScopeService) UserManagesSede(userID, sedeID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.Table("expedientes_academicos AS e").
		Joins("JOIN ep_sede AS es ON es.ep_sede_id = e.expediente_ep_sede_id").
		Where("e."+s.userCol+" = ?", userID).
		Where("e.expediente_estado = ?", expModel.EstadoActivo).
		Where("e.expediente_rol IN ?", constants.StaffRoles).
		Where("es.ep_sede_sede_id = ?", sedeID).
		Count(&n).Error
	return n > 0, err
}

// UserManagesFacultad: rol staff ACTIVO sobre alguna EP_SEDE cuya escuela
// pertenece a la facultad.
func (s *EpScopeService) UserManagesFacultad(userID, facultadID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.Table("expedientes_academicos AS e").
		Joins("JOIN ep_sede AS es ON es.ep_sede_id = e.expediente_ep_sede_id").
		Joins("JOIN escuelas_profesionales AS ep ON ep.escuela_id = es.ep_sede_escuela_id").
		Where("e."+s.userCol+" = ?", userID).
		Where("e.expediente_estado = ?", expModel.EstadoActivo).
		Where("e.expediente_rol IN ?", constants.StaffRoles).
		Where("ep.escuela_facultad_id = ?", facultadID).
		Count(&n).Error
	return n > 0, err
}

// EpSedesManagedBy: ids de EP_SEDE que el usuario administra (autorización
// en bloque para listados).
func (s *EpScopeService) EpSedesManagedBy(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.Model(&expModel.ExpedienteAcademicoModel{}).
		Distinct("expediente_ep_sede_id").
		Where(s.userCol+" = ?", userID).
		Where("expediente_estado = ?", expModel.EstadoActivo).
		Where("expediente_rol IN ?", constants.StaffRoles).
		Pluck("expediente_ep_sede_id", &ids).Error
	return ids, err
}

// UserBelongsToEpSede: cualquier expediente ACTIVO, cualquier rol.
func (s *EpScopeService) UserBelongsToEpSede(userID, epSedeID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.Model(&expModel.ExpedienteAcademicoModel{}).
		Where(s.userCol+" = ?", userID).
		Where("expediente_ep_sede_id = ?", epSedeID).
		Where("expediente_estado = ?", expModel.EstadoActivo).
		Count(&n).Error
	return n > 0, err
}

// ExpedientePorUser: expediente del usuario en una EP_SEDE concreta.
func (s *EpScopeService) ExpedientePorUser(userID, epSedeID uuid.UUID) (*expModel.ExpedienteAcademicoModel, error) {
	var exp expModel.ExpedienteAcademicoModel
	err := s.DB.
		Where(s.userCol+" = ?", userID).
		Where("expediente_ep_sede_id = ?", epSedeID).
		First(&exp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// ExpedienteActivo: expediente ACTIVO más reciente del usuario (cualquier EP_SEDE).
func (s *EpScopeService) ExpedienteActivo(userID uuid.UUID) (*expModel.ExpedienteAcademicoModel, error) {
	var exp expModel.ExpedienteAcademicoModel
	err := s.DB.
		Where(s.userCol+" = ?", userID).
		Where("expediente_estado = ?", expModel.EstadoActivo).
		Order("expediente_created_at DESC").
		First(&exp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exp, nil
}
