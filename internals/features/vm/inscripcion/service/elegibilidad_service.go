package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "univm_backend/internals/helpers"

	prmodel "univm_backend/internals/features/vm/proyecto/model"
	sesmodel "univm_backend/internals/features/vm/sesion/model"
)

// PendienteVinculado describe un proyecto VINCULADO previo que el alumno
// no terminó: bloquea toda inscripción nueva a vinculados hasta cerrarse.
type PendienteVinculado struct {
	ProyectoId   uuid.UUID
	Nivel        *int
	Periodo      string
	RequeridoMin int
	AcumuladoMin int
	Cerrado      bool
}

func (p *PendienteVinculado) FaltanMin() int {
	f := p.RequeridoMin - p.AcumuladoMin
	if f < 0 {
		return 0
	}
	return f
}

// Snapshot reúne todo lo que la escalera necesita, ya cargado, para que
// la decisión sea pura y testeable sin base de datos.
type Snapshot struct {
	Proyecto           *prmodel.ProyectoModel
	ExpedienteEpSedeId uuid.UUID

	YaInscrito            bool
	Pendiente             *PendienteVinculado
	NivelPrevioFinalizado bool
	NivelYaCompletado     bool
}

// Evaluar recorre la escalera en orden y devuelve la primera falla.
// LIBRE solo pasa por las tres primeras reglas; la escalera de niveles
// es exclusiva de VINCULADO.
func Evaluar(s *Snapshot) *helper.Falla {
	p := s.Proyecto

	if !p.AdmiteInscripcion() {
		return helper.NuevaFalla("PROJECT_NOT_ACTIVE", "El proyecto no admite inscripciones en su estado actual",
			map[string]interface{}{"estado": p.ProyectoEstado})
	}

	if s.ExpedienteEpSedeId != p.ProyectoEpSedeId {
		return helper.NuevaFalla("DIFFERENT_EP_SEDE", "Tu expediente pertenece a otra escuela-sede",
			map[string]interface{}{"proyecto_ep_sede_id": p.ProyectoEpSedeId})
	}

	if s.YaInscrito {
		return helper.NuevaFalla("ALREADY_ENROLLED", "Ya estás inscrito en este proyecto", nil)
	}

	if !p.EsVinculado() {
		return nil
	}

	if s.Pendiente != nil {
		pe := s.Pendiente
		return helper.NuevaFalla("PENDING_LINKED_PREV", "Tienes un proyecto vinculado previo sin concluir",
			map[string]interface{}{
				"proyecto_id":   pe.ProyectoId,
				"nivel":         pe.Nivel,
				"periodo":       pe.Periodo,
				"requerido_min": pe.RequeridoMin,
				"acumulado_min": pe.AcumuladoMin,
				"faltan_min":    pe.FaltanMin(),
				"cerrado":       pe.Cerrado,
			})
	}

	nivel := 1
	if p.ProyectoNivel != nil {
		nivel = *p.ProyectoNivel
	}

	if nivel > 1 && !s.NivelPrevioFinalizado {
		return helper.NuevaFalla("LEVEL_NOT_ALLOWED", "Debes concluir el nivel anterior antes de inscribirte",
			map[string]interface{}{"nivel_requerido": nivel - 1})
	}

	if s.NivelYaCompletado {
		return helper.NuevaFalla("LEVEL_ALREADY_COMPLETED", "Ya completaste este nivel",
			map[string]interface{}{"nivel": nivel})
	}

	return nil
}

// ElegibilidadService: carga los snapshots desde la base y expone las
// agregaciones de minutos que la escalera y los listados comparten.
type ElegibilidadService struct {
	DB *gorm.DB
}

func NewElegibilidadService(db *gorm.DB) *ElegibilidadService {
	return &ElegibilidadService{DB: db}
}

// MinutosValidadosProyecto suma minutos VALIDADO del expediente en las
// sesiones de los procesos del proyecto. El join es directo sobre la
// cadena estructural, sin depender del discriminador polimórfico.
func (s *ElegibilidadService) MinutosValidadosProyecto(expedienteId, proyectoId uuid.UUID) (int, error) {
	var total int64
	err := s.DB.Table("vm_asistencias").
		Joins("JOIN vm_sesiones ON vm_sesiones.sesion_id = vm_asistencias.asistencia_sesion_id").
		Joins("JOIN vm_procesos ON vm_procesos.proceso_id = vm_sesiones.sesion_sessionable_id").
		Where("vm_sesiones.sesion_sessionable_type IN ?", sesmodel.AliasesProceso).
		Where("vm_asistencias.asistencia_expediente_id = ?", expedienteId).
		Where("vm_asistencias.asistencia_estado = ?", "VALIDADO").
		Where("vm_procesos.proceso_proyecto_id = ?", proyectoId).
		Select("COALESCE(SUM(vm_asistencias.asistencia_minutos_validados), 0)").
		Scan(&total).Error
	return int(total), err
}

// MinutosValidadosPorProyecto: la misma suma, en lote, para los listados.
func (s *ElegibilidadService) MinutosValidadosPorProyecto(expedienteId uuid.UUID, proyectoIds []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(proyectoIds))
	if len(proyectoIds) == 0 {
		return out, nil
	}
	var filas []struct {
		ProyectoId uuid.UUID `gorm:"column:proyecto_id"`
		Total      int64     `gorm:"column:total"`
	}
	err := s.DB.Table("vm_asistencias").
		Joins("JOIN vm_sesiones ON vm_sesiones.sesion_id = vm_asistencias.asistencia_sesion_id").
		Joins("JOIN vm_procesos ON vm_procesos.proceso_id = vm_sesiones.sesion_sessionable_id").
		Where("vm_sesiones.sesion_sessionable_type IN ?", sesmodel.AliasesProceso).
		Where("vm_asistencias.asistencia_expediente_id = ?", expedienteId).
		Where("vm_asistencias.asistencia_estado = ?", "VALIDADO").
		Where("vm_procesos.proceso_proyecto_id IN ?", proyectoIds).
		Select("vm_procesos.proceso_proyecto_id AS proyecto_id, COALESCE(SUM(vm_asistencias.asistencia_minutos_validados), 0) AS total").
		Group("vm_procesos.proceso_proyecto_id").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	for _, f := range filas {
		out[f.ProyectoId] = int(f.Total)
	}
	return out, nil
}

// participacionesVinculadasDe: proyectos VINCULADO donde el alumno tiene
// participación, con la fila de participación a mano.
func (s *ElegibilidadService) participacionesVinculadasDe(expedienteId uuid.UUID) ([]participacionProyecto, error) {
	var filas []participacionProyecto
	err := s.DB.Table("vm_participaciones").
		Joins("JOIN vm_proyectos ON vm_proyectos.proyecto_id = vm_participaciones.participacion_participable_id").
		Where("vm_participaciones.participacion_participable_type IN ?", sesmodel.AliasesProyecto).
		Where("vm_participaciones.participacion_expediente_id = ?", expedienteId).
		Where("vm_participaciones.participacion_deleted_at IS NULL").
		Where("vm_proyectos.proyecto_tipo IN ?", []string{prmodel.TipoVinculado, "PROYECTO"}).
		Select("vm_participaciones.participacion_estado, vm_proyectos.*").
		Scan(&filas).Error
	return filas, err
}

type participacionProyecto struct {
	ParticipacionEstado string `gorm:"column:participacion_estado"`
	prmodel.ProyectoModel
}

// participacionConcluida: la participación cuenta como concluida, sea por
// estado FINALIZADO o porque el acumulado alcanza lo requerido. Con
// requerido 0 la meta queda trivialmente cubierta (acumulado >= 0).
func participacionConcluida(f *participacionProyecto, acumulado int) bool {
	if f.ParticipacionEstado == prmodel.ParticipacionFinalizado {
		return true
	}
	return acumulado >= f.MinutosRequeridos()
}

// BuscarPendienteVinculado devuelve el primer vinculado previo no
// concluido: ni FINALIZADO por estado ni cubierto por horas.
func (s *ElegibilidadService) BuscarPendienteVinculado(expedienteId uuid.UUID, excluirProyectoId uuid.UUID) (*PendienteVinculado, error) {
	filas, err := s.participacionesVinculadasDe(expedienteId)
	if err != nil {
		return nil, err
	}
	for i := range filas {
		f := &filas[i]
		if f.ProyectoId == excluirProyectoId {
			continue
		}
		acumulado, err := s.MinutosValidadosProyecto(expedienteId, f.ProyectoId)
		if err != nil {
			return nil, err
		}
		if participacionConcluida(f, acumulado) {
			continue
		}
		periodo, _ := s.codigoPeriodo(f.ProyectoPeriodoId)
		return &PendienteVinculado{
			ProyectoId:   f.ProyectoId,
			Nivel:        f.ProyectoNivel,
			Periodo:      periodo,
			RequeridoMin: f.MinutosRequeridos(),
			AcumuladoMin: acumulado,
			Cerrado:      f.ProyectoEstado == prmodel.EstadoCerrado,
		}, nil
	}
	return nil, nil
}

func (s *ElegibilidadService) codigoPeriodo(periodoId uuid.UUID) (string, error) {
	var codigo string
	err := s.DB.Table("periodos_academicos").
		Where("periodo_id = ?", periodoId).
		Pluck("periodo_codigo", &codigo).Error
	return codigo, err
}

// NivelFinalizado: el alumno concluyó algún vinculado del nivel dado,
// sea por estado FINALIZADO o por horas acumuladas suficientes.
func (s *ElegibilidadService) NivelFinalizado(expedienteId uuid.UUID, nivel int) (bool, error) {
	filas, err := s.participacionesVinculadasDe(expedienteId)
	if err != nil {
		return false, err
	}
	for i := range filas {
		f := &filas[i]
		if f.ProyectoNivel == nil || *f.ProyectoNivel != nivel {
			continue
		}
		acumulado, err := s.MinutosValidadosProyecto(expedienteId, f.ProyectoId)
		if err != nil {
			return false, err
		}
		if participacionConcluida(f, acumulado) {
			return true, nil
		}
	}
	return false, nil
}

// NivelesCompletados: conjunto de niveles concluidos por el alumno.
func (s *ElegibilidadService) NivelesCompletados(expedienteId uuid.UUID) (map[int]bool, error) {
	filas, err := s.participacionesVinculadasDe(expedienteId)
	if err != nil {
		return nil, err
	}
	out := map[int]bool{}
	for i := range filas {
		f := &filas[i]
		if f.ProyectoNivel == nil {
			continue
		}
		nivel := *f.ProyectoNivel
		if out[nivel] {
			continue
		}
		acumulado, err := s.MinutosValidadosProyecto(expedienteId, f.ProyectoId)
		if err != nil {
			return nil, err
		}
		if participacionConcluida(f, acumulado) {
			out[nivel] = true
		}
	}
	return out, nil
}

// YaParticipa: existe participación del expediente en el proyecto, en
// cualquier estado.
func (s *ElegibilidadService) YaParticipa(expedienteId, proyectoId uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.Table("vm_participaciones").
		Where("participacion_participable_type IN ?", sesmodel.AliasesProyecto).
		Where("participacion_participable_id = ?", proyectoId).
		Where("participacion_expediente_id = ?", expedienteId).
		Where("participacion_deleted_at IS NULL").
		Count(&n).Error
	return n > 0, err
}

// CargarSnapshot arma el snapshot completo para Evaluar.
func (s *ElegibilidadService) CargarSnapshot(proyecto *prmodel.ProyectoModel, expedienteId, expedienteEpSedeId uuid.UUID) (*Snapshot, error) {
	snap := &Snapshot{
		Proyecto:           proyecto,
		ExpedienteEpSedeId: expedienteEpSedeId,
	}

	ya, err := s.YaParticipa(expedienteId, proyecto.ProyectoId)
	if err != nil {
		return nil, err
	}
	snap.YaInscrito = ya

	if !proyecto.EsVinculado() {
		return snap, nil
	}

	pend, err := s.BuscarPendienteVinculado(expedienteId, proyecto.ProyectoId)
	if err != nil {
		return nil, err
	}
	snap.Pendiente = pend

	nivel := 1
	if proyecto.ProyectoNivel != nil {
		nivel = *proyecto.ProyectoNivel
	}
	if nivel > 1 {
		ok, err := s.NivelFinalizado(expedienteId, nivel-1)
		if err != nil {
			return nil, err
		}
		snap.NivelPrevioFinalizado = ok
	}
	completado, err := s.NivelFinalizado(expedienteId, nivel)
	if err != nil {
		return nil, err
	}
	snap.NivelYaCompletado = completado

	return snap, nil
}
