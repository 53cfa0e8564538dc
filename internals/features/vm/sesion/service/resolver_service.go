package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	evmodel "univm_backend/internals/features/vm/evento/model"
	prmodel "univm_backend/internals/features/vm/proyecto/model"
	sesmodel "univm_backend/internals/features/vm/sesion/model"
)

// DatosSesion es lo que el resto del módulo necesita saber de una sesión:
// quién es su dueño y en qué ep_sede/periodo vive.
type DatosSesion struct {
	Tipo      sesmodel.OwnerKind
	DuenoId   uuid.UUID
	EpSedeId  *uuid.UUID
	PeriodoId *uuid.UUID

	// participable al que se inscribe la gente: el proyecto del proceso
	// dueño, o el evento mismo
	ParticipableTag string
	ParticipableId  uuid.UUID
}

// ResolverService resuelve el dueño polimórfico de las sesiones y la
// aritmética de ventanas horarias.
type ResolverService struct {
	DB *gorm.DB
}

func NewResolverService(db *gorm.DB) *ResolverService {
	return &ResolverService{DB: db}
}

// DatosDesdeSesion intenta primero la resolución estructural por alias del
// discriminador; si el tag no se reconoce cae al rastreo por substring con
// join manual contra ambas tablas candidatas.
func (s *ResolverService) DatosDesdeSesion(ses *sesmodel.SesionModel) (*DatosSesion, error) {
	kind := sesmodel.KindDe(ses.SesionSessionableType)

	switch kind {
	case sesmodel.OwnerProceso:
		return s.datosDesdeProceso(ses.SesionSessionableId)
	case sesmodel.OwnerEvento:
		return s.datosDesdeEvento(ses.SesionSessionableId)
	}

	// discriminador irreconocible: probar ambos lados por existencia
	if d, err := s.datosDesdeProceso(ses.SesionSessionableId); err == nil {
		return d, nil
	}
	if d, err := s.datosDesdeEvento(ses.SesionSessionableId); err == nil {
		return d, nil
	}
	return &DatosSesion{Tipo: sesmodel.OwnerDesconocido}, nil
}

func (s *ResolverService) datosDesdeProceso(procesoId uuid.UUID) (*DatosSesion, error) {
	var proceso prmodel.ProcesoModel
	if err := s.DB.First(&proceso, "proceso_id = ?", procesoId).Error; err != nil {
		return nil, err
	}
	var proyecto prmodel.ProyectoModel
	if err := s.DB.First(&proyecto, "proyecto_id = ?", proceso.ProcesoProyectoId).Error; err != nil {
		return nil, err
	}
	ep := proyecto.ProyectoEpSedeId
	per := proyecto.ProyectoPeriodoId
	return &DatosSesion{
		Tipo:            sesmodel.OwnerProceso,
		DuenoId:         proceso.ProcesoId,
		EpSedeId:        &ep,
		PeriodoId:       &per,
		ParticipableTag: sesmodel.TagProyecto,
		ParticipableId:  proyecto.ProyectoId,
	}, nil
}

func (s *ResolverService) datosDesdeEvento(eventoId uuid.UUID) (*DatosSesion, error) {
	var evento evmodel.EventoModel
	if err := s.DB.First(&evento, "evento_id = ?", eventoId).Error; err != nil {
		return nil, err
	}
	d := &DatosSesion{
		Tipo:            sesmodel.OwnerEvento,
		DuenoId:         evento.EventoId,
		PeriodoId:       &evento.EventoPeriodoId,
		ParticipableTag: sesmodel.TagEvento,
		ParticipableId:  evento.EventoId,
	}
	// solo los eventos dirigidos a una ep_sede concreta tienen ep_sede
	if evento.EventoTargetableType == evmodel.TargetEpSede {
		ep := evento.EventoTargetableId
		d.EpSedeId = &ep
	}
	return d, nil
}

// NormalizarHora acepta "HH:MM" o "HH:MM:SS" y devuelve "HH:MM:SS".
// Ante cualquier otra forma intenta un parse laxo y si falla devuelve
// el valor original (mejor un error aguas abajo que perder el dato).
func NormalizarHora(h string) string {
	h = strings.TrimSpace(h)
	if t, err := time.Parse("15:04:05", h); err == nil {
		return t.Format("15:04:05")
	}
	if t, err := time.Parse("15:04", h); err == nil {
		return t.Format("15:04:05")
	}
	if t, err := time.Parse("3:04 PM", h); err == nil {
		return t.Format("15:04:05")
	}
	return h
}

// horaEn compone fecha + hora de forma explícita. Componer en vez de
// parsear el string completo evita el clásico doble-fechado cuando la
// hora viene ya con fecha pegada.
func horaEn(fecha time.Time, hora string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04:05", NormalizarHora(hora), fecha.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("hora inválida %q: %w", hora, err)
	}
	return time.Date(fecha.Year(), fecha.Month(), fecha.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, fecha.Location()), nil
}

// VentanaSesion calcula la ventana extendida de asistencia:
//   - inicio y fin presentes  → [inicio-1h, fin+1h]
//   - solo inicio             → [inicio-1h, inicio+2h]
//   - solo fin                → [fin-2h, fin+1h]
//   - ninguno                 → todo el día de la sesión
func VentanaSesion(ses *sesmodel.SesionModel) (time.Time, time.Time) {
	fecha := ses.SesionFecha

	var ini, fin *time.Time
	if ses.SesionHoraInicio != nil {
		if t, err := horaEn(fecha, *ses.SesionHoraInicio); err == nil {
			ini = &t
		}
	}
	if ses.SesionHoraFin != nil {
		if t, err := horaEn(fecha, *ses.SesionHoraFin); err == nil {
			fin = &t
		}
	}

	switch {
	case ini != nil && fin != nil:
		return ini.Add(-time.Hour), fin.Add(time.Hour)
	case ini != nil:
		return ini.Add(-time.Hour), ini.Add(2 * time.Hour)
	case fin != nil:
		return fin.Add(-2 * time.Hour), fin.Add(time.Hour)
	}

	desde := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	hasta := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 23, 59, 59, 0, fecha.Location())
	return desde, hasta
}

// EstadoSinAsistencia: estado calculado de un participante sin registro
// de asistencia. FALTA si el instante ya quedó fuera de la ventana de la
// sesión (antes de abrir o después de cerrar); en blanco si la ventana
// sigue abierta (indeterminado).
func EstadoSinAsistencia(ses *sesmodel.SesionModel, ahora time.Time) string {
	ini, fin := VentanaSesion(ses)
	if ahora.Before(ini) || ahora.After(fin) {
		return "FALTA"
	}
	return ""
}

// MinutosSesion: duración programada en minutos, nunca negativa. Sin
// ambas horas no hay duración que acreditar.
func MinutosSesion(ses *sesmodel.SesionModel) int {
	if ses.SesionHoraInicio == nil || ses.SesionHoraFin == nil {
		return 0
	}
	ini, err1 := horaEn(ses.SesionFecha, *ses.SesionHoraInicio)
	fin, err2 := horaEn(ses.SesionFecha, *ses.SesionHoraFin)
	if err1 != nil || err2 != nil {
		return 0
	}
	m := int(fin.Sub(ini).Minutes())
	if m < 0 {
		return 0
	}
	return m
}
