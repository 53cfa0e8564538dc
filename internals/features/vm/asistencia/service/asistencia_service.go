package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "univm_backend/internals/helpers"

	asmodel "univm_backend/internals/features/vm/asistencia/model"
	sesmodel "univm_backend/internals/features/vm/sesion/model"
	sesservice "univm_backend/internals/features/vm/sesion/service"
)

// VentanaQrMinutos: vigencia por defecto de un token QR recién emitido.
const VentanaQrMinutos = 30

// AsistenciaService concentra emisión de tokens, validación de ventana y
// geocerca, y el upsert de asistencias y registro de horas.
type AsistenciaService struct {
	DB *gorm.DB
}

func NewAsistenciaService(db *gorm.DB) *AsistenciaService {
	return &AsistenciaService{DB: db}
}

// NuevoTokenHex: 16 bytes aleatorios en hex (32 caracteres).
func NuevoTokenHex() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generando token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerarTokenQr emite un token QR con ventana [ahora, ahora+30min].
func (s *AsistenciaService) GenerarTokenQr(sesionId uuid.UUID, creadoPor uuid.UUID, maxUsos *int, lat, lng *float64, radioM *int) (*sesmodel.QrTokenModel, error) {
	tok, err := NuevoTokenHex()
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	fila := sesmodel.QrTokenModel{
		QrTokenSesionId:   sesionId,
		QrTokenToken:      tok,
		QrTokenTipo:       sesmodel.TokenTipoQr,
		QrTokenUsableFrom: ahora,
		QrTokenExpiresAt:  ahora.Add(VentanaQrMinutos * time.Minute),
		QrTokenMaxUsos:    maxUsos,
		QrTokenActivo:     true,
		QrTokenCreadoPor:  &creadoPor,
		QrTokenLat:        lat,
		QrTokenLng:        lng,
		QrTokenRadioM:     radioM,
	}
	if err := s.DB.Create(&fila).Error; err != nil {
		return nil, err
	}
	return &fila, nil
}

// GenerarTokenManual emite (o reutiliza vía Create) un token MANUAL cuya
// ventana es la ventana extendida de la sesión.
func (s *AsistenciaService) GenerarTokenManual(ses *sesmodel.SesionModel, creadoPor uuid.UUID) (*sesmodel.QrTokenModel, error) {
	tok, err := NuevoTokenHex()
	if err != nil {
		return nil, err
	}
	desde, hasta := sesservice.VentanaSesion(ses)
	fila := sesmodel.QrTokenModel{
		QrTokenSesionId:   ses.SesionId,
		QrTokenToken:      tok,
		QrTokenTipo:       sesmodel.TokenTipoManual,
		QrTokenUsableFrom: desde,
		QrTokenExpiresAt:  hasta,
		QrTokenActivo:     true,
		QrTokenCreadoPor:  &creadoPor,
	}
	if err := s.DB.Create(&fila).Error; err != nil {
		return nil, err
	}
	return &fila, nil
}

// CheckVentana rechaza tokens inactivos, fuera de vigencia o sin cupo.
func CheckVentana(tok *sesmodel.QrTokenModel, ahora time.Time) *helper.Falla {
	if !tok.QrTokenActivo || ahora.Before(tok.QrTokenUsableFrom) || ahora.After(tok.QrTokenExpiresAt) {
		return helper.NuevaFalla("VENTANA_INVALIDA", "La ventana de asistencia no está activa", nil)
	}
	if tok.QrTokenMaxUsos != nil && tok.QrTokenUsos >= *tok.QrTokenMaxUsos {
		return helper.NuevaFalla("VENTANA_SIN_CUPO", "La ventana de asistencia agotó sus usos", nil)
	}
	return nil
}

// CheckGeocerca: si el token no trae geocerca no exige nada; con geocerca
// las coordenadas son obligatorias y deben caer dentro del radio.
func CheckGeocerca(tok *sesmodel.QrTokenModel, lat, lng *float64) *helper.Falla {
	if !tok.TieneGeocerca() {
		return nil
	}
	if lat == nil || lng == nil {
		return helper.NuevaFalla("GEO_REQUERIDA", "Esta sesión exige ubicación para registrar asistencia", nil)
	}
	d := DistanciaMetros(*tok.QrTokenLat, *tok.QrTokenLng, *lat, *lng)
	if d > *tok.QrTokenRadioM {
		return helper.NuevaFalla("FUERA_DE_RANGO", "Estás fuera del área permitida para esta sesión", map[string]interface{}{
			"distancia_m": d,
			"radio_m":     *tok.QrTokenRadioM,
		})
	}
	return nil
}

// DistanciaMetros: haversine sobre esfera de 6371 km, redondeada a metros.
func DistanciaMetros(lat1, lng1, lat2, lng2 float64) int {
	const radioTierraM = 6371000.0
	rad := func(g float64) float64 { return g * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(radioTierraM * c))
}

// DatosCheckIn agrupa lo que cada vía de check-in aporta al upsert.
type DatosCheckIn struct {
	SesionId        uuid.UUID
	ExpedienteId    uuid.UUID
	ParticipacionId *uuid.UUID
	QrTokenId       *uuid.UUID
	Metodo          string
	Meta            map[string]interface{}
}

// UpsertAsistencia crea o completa la asistencia de (sesión, expediente)
// dentro de tx. El check_in_at solo se fija la primera vez; la meta se
// fusiona clave a clave sin pisar el histórico.
func (s *AsistenciaService) UpsertAsistencia(tx *gorm.DB, d DatosCheckIn) (*asmodel.AsistenciaModel, error) {
	var fila asmodel.AsistenciaModel
	err := tx.Where("asistencia_sesion_id = ? AND asistencia_expediente_id = ?",
		d.SesionId, d.ExpedienteId).First(&fila).Error

	ahora := time.Now()
	switch {
	case err == gorm.ErrRecordNotFound:
		fila = asmodel.AsistenciaModel{
			AsistenciaSesionId:        d.SesionId,
			AsistenciaExpedienteId:    d.ExpedienteId,
			AsistenciaParticipacionId: d.ParticipacionId,
			AsistenciaQrTokenId:       d.QrTokenId,
			AsistenciaMetodo:          d.Metodo,
			AsistenciaEstado:          asmodel.AsistenciaPendiente,
			AsistenciaCheckInAt:       &ahora,
			AsistenciaMeta:            datatypes.JSONMap(d.Meta),
		}
		if err := tx.Create(&fila).Error; err != nil {
			return nil, err
		}
		return &fila, nil
	case err != nil:
		return nil, err
	}

	if fila.AsistenciaCheckInAt == nil {
		fila.AsistenciaCheckInAt = &ahora
	}
	fila.AsistenciaMetodo = d.Metodo
	if d.ParticipacionId != nil {
		fila.AsistenciaParticipacionId = d.ParticipacionId
	}
	if d.QrTokenId != nil {
		fila.AsistenciaQrTokenId = d.QrTokenId
	}
	if fila.AsistenciaMeta == nil {
		fila.AsistenciaMeta = datatypes.JSONMap{}
	}
	for k, v := range d.Meta {
		fila.AsistenciaMeta[k] = v
	}
	if err := tx.Save(&fila).Error; err != nil {
		return nil, err
	}
	return &fila, nil
}

// ConsumirToken incrementa usos en el motor, no en memoria, para que dos
// check-ins concurrentes no pierdan un conteo.
func (s *AsistenciaService) ConsumirToken(tx *gorm.DB, tokenId uuid.UUID) error {
	return tx.Model(&sesmodel.QrTokenModel{}).
		Where("qr_token_id = ?", tokenId).
		UpdateColumn("qr_token_usos", gorm.Expr("qr_token_usos + 1")).Error
}

// UpsertRegistroHoras escribe la fila del libro de horas de una asistencia.
// La clave es la asistencia: revalidar actualiza minutos, nunca duplica.
func (s *AsistenciaService) UpsertRegistroHoras(tx *gorm.DB, a *asmodel.AsistenciaModel, epSedeId uuid.UUID, periodoId *uuid.UUID, fecha time.Time, minutos int, actividad string) (*asmodel.RegistroHoraModel, error) {
	var reg asmodel.RegistroHoraModel
	err := tx.Where("registro_hora_asistencia_id = ?", a.AsistenciaId).First(&reg).Error

	switch {
	case err == gorm.ErrRecordNotFound:
		aid := a.AsistenciaId
		sid := a.AsistenciaSesionId
		reg = asmodel.RegistroHoraModel{
			RegistroHoraExpedienteId: a.AsistenciaExpedienteId,
			RegistroHoraEpSedeId:     epSedeId,
			RegistroHoraPeriodoId:    periodoId,
			RegistroHoraSesionId:     &sid,
			RegistroHoraAsistenciaId: &aid,
			RegistroHoraFecha:        fecha,
			RegistroHoraMinutos:      minutos,
			RegistroHoraActividad:    actividad,
			RegistroHoraEstado:       asmodel.RegistroAprobado,
		}
		if err := tx.Create(&reg).Error; err != nil {
			return nil, err
		}
		return &reg, nil
	case err != nil:
		return nil, err
	}

	reg.RegistroHoraMinutos = minutos
	reg.RegistroHoraActividad = actividad
	reg.RegistroHoraFecha = fecha
	reg.RegistroHoraEstado = asmodel.RegistroAprobado
	if periodoId != nil {
		reg.RegistroHoraPeriodoId = periodoId
	}
	if err := tx.Save(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}
