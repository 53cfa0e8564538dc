package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TokenTipoQr     = "QR"
	TokenTipoManual = "MANUAL"
)

// QrTokenModel: ventana de check-in de una sesión. Los QR llevan token de
// 32 hex; los MANUAL solo habilitan el registro por código de estudiante.
type QrTokenModel struct {
	QrTokenId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:qr_token_id" json:"qr_token_id"`

	QrTokenSesionId uuid.UUID `gorm:"type:uuid;not null;index;column:qr_token_sesion_id" json:"qr_token_sesion_id"`

	QrTokenToken string `gorm:"uniqueIndex;not null;column:qr_token_token" json:"qr_token_token"`
	QrTokenTipo  string `gorm:"not null;default:QR;column:qr_token_tipo"   json:"qr_token_tipo"`

	QrTokenUsableFrom time.Time `gorm:"not null;column:qr_token_usable_from" json:"qr_token_usable_from"`
	QrTokenExpiresAt  time.Time `gorm:"not null;column:qr_token_expires_at"  json:"qr_token_expires_at"`

	QrTokenMaxUsos *int `gorm:"column:qr_token_max_usos"            json:"qr_token_max_usos,omitempty"`
	QrTokenUsos    int  `gorm:"not null;default:0;column:qr_token_usos" json:"qr_token_usos"`

	QrTokenActivo bool `gorm:"not null;default:true;column:qr_token_activo" json:"qr_token_activo"`

	QrTokenCreadoPor *uuid.UUID `gorm:"type:uuid;column:qr_token_creado_por" json:"qr_token_creado_por,omitempty"`

	// geocerca opcional: si los tres campos están, el check-in exige coordenadas
	QrTokenLat    *float64 `gorm:"column:qr_token_lat"     json:"qr_token_lat,omitempty"`
	QrTokenLng    *float64 `gorm:"column:qr_token_lng"     json:"qr_token_lng,omitempty"`
	QrTokenRadioM *int     `gorm:"column:qr_token_radio_m" json:"qr_token_radio_m,omitempty"`

	QrTokenMeta datatypes.JSONMap `gorm:"column:qr_token_meta" json:"qr_token_meta,omitempty"`

	QrTokenCreatedAt time.Time  `gorm:"column:qr_token_created_at;autoCreateTime" json:"qr_token_created_at"`
	QrTokenUpdatedAt *time.Time `gorm:"column:qr_token_updated_at;autoUpdateTime" json:"qr_token_updated_at,omitempty"`
}

func (QrTokenModel) TableName() string { return "vm_qr_tokens" }

// TieneGeocerca: los tres campos configurados.
func (t *QrTokenModel) TieneGeocerca() bool {
	return t.QrTokenLat != nil && t.QrTokenLng != nil && t.QrTokenRadioM != nil
}
