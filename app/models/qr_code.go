package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qrplanet/qrplanet/internal/pkg/renderer"
)

// ErrTokenInvariant guards the structural rule that a redirect token is
// present exactly when the record is dynamic.
var ErrTokenInvariant = errors.New("redirect token must be set iff the QR code is dynamic")

// QRCode is a stored barcode record. For dynamic records the printed
// symbol encodes only the indirection URL built from RedirectToken; the
// destination lives in Content and can change without reprinting.
type QRCode struct {
	ID            uint               `gorm:"primaryKey" json:"-"`
	UUID          string             `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"qr_id"`
	UserID        uint               `gorm:"index" json:"user_id"`
	User          User               `gorm:"foreignKey:UserID" json:"-"`
	Name          string             `gorm:"type:varchar(255)" json:"name" validate:"required,max=255"`
	QRType        string             `gorm:"type:varchar(20);not null" json:"qr_type"`
	Content       JSON               `gorm:"type:json" json:"content"`
	IsDynamic     bool               `gorm:"default:false" json:"is_dynamic"`
	RedirectToken *string            `gorm:"type:varchar(64) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"redirect_token,omitempty"`
	Design        renderer.StyleSpec `gorm:"type:json" json:"design"`
	ScanCount     int64              `gorm:"default:0" json:"scan_count"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public UUID.
func (q *QRCode) BeforeCreate(tx *gorm.DB) error {
	if q.UUID == "" {
		q.UUID = uuid.New().String()
	}
	return nil
}

// BeforeSave enforces the token/dynamic invariant on every write path.
func (q *QRCode) BeforeSave(tx *gorm.DB) error {
	if q.IsDynamic != (q.RedirectToken != nil && *q.RedirectToken != "") {
		return ErrTokenInvariant
	}
	return nil
}

// MakeDynamic transitions the record to dynamic with a freshly
// allocated token. There is no dynamic-to-static transition.
func (q *QRCode) MakeDynamic(token string) error {
	if token == "" {
		return ErrTokenInvariant
	}
	q.IsDynamic = true
	q.RedirectToken = &token
	return nil
}

// RedirectURL builds the indirection URL baked into a dynamic symbol.
func (q *QRCode) RedirectURL(baseURL string) string {
	token := ""
	if q.RedirectToken != nil {
		token = *q.RedirectToken
	}
	return fmt.Sprintf("%s/r/%s", baseURL, token)
}

// FindQRCodeByUUID finds a QR code by its public UUID
func FindQRCodeByUUID(db *gorm.DB, uuid string) (*QRCode, error) {
	var code QRCode
	result := db.Where("uuid = ?", uuid).First(&code)
	return &code, result.Error
}

// FindQRCodeByRedirectToken finds a dynamic QR code by its indirection token
func FindQRCodeByRedirectToken(db *gorm.DB, token string) (*QRCode, error) {
	var code QRCode
	result := db.Where("redirect_token = ?", token).First(&code)
	return &code, result.Error
}
