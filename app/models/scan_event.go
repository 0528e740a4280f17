package models

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// ScanEvent is an append-only analytics row recorded once per resolved
// scan. Events are owned by the analytics store and never mutated.
type ScanEvent struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	UUID     string `gorm:"type:varchar(40) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"scan_id"`
	QRCodeID uint   `gorm:"index;not null" json:"-"`
	QRCode   QRCode `gorm:"foreignKey:QRCodeID" json:"-"`
	QRUUID   string `gorm:"type:char(36);index" json:"qr_id"`
	UserID   uint   `gorm:"index" json:"user_id"`
	Device   string `gorm:"type:varchar(20)" json:"device"`
	Browser  string `gorm:"type:varchar(30)" json:"browser"`
	OS       string `gorm:"type:varchar(30)" json:"os"`
	IP       string `gorm:"type:varchar(45)" json:"ip_address"`
	// Reserved for IP geolocation; not populated.
	Country   *string   `gorm:"type:varchar(64);default:null" json:"country"`
	City      *string   `gorm:"type:varchar(128);default:null" json:"city"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// BeforeCreate assigns the public scan ID.
func (s *ScanEvent) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		id, err := gonanoid.New(12)
		if err != nil {
			return err
		}
		s.UUID = "scan_" + id
	}
	return nil
}
