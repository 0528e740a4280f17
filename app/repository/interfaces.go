package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qrplanet/qrplanet/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePlan(userID uint, plan string) error
	Delete(id uint) error
	Count() (int64, error)
}

// QRCodeRepository defines the interface for QR code database operations
type QRCodeRepository interface {
	Create(code *models.QRCode) error
	GetByUUID(uuid string) (*models.QRCode, error)
	GetByUUIDAndUser(uuid string, userID uint) (*models.QRCode, error)
	GetByRedirectToken(token string) (*models.QRCode, error)
	GetByUserID(userID uint) ([]models.QRCode, error)
	GetStaticByUserID(userID uint) ([]models.QRCode, error)
	Update(code *models.QRCode) error
	Delete(id uint) error
	Count() (int64, error)
	CountByUserID(userID uint) (int64, error)
	// IncrementScanCount performs an atomic in-database increment so
	// concurrent scans never lose a count.
	IncrementScanCount(id uint) error
	// ConvertStaticToDynamic flips a static record to dynamic with the
	// given freshly allocated token. Shared by the owner-initiated
	// upgrade and the billing mass-upgrade.
	ConvertStaticToDynamic(code *models.QRCode, token string) error
}

// ScanEventRepository defines the interface for scan analytics storage
type ScanEventRepository interface {
	Create(event *models.ScanEvent) error
	GetRecentByQRCodeID(qrCodeID uint, limit int) ([]models.ScanEvent, error)
	CountByQRCodeID(qrCodeID uint) (int64, error)
	CountUniqueIPsByQRCodeID(qrCodeID uint) (int64, error)
	DeviceBreakdownByQRCodeID(qrCodeID uint) (map[string]int64, error)
	ScansByDate(qrCodeID uint, since time.Time) (map[string]int64, error)
	CountSince(since time.Time) (int64, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User      UserRepository
	QRCode    QRCodeRepository
	ScanEvent ScanEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		QRCode:    NewQRCodeRepository(db),
		ScanEvent: NewScanEventRepository(db),
	}
}
