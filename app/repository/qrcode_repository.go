package repository

import (
	"gorm.io/gorm"

	"github.com/qrplanet/qrplanet/app/models"
)

// qrCodeRepository implements the QRCodeRepository interface
type qrCodeRepository struct {
	db *gorm.DB
}

// NewQRCodeRepository creates a new QR code repository instance
func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

// Create creates a new QR code record
func (r *qrCodeRepository) Create(code *models.QRCode) error {
	return r.db.Create(code).Error
}

// GetByUUID retrieves a QR code by its public UUID
func (r *qrCodeRepository) GetByUUID(uuid string) (*models.QRCode, error) {
	var code models.QRCode
	err := r.db.Where("uuid = ?", uuid).First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// GetByUUIDAndUser retrieves a QR code scoped to its owner
func (r *qrCodeRepository) GetByUUIDAndUser(uuid string, userID uint) (*models.QRCode, error) {
	var code models.QRCode
	err := r.db.Where("uuid = ? AND user_id = ?", uuid, userID).First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// GetByRedirectToken retrieves a dynamic QR code by its indirection token
func (r *qrCodeRepository) GetByRedirectToken(token string) (*models.QRCode, error) {
	var code models.QRCode
	err := r.db.Where("redirect_token = ?", token).First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// GetByUserID retrieves all QR codes owned by a user, newest first
func (r *qrCodeRepository) GetByUserID(userID uint) ([]models.QRCode, error) {
	var codes []models.QRCode
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&codes).Error
	return codes, err
}

// GetStaticByUserID retrieves the user's static records (mass-upgrade input)
func (r *qrCodeRepository) GetStaticByUserID(userID uint) ([]models.QRCode, error) {
	var codes []models.QRCode
	err := r.db.Where("user_id = ? AND is_dynamic = ?", userID, false).Find(&codes).Error
	return codes, err
}

// Update updates an existing QR code record
func (r *qrCodeRepository) Update(code *models.QRCode) error {
	return r.db.Save(code).Error
}

// Delete soft-deletes a QR code by ID
func (r *qrCodeRepository) Delete(id uint) error {
	return r.db.Delete(&models.QRCode{}, id).Error
}

// Count returns the total number of QR codes
func (r *qrCodeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.QRCode{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of QR codes owned by a user
func (r *qrCodeRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.QRCode{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// IncrementScanCount increments the scan counter atomically in SQL,
// never read-then-write, so concurrent scans cannot lose increments.
func (r *qrCodeRepository) IncrementScanCount(id uint) error {
	return r.db.Model(&models.QRCode{}).Where("id = ?", id).
		UpdateColumn("scan_count", gorm.Expr("scan_count + 1")).Error
}

// ConvertStaticToDynamic flips a static record to dynamic with the
// given token. Already-dynamic records are left untouched so their
// printed tokens stay stable.
func (r *qrCodeRepository) ConvertStaticToDynamic(code *models.QRCode, token string) error {
	if code.IsDynamic {
		return nil
	}
	if err := code.MakeDynamic(token); err != nil {
		return err
	}
	return r.db.Save(code).Error
}
