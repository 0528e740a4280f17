package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qrplanet/qrplanet/app/models"
)

// scanEventRepository implements the ScanEventRepository interface
type scanEventRepository struct {
	db *gorm.DB
}

// NewScanEventRepository creates a new scan event repository instance
func NewScanEventRepository(db *gorm.DB) ScanEventRepository {
	return &scanEventRepository{db: db}
}

// Create appends a scan event. Events are insert-only.
func (r *scanEventRepository) Create(event *models.ScanEvent) error {
	return r.db.Create(event).Error
}

// GetRecentByQRCodeID returns the most recent scan events for a QR code
func (r *scanEventRepository) GetRecentByQRCodeID(qrCodeID uint, limit int) ([]models.ScanEvent, error) {
	var events []models.ScanEvent
	err := r.db.Where("qr_code_id = ?", qrCodeID).
		Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// CountByQRCodeID returns the total scan events for a QR code
func (r *scanEventRepository) CountByQRCodeID(qrCodeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ScanEvent{}).Where("qr_code_id = ?", qrCodeID).Count(&count).Error
	return count, err
}

// CountUniqueIPsByQRCodeID returns the number of distinct scanner IPs
func (r *scanEventRepository) CountUniqueIPsByQRCodeID(qrCodeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ScanEvent{}).
		Where("qr_code_id = ? AND ip <> ''", qrCodeID).
		Distinct("ip").Count(&count).Error
	return count, err
}

// DeviceBreakdownByQRCodeID aggregates scan counts per device class
func (r *scanEventRepository) DeviceBreakdownByQRCodeID(qrCodeID uint) (map[string]int64, error) {
	type row struct {
		Device string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&models.ScanEvent{}).
		Select("device, COUNT(*) as total").
		Where("qr_code_id = ?", qrCodeID).
		Group("device").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	breakdown := make(map[string]int64, len(rows))
	for _, r := range rows {
		breakdown[r.Device] = r.Total
	}
	return breakdown, nil
}

// ScansByDate aggregates daily scan counts since the given time
func (r *scanEventRepository) ScansByDate(qrCodeID uint, since time.Time) (map[string]int64, error) {
	type row struct {
		Day   string
		Total int64
	}
	var rows []row
	err := r.db.Model(&models.ScanEvent{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') as day, COUNT(*) as total").
		Where("qr_code_id = ? AND created_at >= ?", qrCodeID, since).
		Group("day").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDate[r.Day] = r.Total
	}
	return byDate, nil
}

// CountSince returns the number of scan events recorded since the given time
func (r *scanEventRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ScanEvent{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// Count returns the total number of scan events
func (r *scanEventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ScanEvent{}).Count(&count).Error
	return count, err
}
