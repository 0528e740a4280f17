package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/qrplanet/qrplanet/app/models"
	"github.com/qrplanet/qrplanet/internal/pkg/cache"
	"github.com/qrplanet/qrplanet/internal/pkg/database"
)

const (
	CacheKeyCodesTotal = "statistics:qrcodes:total"
	CacheKeyScansDaily = "statistics:scans:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers      = "statistics:users:total"
	CacheExpiration    = 30 * time.Minute
)

// StatisticsData holds the aggregate counters surfaced on the status endpoint
type StatisticsData struct {
	TodayScans int
	TotalUsers int
	TotalCodes int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cache refresh interval has elapsed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalCodes int64
	if err := db.Model(&models.QRCode{}).Count(&totalCodes).Error; err != nil {
		log.Printf("Error counting total QR codes: %v", err)
		return err
	}

	var todayScans int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.ScanEvent{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayScans).Error; err != nil {
		log.Printf("Error counting today's scans: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyCodesTotal, strconv.FormatInt(totalCodes, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total QR codes: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyScansDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayScans, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's scans: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	return nil
}

// GetTotalCodes returns the total number of QR codes from cache or database
func GetTotalCodes() int {
	val, err := cache.Get(CacheKeyCodesTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.QRCode{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total QR codes: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyCodesTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total QR codes: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayScans returns the number of scans recorded today from cache or database
func GetTodayScans() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyScansDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.ScanEvent{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's scans: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's scans: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of users from cache or database
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsers)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all statistics data as StatisticsData structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayScans: GetTodayScans(),
		TotalUsers: GetTotalUsers(),
		TotalCodes: GetTotalCodes(),
	}
}
