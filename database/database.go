package database

import (
	"github.com/vidgrab/vidgrab/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the history database. An empty dsn disables persistence; the
// service runs fine without it.
func Init(dsn string) error {
	if dsn == "" {
		return nil
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return DB.AutoMigrate(&models.DownloadHistory{})
}

func Enabled() bool {
	return DB != nil
}

func SaveHistory(entry *models.DownloadHistory) error {
	if DB == nil {
		return nil
	}
	return DB.Create(entry).Error
}

func RecentHistory(n int) ([]models.DownloadHistory, error) {
	if DB == nil {
		return []models.DownloadHistory{}, nil
	}
	var entries []models.DownloadHistory
	result := DB.Order("created_at desc").Limit(n).Find(&entries)
	return entries, result.Error
}
