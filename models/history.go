package models

import "time"

// DownloadHistory is the persisted record of a completed download.
type DownloadHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VideoTitle   string    `gorm:"size:500" json:"videoTitle"`
	VideoURL     string    `gorm:"size:1000" json:"videoUrl"`
	VideoID      string    `gorm:"size:50" json:"videoId"`
	Author       string    `gorm:"size:200" json:"author"`
	Duration     int       `json:"duration"` // seconds
	Quality      string    `gorm:"size:50" json:"quality"`
	DownloadType string    `gorm:"size:20" json:"downloadType"`
	FileSize     int64     `json:"fileSize"`
	Itag         string    `gorm:"size:50" json:"itag"`
	CreatedAt    time.Time `json:"createdAt"`
}
