package services

import (
	"os"
	"path/filepath"

	"github.com/vidgrab/vidgrab/utils"
)

// StorageService answers questions about the completed-downloads directory.
type StorageService struct {
	CompletedDir string
}

func NewStorageService(completedDir string) *StorageService {
	return &StorageService{CompletedDir: completedDir}
}

func (s *StorageService) GetFormattedFileSize(filename string) string {
	if filename == "" {
		return "0 Bytes"
	}

	info, err := os.Stat(filepath.Join(s.CompletedDir, filename))
	if err != nil {
		return "0 Bytes"
	}
	return s.FormatFileSize(info.Size())
}

func (s *StorageService) FormatFileSize(bytes int64) string {
	return utils.FormatFileSize(bytes)
}

func (s *StorageService) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
