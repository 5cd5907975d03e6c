package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidgrab/vidgrab/services"
)

type FileHandler struct {
	coordinator *services.Coordinator
	storage     *services.StorageService
}

func NewFileHandler(coordinator *services.Coordinator, storage *services.StorageService) *FileHandler {
	return &FileHandler{coordinator: coordinator, storage: storage}
}

// Handle streams the completed artifact. Retrieval is repeatable; the file
// stays in place until the retention janitor reaps the job.
func (h *FileHandler) Handle(c echo.Context) error {
	job, err := h.coordinator.GetResult(c.Param("id"))
	if err != nil {
		var failed *services.JobFailedError
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Download not found"})
		case errors.Is(err, services.ErrNotReady):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Download not completed yet"})
		case errors.As(err, &failed):
			return c.JSON(http.StatusGone, map[string]string{"error": failed.Message})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	if !h.storage.FileExists(job.ResultPath) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "File not found"})
	}

	return c.Attachment(job.ResultPath, job.Filename)
}
