package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidgrab/vidgrab/extractor"
	"github.com/vidgrab/vidgrab/models"
	"github.com/vidgrab/vidgrab/services"
)

type DownloadHandler struct {
	coordinator *services.Coordinator
}

func NewDownloadHandler(coordinator *services.Coordinator) *DownloadHandler {
	return &DownloadHandler{coordinator: coordinator}
}

// Handle starts an asynchronous download and returns its job id.
func (h *DownloadHandler) Handle(c echo.Context) error {
	var req models.DownloadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	id, err := h.coordinator.StartDownload(req.URL, req.Itag)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing URL or quality selection"})
		case errors.Is(err, extractor.ErrUnsupportedPlatform):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please enter a valid video URL"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error starting download: " + err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"download_id": id})
}
