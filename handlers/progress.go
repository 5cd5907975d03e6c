package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidgrab/vidgrab/models"
	"github.com/vidgrab/vidgrab/services"
)

type ProgressHandler struct {
	coordinator *services.Coordinator
}

func NewProgressHandler(coordinator *services.Coordinator) *ProgressHandler {
	return &ProgressHandler{coordinator: coordinator}
}

type progressResponse struct {
	Status   models.JobStatus `json:"status"`
	Progress int              `json:"progress"`
	Error    string           `json:"error,omitempty"`
}

// Handle reports the current job snapshot. Clients poll this once per
// second until they observe a terminal status.
func (h *ProgressHandler) Handle(c echo.Context) error {
	job, err := h.coordinator.GetProgress(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Download not found"})
	}

	return c.JSON(http.StatusOK, progressResponse{
		Status:   job.Status,
		Progress: job.Progress,
		Error:    job.Error,
	})
}
