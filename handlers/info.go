package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidgrab/vidgrab/extractor"
	"github.com/vidgrab/vidgrab/models"
)

type InfoHandler struct {
	registry *extractor.Registry
}

func NewInfoHandler(registry *extractor.Registry) *InfoHandler {
	return &InfoHandler{registry: registry}
}

// Handle fetches metadata and the selectable format list for a URL.
func (h *InfoHandler) Handle(c echo.Context) error {
	var req models.VideoInfoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please enter a video URL"})
	}

	ext, err := h.registry.Resolve(req.URL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please enter a valid video URL"})
	}

	info, err := ext.FetchInfo(c.Request().Context(), req.URL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Error loading video: " + err.Error()})
	}

	return c.JSON(http.StatusOK, info)
}
