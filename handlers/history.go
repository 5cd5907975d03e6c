package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidgrab/vidgrab/database"
	"github.com/vidgrab/vidgrab/services"
)

type HistoryHandler struct {
	store *services.JobStore
}

func NewHistoryHandler(store *services.JobStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// Recent lists snapshots of the newest jobs still held in memory.
func (h *HistoryHandler) Recent(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListRecent(20))
}

// Persisted lists completed downloads recorded in the database. Returns an
// empty list when history is disabled.
func (h *HistoryHandler) Persisted(c echo.Context) error {
	entries, err := database.RecentHistory(50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error loading history"})
	}
	return c.JSON(http.StatusOK, entries)
}
