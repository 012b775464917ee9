package handlers

import (
	"net/http"

	"triage/internal/store"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler returns the current dashboard snapshot
// @Summary Get analytics
// @Description Recompute and return the aggregate statistics for support-relevant emails
// @Tags analytics
// @Produce json
// @Success 200 {object} models.Analytics
// @Router /api/analytics [get]
func AnalyticsHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, st.Analytics())
	}
}
