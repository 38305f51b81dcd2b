package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleet-agenda-api-server/internal/schedule"
	"fleet-agenda-api-server/internal/store"
)

type ReportHandler struct {
	Store *store.Store
}

type folgasParams struct {
	year                int
	month               time.Month
	topN                int
	countVacationAsRest bool
}

// parseFolgasParams reads the report query. The vacation toggle defaults
// to on: the standard view counts FE days as taken folgas.
func parseFolgasParams(c *gin.Context) (folgasParams, error) {
	var p folgasParams

	year, errY := strconv.Atoi(c.Query("year"))
	monthNum, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || monthNum < 1 || monthNum > 12 {
		return p, errors.New("year and month (1..12) are required")
	}
	p.year = year
	p.month = time.Month(monthNum)

	p.topN = schedule.DefaultRankingSize
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, errors.New("top must be a number")
		}
		p.topN = n
	}

	p.countVacationAsRest = c.DefaultQuery("countVacationAsRest", "true") == "true"
	return p, nil
}

// GetFolgas builds the day-off balance report for one month: per-driver
// worked/rest/vacation counts, the earned-day-off arithmetic, and the
// most-worked ranking. Query params: year, month (required), top,
// countVacationAsRest.
func (h *ReportHandler) GetFolgas(c *gin.Context) {
	params, err := parseFolgasParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	drivers, err := h.Store.Drivers(ctx)
	if err != nil {
		logrus.WithError(err).Error("folgas drivers query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	records, err := h.Store.StatusRecordsInRange(ctx,
		schedule.MonthStart(params.year, params.month),
		schedule.MonthEnd(params.year, params.month))
	if err != nil {
		logrus.WithError(err).Error("folgas records query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	summaries := schedule.Summaries(drivers, records, params.countVacationAsRest)
	c.JSON(http.StatusOK, gin.H{
		"monthLabel": schedule.MonthLabel(params.year, params.month),
		"summaries":  summaries,
		"ranking":    schedule.RankByWorked(summaries, params.topN),
	})
}
