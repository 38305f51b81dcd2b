package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-agenda-api-server/internal/models"
	"fleet-agenda-api-server/internal/schedule"
	"fleet-agenda-api-server/internal/store"
)

type ScheduleHandler struct {
	Store *store.Store
}

// validationErrs are save failures caused by the request, not the store.
var validationErrs = []error{
	store.ErrNoDay,
	store.ErrRangeTooLarge,
	store.ErrMissingCargoStatus,
	store.ErrBadPickupDateTime,
	store.ErrBadDeliveryDateTime,
}

func writeSaveError(c *gin.Context, op string, err error) {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": v.Error()})
			return
		}
	}
	logrus.WithError(err).Errorf("%s failed", op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save schedule"})
}

// resolveDriver loads the driver a save targets; calendar writes always
// carry a denormalized name, so an unknown driver is a request error.
func (h *ScheduleHandler) resolveDriver(c *gin.Context, driverID string) (store.DriverRef, bool) {
	if driverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driverId is required"})
		return store.DriverRef{}, false
	}
	driver, err := h.Store.DriverByDriverID(c.Request.Context(), driverID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown driver"})
			return store.DriverRef{}, false
		}
		logrus.WithError(err).Error("driver lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query driver"})
		return store.DriverRef{}, false
	}
	return store.DriverRef{ID: driver.DriverID, Name: driver.Name}, true
}

func parseAnchor(day string) time.Time {
	if t, ok := schedule.ParseISODate(day); ok {
		return t
	}
	return time.Time{}
}

type SaveStatusPayload struct {
	DriverID string `json:"driverId" binding:"required"`
	Day      string `json:"day"`
	From     string `json:"from"`
	To       string `json:"to"`
	Code     string `json:"code"`
	Note     string `json:"note"`
}

// SaveStatus writes a schedule code over a day or range. An empty code
// clears the cell instead.
func (h *ScheduleHandler) SaveStatus(c *gin.Context) {
	var payload SaveStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Code != "" {
		if _, ok := schedule.MetaFor(payload.Code); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status code"})
			return
		}
	}

	driver, ok := h.resolveDriver(c, payload.DriverID)
	if !ok {
		return
	}

	days, err := h.Store.SaveDriverStatus(c.Request.Context(), store.StatusSaveRequest{
		Driver: driver,
		Day:    parseAnchor(payload.Day),
		From:   payload.From,
		To:     payload.To,
		Code:   payload.Code,
		Note:   payload.Note,
	})
	if err != nil {
		writeSaveError(c, "save driver status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

type SaveCargoPayload struct {
	DriverID string          `json:"driverId" binding:"required"`
	Day      string          `json:"day"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Form     store.CargoForm `json:"form"`
}

// SaveCargo writes a cargo form over a day or range, plus the pickup and
// delivery satellite records.
func (h *ScheduleHandler) SaveCargo(c *gin.Context) {
	var payload SaveCargoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, ok := h.resolveDriver(c, payload.DriverID)
	if !ok {
		return
	}

	res, err := h.Store.SaveCargo(c.Request.Context(), store.CargoSaveRequest{
		Driver: driver,
		Day:    parseAnchor(payload.Day),
		From:   payload.From,
		To:     payload.To,
		Form:   payload.Form,
	})
	if err != nil {
		writeSaveError(c, "save cargo", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteCargo clears every cargo record of one (driver, day).
func (h *ScheduleHandler) DeleteCargo(c *gin.Context) {
	driverID := c.Query("driverId")
	day, ok := schedule.ParseISODate(c.Query("day"))
	if driverID == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driverId and day (YYYY-MM-DD) are required"})
		return
	}

	n, err := h.Store.DeleteCargoDay(c.Request.Context(), driverID, day)
	if err != nil {
		logrus.WithError(err).Error("delete cargo failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cargo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

type GridRequest struct {
	Year           int                         `json:"year" binding:"required"`
	Month          int                         `json:"month" binding:"required"`
	Search         string                      `json:"search"`
	DayRules       map[string]schedule.DayRule `json:"dayRules"`
	MatchDay       string                      `json:"matchDay"`
	MatchCriterion string                      `json:"matchCriterion"`
}

type gridDay struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Weekday string `json:"weekday"`
	Weekend bool   `json:"weekend"`
}

type gridDriver struct {
	models.Driver
	Vehicle *models.Vehicle `json:"vehicle,omitempty"`
	Trailer *models.Trailer `json:"trailer,omitempty"`
}

// Grid assembles one month of the scheduling calendar: the day axis, the
// drivers left visible by search and per-day rules, both cell indices,
// and the optional highlight set and KPIs for one day.
func (h *ScheduleHandler) Grid(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1..12"})
		return
	}
	month := time.Month(req.Month)
	ctx := c.Request.Context()

	drivers, err := h.Store.Drivers(ctx)
	if err != nil {
		logrus.WithError(err).Error("grid drivers query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build grid"})
		return
	}
	vehicles, err := h.Store.Vehicles(ctx)
	if err != nil {
		logrus.WithError(err).Error("grid vehicles query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build grid"})
		return
	}
	trailers, err := h.Store.Trailers(ctx)
	if err != nil {
		logrus.WithError(err).Error("grid trailers query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build grid"})
		return
	}

	from, to := schedule.MonthStart(req.Year, month), schedule.MonthEnd(req.Year, month)
	status, err := h.Store.StatusRecordsInRange(ctx, from, to)
	if err != nil {
		logrus.WithError(err).Error("grid status query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build grid"})
		return
	}
	cargo, err := h.Store.CargoRecordsInRange(ctx, from, to)
	if err != nil {
		logrus.WithError(err).Error("grid cargo query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build grid"})
		return
	}

	idx := schedule.BuildIndices(status, cargo, req.Year, month)
	visible := schedule.VisibleDrivers(drivers, idx, req.Search, req.DayRules)

	vehicleByDriver := schedule.FirstVehicleByDriver(vehicles)
	trailerByDriver := schedule.FirstTrailerByDriver(trailers)
	gridDrivers := make([]gridDriver, 0, len(visible))
	for _, d := range visible {
		gd := gridDriver{Driver: d}
		if v, ok := vehicleByDriver[d.DriverID]; ok {
			vv := v
			gd.Vehicle = &vv
		}
		if t, ok := trailerByDriver[d.DriverID]; ok {
			tt := t
			gd.Trailer = &tt
		}
		gridDrivers = append(gridDrivers, gd)
	}

	days := make([]gridDay, 0, 31)
	for _, d := range schedule.MonthDays(req.Year, month) {
		days = append(days, gridDay{
			Date:    schedule.DayKey(d),
			Label:   schedule.FormatBRDate(d),
			Weekday: schedule.WeekdayShort(d),
			Weekend: schedule.IsWeekend(d),
		})
	}

	resp := gin.H{
		"monthLabel": schedule.MonthLabel(req.Year, month),
		"days":       days,
		"drivers":    gridDrivers,
		"status":     idx.Status,
		"cargo":      idx.Cargo,
	}

	if matchDay, ok := schedule.ParseISODate(req.MatchDay); ok {
		matched := schedule.MatchSet(status, cargo, matchDay, req.MatchCriterion)
		ids := make([]string, 0, len(matched))
		for id := range matched {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		resp["matchSet"] = ids
		resp["kpis"] = schedule.ComputeDayKPIs(status, cargo, matchDay)
	}

	c.JSON(http.StatusOK, resp)
}
