package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"fleet-agenda-api-server/internal/models"
	"fleet-agenda-api-server/internal/store"
)

type TrailerHandler struct {
	Store *store.Store
}

type TrailerPayload struct {
	Plate             string `json:"plate" binding:"required"`
	Type              string `json:"type"`
	Axles             string `json:"axles"`
	MaintenanceStatus string `json:"maintenanceStatus"`
	DriverID          string `json:"driverId"`
	Note              string `json:"note"`
}

// CreateTrailer registers a semi-trailer. Same plate and weak-link rules
// as vehicles.
func (h *TrailerHandler) CreateTrailer(c *gin.Context) {
	var payload TrailerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plate := normalizePlate(payload.Plate)
	if !validPlate(plate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plate must be 7 letters/digits"})
		return
	}

	trailer := models.Trailer{
		TrailerID:         fmt.Sprintf("TRL-%s", uuid.New().String()[:8]),
		Plate:             plate,
		Type:              payload.Type,
		Axles:             payload.Axles,
		MaintenanceStatus: payload.MaintenanceStatus,
		DriverID:          strings.TrimSpace(payload.DriverID),
		Note:              strings.TrimSpace(payload.Note),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if trailer.Type == "" {
		trailer.Type = "Sider"
	}
	if trailer.MaintenanceStatus == "" {
		trailer.MaintenanceStatus = "Ok"
	}
	if trailer.DriverID != "" {
		if driver, err := h.Store.DriverByDriverID(c.Request.Context(), trailer.DriverID); err == nil {
			trailer.DriverName = driver.Name
		}
	}

	result, err := h.Store.DB.Collection(store.ColTrailers).InsertOne(c.Request.Context(), trailer)
	if err != nil {
		logrus.WithError(err).Error("create trailer failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trailer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trailerId": trailer.TrailerID, "id": result.InsertedID})
}

// GetAllTrailers lists every trailer.
func (h *TrailerHandler) GetAllTrailers(c *gin.Context) {
	trailers, err := h.Store.Trailers(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("list trailers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query trailers"})
		return
	}
	if trailers == nil {
		trailers = []models.Trailer{}
	}
	c.JSON(http.StatusOK, trailers)
}

// UpdateTrailer patches a trailer by trailerId.
func (h *TrailerHandler) UpdateTrailer(c *gin.Context) {
	var payload struct {
		Plate             *string `json:"plate"`
		Type              *string `json:"type"`
		Axles             *string `json:"axles"`
		MaintenanceStatus *string `json:"maintenanceStatus"`
		DriverID          *string `json:"driverId"`
		Note              *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Plate != nil {
		plate := normalizePlate(*payload.Plate)
		if !validPlate(plate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plate must be 7 letters/digits"})
			return
		}
		set["plate"] = plate
	}
	if payload.Type != nil {
		set["type"] = *payload.Type
	}
	if payload.Axles != nil {
		set["axles"] = *payload.Axles
	}
	if payload.MaintenanceStatus != nil {
		set["maintenanceStatus"] = *payload.MaintenanceStatus
	}
	if payload.DriverID != nil {
		driverID := strings.TrimSpace(*payload.DriverID)
		set["driverId"] = driverID
		set["driverName"] = ""
		if driverID != "" {
			if driver, err := h.Store.DriverByDriverID(c.Request.Context(), driverID); err == nil {
				set["driverName"] = driver.Name
			}
		}
	}
	if payload.Note != nil {
		set["note"] = strings.TrimSpace(*payload.Note)
	}

	result, err := h.Store.DB.Collection(store.ColTrailers).UpdateOne(
		c.Request.Context(),
		bson.M{"trailerId": c.Param("id")},
		bson.M{"$set": set},
	)
	if err != nil {
		logrus.WithError(err).Error("update trailer failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trailer"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trailer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": result.ModifiedCount})
}

// DeleteTrailer removes a trailer by trailerId.
func (h *TrailerHandler) DeleteTrailer(c *gin.Context) {
	result, err := h.Store.DB.Collection(store.ColTrailers).DeleteOne(
		c.Request.Context(),
		bson.M{"trailerId": c.Param("id")},
	)
	if err != nil {
		logrus.WithError(err).Error("delete trailer failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trailer"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trailer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": result.DeletedCount})
}
