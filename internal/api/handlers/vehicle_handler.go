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

type VehicleHandler struct {
	Store *store.Store
}

type VehiclePayload struct {
	Plate             string `json:"plate" binding:"required"`
	Type              string `json:"type"`
	MaintenanceStatus string `json:"maintenanceStatus"`
	DriverID          string `json:"driverId"`
	Note              string `json:"note"`
}

// CreateVehicle registers a truck. The driver link is optional and weak:
// an unknown driverId is stored as-is and just fails to resolve on the
// grid.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var payload VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plate := normalizePlate(payload.Plate)
	if !validPlate(plate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plate must be 7 letters/digits"})
		return
	}

	vehicle := models.Vehicle{
		VehicleID:         fmt.Sprintf("VEH-%s", uuid.New().String()[:8]),
		Plate:             plate,
		Type:              payload.Type,
		MaintenanceStatus: payload.MaintenanceStatus,
		DriverID:          strings.TrimSpace(payload.DriverID),
		Note:              strings.TrimSpace(payload.Note),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if vehicle.MaintenanceStatus == "" {
		vehicle.MaintenanceStatus = "Ok"
	}
	if vehicle.DriverID != "" {
		if driver, err := h.Store.DriverByDriverID(c.Request.Context(), vehicle.DriverID); err == nil {
			vehicle.DriverName = driver.Name
		}
	}

	result, err := h.Store.DB.Collection(store.ColVehicles).InsertOne(c.Request.Context(), vehicle)
	if err != nil {
		logrus.WithError(err).Error("create vehicle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicleId": vehicle.VehicleID, "id": result.InsertedID})
}

// GetAllVehicles lists every vehicle.
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.Store.Vehicles(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("list vehicles failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle patches a vehicle by vehicleId.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var payload struct {
		Plate             *string `json:"plate"`
		Type              *string `json:"type"`
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

	result, err := h.Store.DB.Collection(store.ColVehicles).UpdateOne(
		c.Request.Context(),
		bson.M{"vehicleId": c.Param("id")},
		bson.M{"$set": set},
	)
	if err != nil {
		logrus.WithError(err).Error("update vehicle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": result.ModifiedCount})
}

// DeleteVehicle removes a vehicle by vehicleId.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	result, err := h.Store.DB.Collection(store.ColVehicles).DeleteOne(
		c.Request.Context(),
		bson.M{"vehicleId": c.Param("id")},
	)
	if err != nil {
		logrus.WithError(err).Error("delete vehicle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": result.DeletedCount})
}
