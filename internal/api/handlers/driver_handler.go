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
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-agenda-api-server/internal/models"
	"fleet-agenda-api-server/internal/store"
)

type DriverHandler struct {
	Store *store.Store
}

type CreateDriverPayload struct {
	Name          string `json:"name" binding:"required"`
	ResidenceCity string `json:"residenceCity"`
	LinkType      string `json:"linkType"`
	DriverClass   string `json:"driverClass"`
	HasMopp       string `json:"hasMopp"`
}

// CreateDriver registers a driver with a readable app-assigned id.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var payload CreateDriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver := models.Driver{
		DriverID:      fmt.Sprintf("DRV-%s", uuid.New().String()[:8]),
		Name:          strings.TrimSpace(payload.Name),
		ResidenceCity: strings.TrimSpace(payload.ResidenceCity),
		LinkType:      payload.LinkType,
		DriverClass:   payload.DriverClass,
		HasMopp:       payload.HasMopp,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if driver.LinkType == "" {
		driver.LinkType = "Frota"
	}
	if driver.DriverClass == "" {
		driver.DriverClass = "Carreta"
	}
	if driver.HasMopp != "Sim" {
		driver.HasMopp = "Não"
	}

	result, err := h.Store.DB.Collection(store.ColDrivers).InsertOne(c.Request.Context(), driver)
	if err != nil {
		logrus.WithError(err).Error("create driver failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"driverId": driver.DriverID, "id": result.InsertedID})
}

// GetAllDrivers lists every driver, name ascending.
func (h *DriverHandler) GetAllDrivers(c *gin.Context) {
	drivers, err := h.Store.Drivers(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("list drivers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

// GetDriver returns one driver by its readable id.
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.Store.DriverByDriverID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		logrus.WithError(err).Error("get driver failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query driver"})
		return
	}
	c.JSON(http.StatusOK, driver)
}

type UpdateDriverPayload struct {
	Name          *string `json:"name"`
	ResidenceCity *string `json:"residenceCity"`
	LinkType      *string `json:"linkType"`
	DriverClass   *string `json:"driverClass"`
	HasMopp       *string `json:"hasMopp"`
}

// UpdateDriver patches the editable registry fields. Calendar records keep
// the denormalized name they were written with.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var payload UpdateDriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if payload.Name != nil {
		set["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.ResidenceCity != nil {
		set["residenceCity"] = strings.TrimSpace(*payload.ResidenceCity)
	}
	if payload.LinkType != nil {
		set["linkType"] = *payload.LinkType
	}
	if payload.DriverClass != nil {
		set["driverClass"] = *payload.DriverClass
	}
	if payload.HasMopp != nil {
		mopp := "Não"
		if *payload.HasMopp == "Sim" {
			mopp = "Sim"
		}
		set["hasMopp"] = mopp
	}

	result, err := h.Store.DB.Collection(store.ColDrivers).UpdateOne(
		c.Request.Context(),
		bson.M{"driverId": c.Param("id")},
		bson.M{"$set": set},
	)
	if err != nil {
		logrus.WithError(err).Error("update driver failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": result.ModifiedCount})
}

// DeleteDriver removes the registry entry only. Calendar records keep the
// driver reference and simply stop resolving; references never cascade.
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	result, err := h.Store.DB.Collection(store.ColDrivers).DeleteOne(
		c.Request.Context(),
		bson.M{"driverId": c.Param("id")},
	)
	if err != nil {
		logrus.WithError(err).Error("delete driver failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": result.DeletedCount})
}

type statusPatchPayload struct {
	Status string `json:"status"`
}

// UpdateSchedulingStatus sets the free-form board status shown on the
// driver card.
func (h *DriverHandler) UpdateSchedulingStatus(c *gin.Context) {
	h.patchField(c, "schedulingStatus")
}

// UpdateRestStatus sets the free-form rest annotation on the driver card.
func (h *DriverHandler) UpdateRestStatus(c *gin.Context) {
	h.patchField(c, "restStatus")
}

func (h *DriverHandler) patchField(c *gin.Context, field string) {
	var payload statusPatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Store.DB.Collection(store.ColDrivers).UpdateOne(
		c.Request.Context(),
		bson.M{"driverId": c.Param("id")},
		bson.M{"$set": bson.M{field: strings.TrimSpace(payload.Status), "updatedAt": time.Now()}},
	)
	if err != nil {
		logrus.WithError(err).Error("patch driver status failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": result.ModifiedCount})
}

// GetDriverStats returns registry counts for the dashboard cards.
func (h *DriverHandler) GetDriverStats(c *gin.Context) {
	drivers, err := h.Store.Drivers(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("driver stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}

	byLinkType := map[string]int{}
	byClass := map[string]int{}
	withMopp := 0
	for _, d := range drivers {
		byLinkType[d.LinkType]++
		byClass[d.DriverClass]++
		if d.HasMopp == "Sim" {
			withMopp++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"total":         len(drivers),
		"byLinkType":    byLinkType,
		"byDriverClass": byClass,
		"withMopp":      withMopp,
	})
}
