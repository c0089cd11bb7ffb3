package controllers

import (
	"net/http"

	"github.com/MaximSaveliev/nutrition-app-monolith-sub000/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(p *services.PushService) *DeviceController {
	return &DeviceController{Push: p}
}

type registerDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

// POST /user/devices
func (dc *DeviceController) RegisterDevice(c *gin.Context) {
	uid := c.GetUint("userID")

	var req registerDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	dev, err := dc.Push.RegisterDevice(uid, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"device_id": dev.ID, "platform": dev.Platform})
}
