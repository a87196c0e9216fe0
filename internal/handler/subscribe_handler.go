package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture-go/internal/subscription"
	"lead-capture-go/pkg/model"
)

// SubscribeHandler handles the public mini-app endpoints
type SubscribeHandler struct {
	service *subscription.Service
}

// NewSubscribeHandler creates a new subscribe handler
func NewSubscribeHandler(service *subscription.Service) *SubscribeHandler {
	return &SubscribeHandler{service: service}
}

// GetRegions returns the public region list
func (h *SubscribeHandler) GetRegions(c *gin.Context) {
	regions, err := h.service.Regions()
	if err != nil {
		log.Printf("get regions: %v", err)
		regions = []model.Region{}
	}
	c.JSON(http.StatusOK, regions)
}

// Subscribe handles a subscription request from the mini-app
func (h *SubscribeHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	if err := h.service.Subscribe(req); err != nil {
		if errors.Is(err, subscription.ErrMissingUserID) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "User ID missing"})
			return
		}
		log.Printf("subscribe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "DB error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
