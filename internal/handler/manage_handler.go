package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture-go/internal/broadcast"
	"lead-capture-go/internal/table"
	"lead-capture-go/pkg/model"
)

// ManageHandler dispatches the generic admin table operations
type ManageHandler struct {
	tables     *table.Manager
	dispatcher *broadcast.Dispatcher
}

// NewManageHandler creates a new manage handler
func NewManageHandler(tables *table.Manager, dispatcher *broadcast.Dispatcher) *ManageHandler {
	return &ManageHandler{tables: tables, dispatcher: dispatcher}
}

// List returns the filtered, sorted rows of a logical table
func (h *ManageHandler) List(c *gin.Context) {
	filters := table.Filters{
		Search: c.Query("search"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}

	result, err := h.tables.Query(c.Param("table"), filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Rows)
}

// Delete removes the given ids from a logical table
func (h *ManageHandler) Delete(c *gin.Context) {
	var req model.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No ids supplied"})
		return
	}

	if err := h.tables.Delete(c.Param("table"), req.IDs); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Create inserts a region, or dispatches a broadcast for the other tables.
// The route shape is shared: POST on the regions table means "add region",
// POST anywhere else on the admin surface means "send a broadcast".
func (h *ManageHandler) Create(c *gin.Context) {
	tableName := c.Param("table")
	if !table.Valid(tableName) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid table"})
		return
	}

	if tableName == table.TableRegions {
		h.createRegion(c)
		return
	}
	h.sendBroadcast(c)
}

func (h *ManageHandler) createRegion(c *gin.Context) {
	var req model.RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name required"})
		return
	}

	ok, err := h.tables.InsertRegion(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Region already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ManageHandler) sendBroadcast(c *gin.Context) {
	var req model.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	result, err := h.dispatcher.Broadcast(req.Message, req.TargetIDs)
	if err != nil {
		if errors.Is(err, broadcast.ErrNoRecipients) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No recipients"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "sent_to": result.SentCount})
}

// Update renames a region; no other table supports updates
func (h *ManageHandler) Update(c *gin.Context) {
	if c.Param("table") != table.TableRegions {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid table"})
		return
	}

	var req model.RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Id and name required"})
		return
	}

	if err := h.tables.UpdateRegion(req.ID, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// fail maps service errors to the response envelope without leaking
// internal detail
func (h *ManageHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, table.ErrInvalidTable):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid table"})
	case errors.Is(err, table.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
	default:
		log.Printf("manage: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal error"})
	}
}
