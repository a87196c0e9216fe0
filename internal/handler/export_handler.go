package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture-go/internal/export"
	"lead-capture-go/internal/table"
)

// ExportHandler streams table query results as CSV downloads
type ExportHandler struct {
	exporter *export.Adapter
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter *export.Adapter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Export renders a logical table to CSV using the same filters as the
// admin list view. An empty result responds with a plain "No data" text
// rather than an empty file.
func (h *ExportHandler) Export(c *gin.Context) {
	filters := table.Filters{
		Search: c.Query("search"),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}

	file, err := h.exporter.ExportCSV(c.Param("table"), filters)
	if err != nil {
		if errors.Is(err, table.ErrInvalidTable) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid table"})
			return
		}
		log.Printf("export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal error"})
		return
	}
	if file == nil {
		c.String(http.StatusOK, "No data")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", file.Content)
}
