package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/server/http/dto"
)

// HistoryHandler serves the status-transition log.
type HistoryHandler struct {
	facade HistoryFacade
}

// NewHistoryHandler constructs HistoryHandler.
func NewHistoryHandler(facade HistoryFacade) *HistoryHandler {
	return &HistoryHandler{facade: facade}
}

// List handles GET /api/admin/history.
func (h *HistoryHandler) List(c *gin.Context) {
	h.respond(c, h.facade.History())
}

// ListForOrder handles GET /api/admin/orders/:id/history.
func (h *HistoryHandler) ListForOrder(c *gin.Context) {
	h.respond(c, h.facade.HistoryFor(c.Param("id")))
}

func (h *HistoryHandler) respond(c *gin.Context, entries []model.HistoryEntry) {
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toHistoryEntry(entry))
	}
	c.JSON(http.StatusOK, response)
}
