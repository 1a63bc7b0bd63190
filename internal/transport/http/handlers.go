package http

import (
	"net/http"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/dkeye/Relay/internal/status"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StatusPages is the read side of the status publisher.
type StatusPages interface {
	Page() ([]byte, error)
}

type Handlers struct {
	Orch  *orch.Orchestrator
	Pages StatusPages
}

type HealthResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
	Rooms       int    `json:"rooms"`
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Connections: h.Orch.Connections(),
		Rooms:       len(h.Orch.Rooms()),
	})
}

func (h *Handlers) StatusPage(c *gin.Context) {
	body, err := h.Pages.Page()
	if err != nil {
		log.Error().Err(err).Str("module", "transport.http").Msg("read status page")
		c.String(http.StatusServiceUnavailable, "status page not ready")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (h *Handlers) Stylesheet(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", status.Stylesheet())
}

func (h *Handlers) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Orch.Rooms()})
}

func (h *Handlers) GetRoom(c *gin.Context) {
	id, err := domain.ParseRoomID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, ok := h.Orch.Room(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}
