package transport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/internal/service"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	h.transition(c, h.eventService.PublishEvent)
}

func (h *EventHandler) MarkAsFunded(c *gin.Context) {
	h.transition(c, h.eventService.MarkAsFunded)
}

func (h *EventHandler) CancelEvent(c *gin.Context) {
	h.transition(c, h.eventService.CancelEvent)
}

func (h *EventHandler) CompleteEvent(c *gin.Context) {
	h.transition(c, h.eventService.CompleteEvent)
}

func (h *EventHandler) transition(c *gin.Context, op func(ctx context.Context, id string) (*entity.Event, error)) {
	event, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	filter := database.EventFilter{
		OrganizerID: c.Query("organizer_id"),
		Status:      entity.EventStatus(c.Query("status")),
	}
	events, err := h.eventService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
