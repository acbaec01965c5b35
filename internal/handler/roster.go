package handler

import (
	"net/http"

	"bitbuzz/internal/model"
	"bitbuzz/internal/service"

	"github.com/gin-gonic/gin"
)

type RosterHandler struct{ svc *service.TrackerService }

func NewRosterHandler(svc *service.TrackerService) *RosterHandler {
	return &RosterHandler{svc: svc}
}

func (h *RosterHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Roster(c.Request.Context()))
}

func (h *RosterHandler) Add(c *gin.Context) {
	var req model.RosterNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ros, err := h.svc.AddRosterName(c.Request.Context(), c.Param("kind"), req.Name)
	if err != nil {
		fail(c, "roster.add_failed", err)
		return
	}
	c.JSON(http.StatusOK, ros)
}

func (h *RosterHandler) Remove(c *gin.Context) {
	ros, err := h.svc.RemoveRosterName(c.Request.Context(), c.Param("kind"), c.Param("name"))
	if err != nil {
		fail(c, "roster.remove_failed", err)
		return
	}
	c.JSON(http.StatusOK, ros)
}

func (h *RosterHandler) Reset(c *gin.Context) {
	ros, err := h.svc.ResetRoster(c.Request.Context())
	if err != nil {
		fail(c, "roster.reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, ros)
}
