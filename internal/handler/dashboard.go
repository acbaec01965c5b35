package handler

import (
	"net/http"
	"time"

	"bitbuzz/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc *service.TrackerService }

func NewDashboardHandler(svc *service.TrackerService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

type dashboardQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	var q dashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must be numbers, month 1-12"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Dashboard(c.Request.Context(), q.Year, time.Month(q.Month)))
}
