package handler

import (
	"net/http"

	"bitbuzz/internal/model"
	"bitbuzz/internal/service"
	"bitbuzz/internal/worklog"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct{ svc *service.TrackerService }

func NewEntryHandler(svc *service.TrackerService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

func (h *EntryHandler) List(c *gin.Context) {
	var f worklog.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}
	entries := h.svc.Entries(c.Request.Context(), f)
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req model.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff and channel are required"})
		return
	}
	e, err := h.svc.Submit(c.Request.Context(), worklog.Draft{
		Date:    req.Date,
		Staff:   req.Staff,
		Channel: req.Channel,
		Title:   req.Title,
		Link:    req.Link,
	})
	if err != nil {
		fail(c, "entry.submit_failed", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// Save stores the bulk editor grid. The query filter must be the one the
// grid was loaded with.
func (h *EntryHandler) Save(c *gin.Context) {
	var f worklog.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}
	var req model.SaveEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	edited := make([]worklog.Entry, 0, len(req.Entries))
	for _, e := range req.Entries {
		edited = append(edited, worklog.Entry{
			ID:        e.ID,
			Date:      e.Date,
			Staff:     e.Staff,
			Channel:   e.Channel,
			Title:     e.Title,
			Link:      e.Link,
			Views:     string(e.Views),
			Timestamp: e.Timestamp,
		})
	}
	ctx := c.Request.Context()
	if err := h.svc.SaveEntries(ctx, f, edited); err != nil {
		fail(c, "entry.save_failed", err)
		return
	}
	entries := h.svc.Entries(ctx, f)
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
