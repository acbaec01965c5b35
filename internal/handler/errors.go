package handler

import (
	"errors"
	"net/http"

	"bitbuzz/internal/logger"
	"bitbuzz/internal/roster"
	"bitbuzz/internal/service"
	"bitbuzz/internal/sheet"
	"bitbuzz/internal/worklog"

	"github.com/gin-gonic/gin"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, sheet.ErrWriteFailed), errors.Is(err, sheet.ErrReadFailed):
		return http.StatusBadGateway
	case errors.Is(err, roster.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, roster.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, roster.ErrEmptyName),
		errors.Is(err, roster.ErrUnknownKind),
		errors.Is(err, worklog.ErrTitleRequired),
		errors.Is(err, worklog.ErrInvalidDate),
		errors.Is(err, worklog.ErrCombinedFilter),
		errors.Is(err, service.ErrUnknownStaff),
		errors.Is(err, service.ErrUnknownChannel):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON body. Store failures are warnings: nothing
// was changed and the server carries on.
func fail(c *gin.Context, event string, err error) {
	code := statusOf(err)
	body := gin.H{"error": err.Error()}
	switch code {
	case http.StatusBadGateway:
		body["warning"] = true
		logger.Warn(event, "err", err)
	case http.StatusInternalServerError:
		logger.Error(event, "err", err)
	default:
		logger.Debug(event, "err", err)
	}
	c.JSON(code, body)
}
