package handler

import (
	"net/http"

	"bitbuzz/internal/logger"
	"bitbuzz/internal/metrics"
	"bitbuzz/internal/middleware"
	"bitbuzz/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tracker *service.TrackerService
	Auth    *service.AuthService
	Metrics metrics.Provider
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = metrics.Noop{}
	}

	authH := NewAuthHandler(d.Auth)
	rosterH := NewRosterHandler(d.Tracker)
	entryH := NewEntryHandler(d.Tracker)
	dashH := NewDashboardHandler(d.Tracker)

	r := gin.New()
	r.Use(logger.AccessLog(), gin.Recovery(), middleware.Metrics(d.Metrics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.PasswordHeader},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if d.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	api := r.Group("/api")
	api.POST("/admin/login", authH.Login)
	api.GET("/roster", rosterH.Get)
	api.GET("/entries", entryH.List)
	api.POST("/entries", entryH.Create)
	api.GET("/dashboard", dashH.Get)

	admin := api.Group("", middleware.AdminAuth(d.Auth))
	admin.PUT("/entries", entryH.Save)
	admin.POST("/roster/reset", rosterH.Reset)
	admin.POST("/roster/:kind", rosterH.Add)
	admin.DELETE("/roster/:kind/:name", rosterH.Remove)

	return r
}
