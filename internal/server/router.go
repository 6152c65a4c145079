package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/dayplanner-backend/internal/handlers"
	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/middleware"
)

type RouterConfig struct {
	Log                 *logger.Logger
	AllowOrigins        []string
	PlanRateLimit       int
	PlanRateWindow      time.Duration
	UserHandler         *handlers.UserHandler
	PlannerHandler      *handlers.PlannerHandler
	AssignmentHandler   *handlers.AssignmentHandler
	BusHandler          *handlers.BusHandler
	IdentityMiddleware  *middleware.IdentityMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.UserHandler.Register)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.IdentityMiddleware.RequireUser())
	// User
	api.GET("/user", cfg.UserHandler.GetMe)
	api.PUT("/user/calendar-feed", cfg.UserHandler.UpdateCalendarFeed)
	// Planner; the day-plan endpoints call out to the advisor, so they carry
	// the request budget.
	planner := api.Group("/")
	if cfg.RateLimitMiddleware != nil {
		planner.Use(cfg.RateLimitMiddleware.Limit(cfg.PlanRateLimit, cfg.PlanRateWindow))
	}
	planner.GET("/calendar/day-plan", cfg.PlannerHandler.GetDayPlan)
	planner.POST("/planner/assignments/:id/autoschedule-today", cfg.PlannerHandler.AutoscheduleToday)
	// Assignments
	api.POST("/assignments", cfg.AssignmentHandler.Create)
	api.GET("/assignments", cfg.AssignmentHandler.List)
	api.GET("/assignments/:id", cfg.AssignmentHandler.Get)
	api.PUT("/assignments/:id", cfg.AssignmentHandler.Update)
	api.DELETE("/assignments/:id", cfg.AssignmentHandler.Delete)
	// Bus
	api.GET("/bus/today", cfg.BusHandler.Today)
	api.GET("/bus/preferences", cfg.BusHandler.GetPreferences)
	api.PUT("/bus/preferences", cfg.BusHandler.UpdatePreferences)

	return router
}
