package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/dayplanner-backend/internal/clients/redis"
	"github.com/yungbote/dayplanner-backend/internal/handlers"
	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/middleware"
	"github.com/yungbote/dayplanner-backend/internal/server"
)

type Handlers struct {
	User       *handlers.UserHandler
	Planner    *handlers.PlannerHandler
	Assignment *handlers.AssignmentHandler
	Bus        *handlers.BusHandler
}

type Middleware struct {
	Identity  *middleware.IdentityMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		User:       handlers.NewUserHandler(services.User),
		Planner:    handlers.NewPlannerHandler(services.DayPlan),
		Assignment: handlers.NewAssignmentHandler(services.Assignment),
		Bus:        handlers.NewBusHandler(services.DayPlan, services.Bus),
	}
}

func wireMiddleware(log *logger.Logger, limiter redis.RateLimiter) Middleware {
	log.Info("Wiring middleware...")
	mw := Middleware{
		Identity: middleware.NewIdentityMiddleware(log),
	}
	if limiter != nil {
		mw.RateLimit = middleware.NewRateLimitMiddleware(log, limiter)
	}
	return mw
}

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		AllowOrigins:        cfg.AllowOrigins,
		PlanRateLimit:       cfg.PlanRateLimit,
		PlanRateWindow:      cfg.PlanRateWindow,
		UserHandler:         handlerset.User,
		PlannerHandler:      handlerset.Planner,
		AssignmentHandler:   handlerset.Assignment,
		BusHandler:          handlerset.Bus,
		IdentityMiddleware:  mw.Identity,
		RateLimitMiddleware: mw.RateLimit,
	})
}
