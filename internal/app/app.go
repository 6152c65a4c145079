package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/clients/redis"
	"github.com/yungbote/dayplanner-backend/internal/db"
	"github.com/yungbote/dayplanner-backend/internal/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	limiter  redis.RateLimiter
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.SeedBusSchedules(seedCtx, reposet.BusSchedule, cfg.TimetablePath, log); err != nil {
		log.Sync()
		return nil, fmt.Errorf("seed bus schedules: %w", err)
	}

	serviceset, err := wireServices(log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	// Rate limiting degrades to a no-op when redis is not configured.
	limiter, err := redis.NewRateLimiter(log)
	if err != nil {
		log.Warn("Rate limiter disabled", "error", err)
		limiter = nil
	}

	handlerset := wireHandlers(log, serviceset)
	mw := wireMiddleware(log, limiter)
	router := wireRouter(log, cfg, handlerset, mw)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		limiter:  limiter,
	}, nil
}

func (a *App) Start() error {
	if a == nil || a.Services.CleanupJob == nil {
		return nil
	}
	return a.Services.CleanupJob.Start()
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.CleanupJob != nil {
		a.Services.CleanupJob.Stop()
	}
	if a.limiter != nil {
		_ = a.limiter.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
