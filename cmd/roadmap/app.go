package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/config"
	"github.com/Skotchmaster/roadmap/internal/events"
	"github.com/Skotchmaster/roadmap/internal/httpserver"
	"github.com/Skotchmaster/roadmap/internal/llm"
	"github.com/Skotchmaster/roadmap/internal/repo"
	"github.com/Skotchmaster/roadmap/internal/search"
	"github.com/Skotchmaster/roadmap/internal/service"
	pkgdb "github.com/Skotchmaster/roadmap/pkg/db"
	loggingmw "github.com/Skotchmaster/roadmap/pkg/middleware/logging"
	metricsmw "github.com/Skotchmaster/roadmap/pkg/middleware/metrics"
)

// app holds everything built at process start. Handlers receive it through
// httpserver.Deps; nothing is stored in package variables.
type app struct {
	cfg      config.ServiceConfig
	logger   *slog.Logger
	db       *gorm.DB
	producer *events.Producer
	echo     *echo.Echo
}

func newApp(ctx context.Context, cfg config.ServiceConfig, logger *slog.Logger) (*app, error) {
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, db: db}
	if err := repo.AutoMigrate(db.WithContext(ctx)); err != nil {
		a.close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var publisher service.EventPublisher = events.Nop{}
	if cfg.EventsEnabled() {
		a.producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = a.producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	var index service.RoadmapIndex = search.Nop{}
	var searchHTTP *httpserver.SearchHTTP
	if cfg.SearchEnabled() {
		es, err := search.NewClient(search.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("elasticsearch client: %w", err)
		}
		idx := search.NewIndex(es, cfg.ESIndex)
		if err := idx.Ping(ctx); err != nil {
			logger.Warn("elasticsearch_unreachable", "url", cfg.ESURL, "error", err)
		}
		index = idx
		searchHTTP = &httpserver.SearchHTTP{Index: idx}
	}

	users := &repo.UserRepo{DB: db}
	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:          &service.AuthService{Users: users, Events: publisher},
			SecureCookie: cfg.CookieSecure,
		},
		Roadmaps: &httpserver.RoadmapHTTP{Svc: &service.RoadmapService{
			Roadmaps: &repo.RoadmapRepo{DB: db},
			Topics:   &repo.TopicRepo{DB: db},
			Users:    users,
			Events:   publisher,
			Index:    index,
		}},
		Chat: &httpserver.ChatHTTP{Svc: &service.ChatService{
			LLM: llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModelID, cfg.OpenAIBaseURL),
		}},
		Health: &httpserver.HealthHTTP{DB: db},
		Search: searchHTTP,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(metricsmw.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	httpserver.Register(e, deps)

	a.echo = e
	return a, nil
}

func (a *app) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka_close_failed", "error", err)
		}
	}
	if err := pkgdb.Close(a.db); err != nil {
		a.logger.Error("db_close_failed", "error", err)
	}
}
