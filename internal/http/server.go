package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/avtoelite/storefront/internal/config"
	"github.com/avtoelite/storefront/internal/http/middleware"
	"github.com/avtoelite/storefront/internal/metrics"
	"github.com/avtoelite/storefront/internal/notify"
	"github.com/avtoelite/storefront/internal/repository"
	"github.com/avtoelite/storefront/internal/service/lead"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mysqlDB, clickhouseDB *sqlx.DB, rds *redis.Client) *Server {
	// repos (MySQL)
	brandsRepo := repository.NewBrandsRepository(mysqlDB)
	carsRepo := repository.NewCarsRepository(mysqlDB)
	leadsRepo := repository.NewLeadsRepository(mysqlDB)
	reviewsRepo := repository.NewReviewsRepository(mysqlDB)
	contactsRepo := repository.NewContactsRepository(mysqlDB)
	outboxRepo := repository.NewOutboxRepository(mysqlDB)

	// repos (ClickHouse)
	chLeadsRepo := repository.NewCHLeadsRepository(clickhouseDB)

	// telegram notifier
	notifier := notify.NewTelegramClient(
		cfg.Telegram.BaseURL,
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.TimeoutMs,
		cfg.Telegram.Breaker.FailThreshold,
		cfg.Telegram.Breaker.OpenForMs,
	)

	// services
	leadSvc := lead.New(mysqlDB, leadsRepo, carsRepo, outboxRepo, notifier)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})
	adminMW := middleware.AdminKeyMiddleware(cfg.Admin.APIKey)

	// public catalog
	v1 := e.Group("/v1")
	v1.GET("/brands", listBrandsHandler(brandsRepo))
	v1.GET("/brands/:slug", getBrandHandler(brandsRepo))
	v1.GET("/brands/:slug/cars", listBrandCarsHandler(brandsRepo, carsRepo))
	v1.GET("/cars/new-arrivals", listNewArrivalsHandler(carsRepo, cfg.Catalog.NewArrivalsLimit))
	v1.GET("/cars/:id", getCarHandler(carsRepo))
	v1.GET("/reviews", listReviewsHandler(reviewsRepo))
	v1.GET("/contacts", getContactsHandler(contactsRepo))

	// lead capture (rate limited)
	v1.POST("/leads/:category", submitLeadHandler(leadSvc), rlMW)
	v1.POST("/reviews", submitReviewHandler(reviewsRepo), rlMW)

	// admin reports (ClickHouse)
	admin := v1.Group("/admin", adminMW)
	admin.GET("/leads/stats", leadStatsHandler(chLeadsRepo))
	admin.GET("/leads", listLeadEventsHandler(chLeadsRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
