package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	docadp "gatepass-backend/internal/adapter/document"
	httpadp "gatepass-backend/internal/adapter/http"
	gpmw "gatepass-backend/internal/adapter/middleware"
	"gatepass-backend/internal/adapter/notifier"
	"gatepass-backend/internal/adapter/repository/mysql"
	"gatepass-backend/internal/config"
	"gatepass-backend/internal/domain/application"
	"gatepass-backend/internal/domain/audit"
	"gatepass-backend/internal/domain/temppass"
	"gatepass-backend/internal/infrastructure/cache"
	"gatepass-backend/internal/infrastructure/db"
	appUsecase "gatepass-backend/internal/usecase/application"
	passUsecase "gatepass-backend/internal/usecase/temppass"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "gatepass-backend").Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := gdb.AutoMigrate(
		&application.Application{},
		&application.Supervisor{},
		&application.ToolItem{},
		&audit.Entry{},
		&temppass.TemporaryPass{},
		&temppass.LogEntry{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	renderer, err := docadp.NewFileRenderer(cfg.DocumentDir)
	if err != nil {
		log.Fatal().Err(err).Msg("document dir unusable")
	}
	dispatcher := notifier.NewSMTPDispatcher(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass, log)

	appRepo := mysql.NewApplicationRepository(gdb)
	auditRepo := mysql.NewAuditRepository(gdb)
	passRepo := mysql.NewTempPassRepository(gdb)
	passLogRepo := mysql.NewTempPassLogRepository(gdb)
	directory := mysql.NewDirectory(gdb)
	unit := mysql.NewGormUoW(gdb)

	appUC := appUsecase.NewUsecase(unit, appRepo, auditRepo, directory, dispatcher, renderer, log)
	passUC := passUsecase.NewUsecase(unit, passRepo, passLogRepo, directory, dispatcher, renderer, log)

	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(appUC)
	passH := httpadp.NewTempPassHandler(passUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(gpmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))

	// routes
	e.GET("/health", h.Health)

	apps := e.Group("/applications")
	apps.POST("", appH.Submit)
	apps.GET("", appH.List)
	apps.GET("/:id", appH.Get)
	apps.GET("/:id/history", appH.History)
	apps.POST("/:id/approve", appH.Approve)
	apps.POST("/:id/reject", appH.Reject)
	apps.PATCH("/:id/period", appH.ModifyPeriod)
	apps.POST("/:id/document", appH.GenerateDocument)
	apps.POST("/:id/send", appH.Send)

	passes := e.Group("/temporary-passes")
	passes.POST("", passH.Submit)
	passes.GET("", passH.List)
	passes.GET("/:id", passH.Get)
	passes.GET("/:id/history", passH.History)
	passes.POST("/:id/approve", passH.Approve)
	passes.POST("/:id/issue", passH.Issue)
	passes.POST("/:id/reject", passH.Reject)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
