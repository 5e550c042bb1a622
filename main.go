package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/rogainizer/config"
	"github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/handlers"
	applog "github.com/padraicbc/rogainizer/logger"
	"github.com/padraicbc/rogainizer/metrics"
	"github.com/padraicbc/rogainizer/service"
	"github.com/padraicbc/rogainizer/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bdb, err := db.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	defer bdb.Close()

	if err := db.CreateTables(ctx, bdb, cfg.EventSchema, logger); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	st := store.New(bdb)
	m := metrics.New()
	h := handlers.New(handlers.Options{
		Events:       service.NewEventManager(st, logger),
		Teams:        service.NewTeamManager(st, st, logger),
		Results:      service.NewResultResolver(st, logger),
		Users:        service.NewUserDirectory(st, logger),
		DB:           st,
		Log:          logger,
		Metrics:      m,
		FetchTimeout: cfg.JSONFetchTimeout,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			applog.ForStatus(logger, v.Status)("http request", fields...)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(m.Middleware())

	h.Register(e, cfg.EventSchema, cfg.JSONFetchRate)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.Bool("debug", cfg.Debug),
		zap.String("addr", cfg.Port),
		zap.String("event_schema", cfg.EventSchema),
	)

	if cfg.Debug {
		if err := e.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()

	if err := s.ListenAndServeTLS("", ""); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
