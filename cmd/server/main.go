package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/fssotc/website/config"
	"github.com/fssotc/website/internal/api/handler"
	"github.com/fssotc/website/internal/api/middleware"
	"github.com/fssotc/website/internal/api/router"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/notify"
	"github.com/fssotc/website/internal/repository"
	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/database"
	"github.com/fssotc/website/pkg/jwt"
	applogger "github.com/fssotc/website/pkg/logger"
	"github.com/fssotc/website/pkg/mailer"
	"github.com/fssotc/website/pkg/redis"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("CLUB_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", cfg.Site.Location().String()),
	)

	// 3. database and schema
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db, logger, model.All()...); err != nil {
			logger.Fatal("migrate database", zap.Error(err))
		}
	} else {
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("get sql.DB", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("migrate database", zap.Error(err))
		}
	}

	// 4. Redis is optional: without it tokens cannot be revoked and
	// registration is not rate limited
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and rate limit disabled", zap.Error(err))
		rdb = nil
	}
	var (
		tokenBlacklist service.TokenBlacklist
		blacklist      middleware.Blacklist
		limiter        middleware.Limiter
	)
	if rdb != nil {
		tokenBlacklist, blacklist, limiter = rdb, rdb, rdb
	}

	// 5. welcome mail dispatcher
	var sender mailer.Sender = mailer.NewLogSender(logger)
	if cfg.Mail.Enabled {
		sender = mailer.NewSMTPSender(&cfg.Mail)
	}
	dispatcher := notify.NewDispatcher(sender, cfg.Mail.QueueSize, logger)
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	go dispatcher.Run(dispatchCtx)

	// 6. repository -> service -> handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, tokenBlacklist, dispatcher, logger)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Auth.BootstrapAdmin(bootCtx); err != nil {
		logger.Fatal("bootstrap admin", zap.Error(err))
	}
	cancelBoot()

	h := handler.NewHandler(svc)
	engine := router.Setup(cfg, h, jwtMgr, blacklist, limiter, logger)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	// queued welcome mails are still sent
	dispatcher.Close()

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
