package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/configs"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/middlewares"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/notify"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/logger"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/routes"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/ws"
)

func main() {
	cfg := configs.LoadConfig()

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zlog.Sync()

	// DB
	db, err := configs.Connect(cfg)
	if err != nil {
		zlog.Fatal("connect database", zap.Error(err))
	}

	// join table (many2many MenuItem<->Customization)
	if err := db.SetupJoinTable(&entity.MenuItem{}, "Customizations", &entity.MenuCustomization{}); err != nil {
		zlog.Fatal("setup join table", zap.Error(err))
	}

	// migrate
	if err := configs.Migrate(db); err != nil {
		zlog.Fatal("migrate database", zap.Error(err))
	}

	if err := configs.SeedAdmin(db, cfg, zlog); err != nil {
		zlog.Fatal("seed admin", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db, zlog); err != nil {
			zlog.Fatal("seed demo data", zap.Error(err))
		}
	}

	// status notifications go to the broker when one is configured,
	// otherwise to the log
	var notifier notify.Notifier = notify.NewLogNotifier(zlog)
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, zlog)
		if err != nil {
			zlog.Warn("rabbitmq unreachable, falling back to log notifier", zap.Error(err))
		} else {
			notifier = amqpNotifier
		}
	}
	defer notifier.Close()

	hub := ws.NewCartHub(zlog)

	// carts snapshot to the DB and mirror to the normalized rows
	backend := repository.NewCartSnapshotRepository(db)
	cartRepo := repository.NewCartRepository(db)
	manager := cart.NewManager(backend, zlog,
		cart.WithRemotes(services.NewCartRemoteFunc(cartRepo)),
		cart.WithSyncInterval(cfg.CartSyncInterval),
		cart.WithChangeListener(hub.BroadcastCart),
	)
	defer manager.Close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(zlog))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Static("/uploads", "./uploads")

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      zlog,
		Carts:    manager,
		Notifier: notifier,
		Hub:      hub,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
