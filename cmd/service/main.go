package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoestore/config"
	"shoestore/internal/database"
	"shoestore/internal/hashing"
	"shoestore/internal/logger"
	"shoestore/internal/producer"
	"shoestore/internal/repository"
	"shoestore/internal/router"
	"shoestore/internal/service"
	"shoestore/internal/session"
	"shoestore/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	sessionTTL := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	var sessions session.Store
	if cfg.Redis.Enabled {
		store, err := session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sessionTTL, log)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer store.Close()
		sessions = store
	} else {
		sessions = session.NewMemoryStore(sessionTTL)
	}

	var events service.EventBus
	if cfg.Kafka.Enabled {
		p := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		events = p
	} else {
		events = service.NopEventBus{}
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	hasher := hashing.NewBcrypt(0)

	cartSvc := service.NewCartService(repos)
	accountSvc := service.NewAccountService(repos, hasher, tokens, cartSvc, cfg.JWT.AccessExp, log)
	catalogSvc := service.NewCatalogService(repos)
	checkoutSvc := service.NewCheckoutService(repos, events, log)
	orderSvc := service.NewOrderService(repos, events, log)

	if cfg.Admin.Password != "" {
		if err := accountSvc.SeedAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal("admin seeding failed", zap.Error(err))
		}
	} else {
		log.Warn("ADMIN_PASSWORD not set, skipping admin seeding")
	}

	r := router.Router(router.Deps{
		Accounts: accountSvc,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Tokens:   tokens,
		Sessions: sessions,
		Log:      log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	log.Info("http server stopped")
}
