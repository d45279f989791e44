package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/auth"
	"github.com/jpkrishna28/mls-point-locator/internal/config"
	"github.com/jpkrishna28/mls-point-locator/internal/database"
	"github.com/jpkrishna28/mls-point-locator/internal/handler"
	"github.com/jpkrishna28/mls-point-locator/internal/middleware"
	"github.com/jpkrishna28/mls-point-locator/internal/model"
	"github.com/jpkrishna28/mls-point-locator/internal/queue"
	"github.com/jpkrishna28/mls-point-locator/internal/repository"
	"github.com/jpkrishna28/mls-point-locator/internal/router"
	"github.com/jpkrishna28/mls-point-locator/internal/service"
	"github.com/jpkrishna28/mls-point-locator/internal/session"
	"github.com/jpkrishna28/mls-point-locator/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	// A database failure degrades to an empty store rather than aborting:
	// the dashboard keeps serving with zero facilities known and updates
	// report failure until the table is reachable again.
	var facilityRepo *repository.FacilityRepo
	var records []model.Record
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Printf("database unavailable, serving empty facility store: %v", err)
	} else {
		facilityRepo = repository.NewFacilityRepo(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		records, err = facilityRepo.LoadAll(ctx)
		cancel()
		if err != nil {
			log.Printf("loading mls_points failed, serving empty facility store: %v", err)
			records = nil
		}
	}
	facilityStore := store.New(records)
	log.Printf("facility store loaded: %d records", facilityStore.Len())

	window := time.Duration(cfg.SessionTTLMin) * time.Minute
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, window)
	} else {
		log.Printf("redis unavailable, using in-memory session store")
		sessions = session.NewMemoryStore(window)
	}

	verifier := auth.NewStaticVerifier(cfg.AdminUser, cfg.AdminPassHash)

	var table service.FacilityTable
	if facilityRepo != nil {
		table = facilityRepo
	}
	updater := service.NewUpdater(table, facilityStore, service.AMQPPublisher{})

	authHandler := handler.NewAuthHandler(cfg, verifier, sessions)
	facilityHandler := handler.NewFacilityHandler(facilityStore, updater)
	reportHandler := handler.NewReportHandler(facilityStore)

	gate := middleware.SessionAuth(cfg.SessionSecret, sessions)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Audit trail consumer; reconnects forever in the background.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, authHandler, facilityHandler, reportHandler, gate, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
