package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/config"
	"github.com/zeidalqadri/owlwritey-sub000/internal/database"
	"github.com/zeidalqadri/owlwritey-sub000/internal/handler"
	"github.com/zeidalqadri/owlwritey-sub000/internal/middleware"
	"github.com/zeidalqadri/owlwritey-sub000/internal/queue"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
	"github.com/zeidalqadri/owlwritey-sub000/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Repositories and the charter core.
	users := repository.NewUserRepo(db)
	tokens := repository.NewSessionRepo(db)
	vesselRepo := repository.NewVesselRepo(db)
	assignmentRepo := repository.NewAssignmentRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	charterSvc := charter.NewService(
		repository.NewVesselStore(vesselRepo, assignmentRepo),
		reservationRepo,
	)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	vesselH := handler.NewVesselHandler(vesselRepo)
	assignH := handler.NewAssignmentHandler(vesselRepo, assignmentRepo, users, charterSvc)
	reservationH := handler.NewReservationHandler(charterSvc, reservationRepo, vesselRepo)
	ownerH := handler.NewOwnerReservationHandler(charterSvc, reservationRepo, vesselRepo)
	operatorH := handler.NewOperatorReservationHandler(charterSvc, reservationRepo, vesselRepo)
	availH := handler.NewAvailabilityHandler(charterSvc, vesselRepo)

	// Lifecycle event consumer writes logs/reservation.log in the background.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("lifecycle consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rdb == nil && rlCfg.Enabled {
		log.Printf("redis unreachable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBrowse(e, cfg.JWTSecret, vesselH, availH)
	router.RegisterCharter(e, cfg.JWTSecret, vesselH, assignH, reservationH, ownerH, operatorH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
