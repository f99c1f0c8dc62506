package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tripveda/tour-backoffice/internal/config"
	"github.com/tripveda/tour-backoffice/internal/database"
	"github.com/tripveda/tour-backoffice/internal/handler"
	"github.com/tripveda/tour-backoffice/internal/itinerary"
	"github.com/tripveda/tour-backoffice/internal/queue"
	"github.com/tripveda/tour-backoffice/internal/repository"
	"github.com/tripveda/tour-backoffice/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the catalogue cache, the
	// response cache and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, caching and rate limiting disabled")
	}

	// Background consumer appending booking events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	hotels := repository.NewHotelRepo(db)
	lookup := repository.NewCachedHotelLookup(hotels, rdb, time.Duration(cfg.HotelCacheTTLMin)*time.Minute)
	engine := itinerary.NewEngine(lookup)

	bookings := repository.NewBookingRepo(db)
	counters := repository.NewCounterRepo(db)
	worksheets := repository.NewWorksheetRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterBookings(e,
		handler.NewBookingHandler(bookings, counters, worksheets, engine),
		handler.NewWorksheetHandler(bookings, worksheets),
		rdb,
	)
	router.RegisterCatalogue(e, handler.NewCatalogueHandler(hotels, lookup), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
