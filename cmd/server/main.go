/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the rent accounting server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse command-line flags
  2. Initialize SQLite store
  3. Create API handler with dependencies
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION:
  Flags take precedence over environment variables:
  -port / PORT        HTTP server port (default: 8080)
  -db   / DB_PATH     SQLite database path (default: rent.db,
                      use ":memory:" for an in-memory database)
  -seed               Load demo data into an empty database
        LOG_LEVEL     logrus level (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the database, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/prop-pilot/rent-engine/api"
	"github.com/prop-pilot/rent-engine/rent"
	"github.com/prop-pilot/rent-engine/store/sqlite"
)

func main() {
	_ = godotenv.Load() // optionally load environment file

	log := newLogger()

	// Flags, with env fallbacks
	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "rent.db"), "SQLite database path")
	seed := flag.Bool("seed", false, "load demo data into an empty database")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	if *seed {
		if err := seedDemoData(context.Background(), store); err != nil {
			log.WithError(err).Fatal("failed to seed demo data")
		}
		log.Info("demo data loaded")
	}

	// Initialize handler and router
	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		log.Warnf("invalid LOG_LEVEL %q, defaulting to info", levelStr)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// seedDemoData loads a small worked example: one tenant, two units, and a
// few months of rent payments on the first unit.
func seedDemoData(ctx context.Context, store rent.Store) error {
	tenants := rent.NewTenantService(store)
	units := rent.NewUnitService(store)
	payments := rent.NewPaymentService(store)

	tenant, err := tenants.CreateTenant(ctx, rent.Tenant{
		FullName:   "Maria Petrova",
		NationalID: "8012054321",
		Email:      "maria.petrova@example.com",
		Phone:      "+359 88 123 4567",
	})
	if err != nil {
		return err
	}

	leaseStart := rent.Today().AddYears(-2)

	apartment, err := units.CreateUnit(ctx, rent.PropertyUnit{
		Address:        "12 Vitosha Blvd, Sofia",
		Type:           "apartment",
		TenantID:       tenant.ID,
		BaseRentAmount: rent.MustParseDecimal("1000.00"),
		LeaseStartDate: leaseStart,
	})
	if err != nil {
		return err
	}

	if _, err := units.CreateUnit(ctx, rent.PropertyUnit{
		Address:        "4 Shipka St, Plovdiv",
		Type:           "office",
		TenantID:       tenant.ID,
		BaseRentAmount: rent.MustParseDecimal("1750.50"),
		LeaseStartDate: rent.Today().AddMonths(-6),
	}); err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		if _, err := payments.RecordPayment(ctx, rent.Payment{
			UnitID:      apartment.ID,
			Amount:      rent.MustParseDecimal("1000.00"),
			PaymentDate: leaseStart.AddMonths(i + 1),
			PaymentType: rent.PaymentRent,
			Status:      rent.StatusPaid,
			Description: "monthly rent",
		}); err != nil {
			return err
		}
	}

	return nil
}
