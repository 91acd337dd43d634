package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripwrap/internal/config"
	"github.com/mmynk/tripwrap/internal/middleware"
	"github.com/mmynk/tripwrap/internal/places"
	"github.com/mmynk/tripwrap/internal/service"
	"github.com/mmynk/tripwrap/internal/storage/sqlite"
	"github.com/mmynk/tripwrap/pkg/logging"
)

// placesCacheTTL bounds how long a nearby lookup is reused for the same spot.
const placesCacheTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.SetupWithLevel(slog.LevelInfo)
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Nearby place lookups are optional
	var lookup places.Lookup
	if cfg.PlacesEnabled() {
		google := places.NewGoogleClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey, cfg.PlacesTimeout)
		lookup = places.NewCachedLookup(google, placesCacheTTL)
		slog.Info("Place lookups enabled", "timeout", cfg.PlacesTimeout)
	} else {
		slog.Warn("No Places API key configured, POIs are named from saved locations only")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	interceptors := connect.WithInterceptors(
		middleware.UserIdentity(),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)

	tripSvc := service.NewTripService(store, places.NewResolver(lookup), service.Options{
		Location:         cfg.Location(),
		POIRadiusMeters:  cfg.POIRadiusMeters,
		HighlightsPerDay: cfg.HighlightsPerDay,
	})

	mux := http.NewServeMux()

	// Register Connect services
	tripPath, tripHandler := service.NewTripServiceHandler(tripSvc, interceptors)
	mux.Handle(tripPath, tripHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Connect server starting", "address", cfg.Addr, "timezone", cfg.Location().String())
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// loggingMiddleware logs non-RPC requests; RPCs are logged by the interceptor.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.UserIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
