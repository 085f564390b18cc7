package main

import (
	"net/http"
	"time"

	"swapgate/src/Infrastructure/sideshift"
	"swapgate/src/config"
	"swapgate/src/logger"
	"swapgate/src/metrics"
	"swapgate/src/swap/adapter/exchange"
	"swapgate/src/swap/adapter/wallet"
	swapHD "swapgate/src/swap/delivery/http"
	swap "swapgate/src/swap/usecase"

	_ "swapgate/docs" // Swagger docs

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

//	@title			Swapgate API
//	@version		1.0
//	@description	Cross-asset swap quote service backed by SideShift.
//	@BasePath		/

func main() {
	cfg := config.LoadFromEnv()
	logg := logger.New(cfg.Env, cfg.LogLevel)

	// --- Metrics ---
	m := metrics.NewSwapMetrics(prometheus.DefaultRegisterer)

	// --- Provider client ---
	shift, err := sideshift.NewClient(cfg.SideShift.BaseURL,
		sideshift.WithLogger(logg.Zerolog()),
		sideshift.WithObserver(func(endpoint, outcome string, elapsed time.Duration) {
			m.RecordProviderRequest(endpoint, outcome, elapsed.Seconds())
		}),
	)
	if err != nil {
		logg.Fatalf("Failed to build provider client: %v", err)
	}

	// --- Dependencies ---
	exchangeAdapter := exchange.NewSideShiftAdapter(shift, cfg.SideShift.AffiliateID)
	walletAdapter := wallet.NewMockAdapter(logg)
	swapSvc := swap.NewService(exchangeAdapter, walletAdapter, logg, m, cfg)
	handler := swapHD.NewHandler(swapSvc, logg)

	// --- Router ---
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logg.Infof("%s %s status:%d duration:%s",
				req.Method,
				req.URL.Path,
				ww.Status(),
				time.Since(start),
			)
		})
	})

	// --- Healthcheck ---
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- Metrics endpoint ---
	r.Handle("/metrics", promhttp.Handler())

	// --- Swagger ---
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// --- API routes ---
	handler.RegisterRoutes(r)

	// --- Start server ---
	logg.Infof("Starting service on %s (env=%s)", cfg.ListenAddr, cfg.Env)
	logg.Infof("Swagger UI available at http://localhost%s/swagger/index.html", cfg.ListenAddr)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatalf("Server terminated unexpectedly: %v", err)
	}
}
