package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/search"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pricing and affordability JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
		handler := rateLimited(limiter, newServeMux(cfg.Financing.Terms()))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

type priceRequest struct {
	HomeValue    float64             `json:"home_value"`
	Restrictions search.Restrictions `json:"restrictions"`
}

type optimizeRequest struct {
	Restrictions search.Restrictions `json:"restrictions"`
}

type mortgageResponse struct {
	Valid     bool                    `json:"valid"`
	HomeValue float64                 `json:"home_value,omitempty"`
	Breakdown *mortgage.CostBreakdown `json:"breakdown,omitempty"`
}

// newServeMux builds the API routes around one financing offer.
func newServeMux(financing mortgage.FinancingTerms) *http.ServeMux {
	engine := search.New(financing)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /v1/price", func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.HomeValue <= 0 {
			writeError(w, http.StatusBadRequest, "home_value must be positive")
			return
		}

		m, err := engine.BestMortgageFor(req.HomeValue, req.Restrictions)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(m))
	})

	mux.HandleFunc("POST /v1/optimize", func(w http.ResponseWriter, r *http.Request) {
		var req optimizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		m, err := engine.Optimize(req.Restrictions)
		if err != nil {
			respondEngineError(w, err)
			return
		}

		zap.L().Info("optimize request served",
			zap.Float64("savings", req.Restrictions.Savings),
			zap.Float64("home_value", m.HomeValue),
		)
		writeJSON(w, http.StatusOK, toResponse(m))
	})

	return mux
}

// rateLimited rejects requests over the shared token-bucket limit.
func rateLimited(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func toResponse(m mortgage.Mortgage) mortgageResponse {
	if !m.IsValid() {
		return mortgageResponse{Valid: false}
	}
	return mortgageResponse{Valid: true, HomeValue: m.HomeValue, Breakdown: m.Cost()}
}

func respondEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, mortgage.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	zap.L().Error("engine failure", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
