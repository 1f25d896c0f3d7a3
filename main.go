package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"congestion-cloud/internal/observability/metrics"
	"congestion-cloud/internal/toll/application"
	"congestion-cloud/internal/toll/infrastructure/rules"
	tollhttp "congestion-cloud/internal/toll/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ruleSet, err := loadRules(cfg, logger)
	if err != nil {
		logger.Fatalf("load rules: %v", err)
	}

	metrics.Init()

	calc, err := ruleSet.Calculator()
	if err != nil {
		logger.Fatalf("calculator error: %v", err)
	}
	taxService, err := application.NewTaxService(calc, application.SystemClock{})
	if err != nil {
		logger.Fatalf("tax service error: %v", err)
	}
	taxHandler, err := tollhttp.NewHandler(taxService)
	if err != nil {
		logger.Fatalf("tax handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/congestions/tax", taxHandler)
	mux.Handle("/api/v1/congestions/tax/", taxHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

// loadRules reads the charging rules once at startup. The process refuses to
// start on any rule error rather than run with partial rules.
func loadRules(cfg config, logger *log.Logger) (*rules.RuleSet, error) {
	switch cfg.RulesSource {
	case "file":
		logger.Printf("loading toll rules from %s", cfg.RulesConfig)
		return rules.LoadFile(cfg.RulesConfig)
	case "postgres":
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return nil, err
		}
		logger.Print("loading toll rules from postgres")
		return rules.NewPostgresSource(db).Load(ctx)
	default:
		logger.Fatalf("unknown rules source %q", cfg.RulesSource)
		return nil, nil
	}
}

type config struct {
	HTTPAddr    string
	RulesSource string
	RulesConfig string
	DatabaseURL string
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		RulesSource: getenvDefault("RULES_SOURCE", "file"),
		RulesConfig: getenvDefault("RULES_CONFIG", "rules.yaml"),
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
	}
	if cfg.RulesSource == "postgres" && cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required for the postgres rules source")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
