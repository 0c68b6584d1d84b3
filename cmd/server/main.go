package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"licibit/internal/accessgate"
	authhandler "licibit/internal/auth/handler"
	authservice "licibit/internal/auth/service"
	authstore "licibit/internal/auth/store"
	"licibit/internal/document"
	"licibit/internal/notify"
	"licibit/internal/platform/config"
	"licibit/internal/platform/httpserver"
	"licibit/internal/platform/kafka"
	"licibit/internal/platform/logger"
	"licibit/internal/platform/postgres"
	"licibit/internal/platform/redis"
	proposalhandler "licibit/internal/proposal/handler"
	proposalmetrics "licibit/internal/proposal/metrics"
	proposalservice "licibit/internal/proposal/service"
	proposalstore "licibit/internal/proposal/store"
	"licibit/internal/taxonomy"
	tenderhandler "licibit/internal/tender/handler"
	tendermetrics "licibit/internal/tender/metrics"
	tenderservice "licibit/internal/tender/service"
	tenderstore "licibit/internal/tender/store"
	"licibit/pkg/platform/httputil"
	"licibit/pkg/platform/middleware/metadata"
	"licibit/pkg/platform/middleware/requestid"
	"licibit/pkg/platform/middleware/requesttime"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: Postgres when configured, in-memory otherwise so a bare
	// `go run` still serves the full API.
	var (
		users     authservice.UserStore
		sessions  authstore.SessionStore
		tenders   tenderservice.TenderStore
		proposals proposalservice.ProposalStore
		outbox    notify.OutboxStore
	)
	if cfg.PostgresURL != "" {
		if err := postgres.Migrate(cfg.MigrationURL, cfg.PostgresURL); err != nil {
			return err
		}
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		outboxDB, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer outboxDB.Close()

		users = authstore.NewPostgresUsers(pool)
		sessions = authstore.NewPostgresSessions(pool)
		tenders = tenderstore.NewPostgres(pool)
		proposals = proposalstore.NewPostgres(pool)
		outbox = notify.NewPostgresOutbox(outboxDB)
	} else {
		log.Warn("POSTGRES_URL not set, using in-memory stores")
		users = authstore.NewInMemoryUsers()
		sessions = authstore.NewInMemorySessions()
		tenders = tenderstore.NewInMemory()
		proposals = proposalstore.NewInMemory()
		outbox = notify.NewMemoryOutbox()
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = authstore.NewSessionCache(redisClient, sessions, cfg.SessionTTL)
	}

	kafkaClient, err := kafka.New(ctx, cfg.KafkaBrokers, cfg.NotificationsTopic)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
	}

	// Services.
	auth := authservice.New(users, sessions, []byte(cfg.JWTSigningKey), cfg.SessionTTL)
	catalog := taxonomy.Default()
	tenderSvc := tenderservice.New(tenders, catalog, tendermetrics.New())

	composer := notify.NewComposer(cfg.WhatsAppNumber)
	notifier := notify.NewService(outbox, composer)
	proposalSvc := proposalservice.New(proposals, tenders, notifier, proposalmetrics.New(), log)

	docSigner := document.NewSigner([]byte(cfg.JWTSigningKey+"/downloads"), 15*time.Minute)
	docSvc := document.NewService(document.NewMemoryBlobStore(), docSigner)

	// Router.
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(accessgate.Middleware(accessgate.DefaultTable(), authservice.NewGateResolver(auth), log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authhandler.New(auth, log).Register(r)
	tenderhandler.New(tenderSvc, log).Register(r)
	proposalhandler.New(proposalSvc, log).Register(r)
	document.NewHandler(docSvc).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting licibit server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if kafkaClient != nil {
		relay := notify.NewRelay(outbox, kafkaClient, log)
		g.Go(func() error {
			err := relay.Run(gctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
