package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillswap/backend/internal/config"
	contenthandler "skillswap/backend/internal/content/handler"
	"skillswap/backend/internal/content/pipeline"
	contentrepo "skillswap/backend/internal/content/repository"
	"skillswap/backend/internal/content/summarize"
	"skillswap/backend/internal/db"
	"skillswap/backend/internal/events"
	healthhandler "skillswap/backend/internal/health/handler"
	matchhandler "skillswap/backend/internal/match/handler"
	"skillswap/backend/internal/match/recommend"
	matchrepo "skillswap/backend/internal/match/repository"
	messagehandler "skillswap/backend/internal/message/handler"
	messagerepo "skillswap/backend/internal/message/repository"
	messageservice "skillswap/backend/internal/message/service"
	"skillswap/backend/internal/realtime"
	"skillswap/backend/internal/security"
	"skillswap/backend/internal/server"
	"skillswap/backend/internal/session"
	skillhandler "skillswap/backend/internal/skill/handler"
	skillrepo "skillswap/backend/internal/skill/repository"
	"skillswap/backend/internal/telemetry/otel"
	userhandler "skillswap/backend/internal/user/handler"
	userrepo "skillswap/backend/internal/user/repository"
	userservice "skillswap/backend/internal/user/service"
)

// repos bundles the per-entity stores; backed by Postgres when DATABASE_URL is
// set, in-memory otherwise.
type repos struct {
	users    userservice.UserRepo
	lister   session.UserLister
	skills   skillrepo.Repository
	matches  matchrepo.Repository
	messages messagerepo.Repository
	content  contentrepo.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "skillswap-backend", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	var conn *sql.DB
	var store repos
	if cfg.DatabaseURL != "" {
		conn, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer conn.Close()
		users := userrepo.NewPostgresRepository(conn)
		store = repos{
			users:    users,
			lister:   users,
			skills:   skillrepo.NewPostgresRepository(conn),
			matches:  matchrepo.NewPostgresRepository(conn),
			messages: messagerepo.NewPostgresRepository(conn),
			content:  contentrepo.NewPostgresRepository(conn),
		}
	} else {
		log.Println("DATABASE_URL not set; using in-memory stores (dev only)")
		users := userrepo.NewMemoryRepository()
		store = repos{
			users:    users,
			lister:   users,
			skills:   skillrepo.NewMemoryRepository(),
			matches:  matchrepo.NewMemoryRepository(),
			messages: messagerepo.NewMemoryRepository(),
			content:  contentrepo.NewMemoryRepository(),
		}
	}

	kafkaEmitter, err := events.NewKafkaEmitter(cfg.EventsKafkaBrokersList(), cfg.EventsKafkaTopic)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	var sinks []events.Emitter
	if kafkaEmitter != nil {
		sinks = append(sinks, kafkaEmitter)
	}
	sinks = append(sinks, otel.NewEventEmitter(providers.LoggerProvider))
	emitter := events.NewFanout(sinks...)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	sessions := session.NewRegistry()
	hasher := security.NewHasher(cfg.BcryptCost)
	userSvc := userservice.NewService(store.users, hasher)
	messageSvc := messageservice.NewService(store.messages, store.users)

	summarizer := summarize.NewHTTPClient(cfg.SummarizerURL)
	pipe := pipeline.New(store.content, summarizer, emitter)

	connections := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(connections, sessions)

	var pinger healthhandler.Pinger
	if conn != nil {
		pinger = conn
	}

	router := server.NewRouter(server.Deps{
		Users:  userhandler.NewHandler(userSvc, sessions, emitter),
		Skills: skillhandler.NewHandler(store.skills),
		Matches: matchhandler.NewHandler(
			store.matches,
			store.users,
			recommend.NewHTTPClient(cfg.RecommenderURL),
			recommend.NewLocal(store.skills, store.users),
		),
		Messages:     messagehandler.NewHandler(messageSvc, emitter),
		Content:      contenthandler.NewHandler(store.content, pipe, emitter, cfg.UploadDir, cfg.MaxUploadBytes),
		Realtime:     realtime.NewHandler(connections, broadcaster),
		Health:       healthhandler.NewHandler(pinger),
		Sessions:     sessions,
		UserLister:   store.lister,
		DevAutoLogin: cfg.DevAutoLogin,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// Let running ingestion tasks and in-flight async emits finish before the
	// emitter closes.
	pipe.Wait()
	time.Sleep(events.ShutdownDrainDuration)
	if emitter != nil {
		if err := emitter.Close(); err != nil {
			log.Printf("events close: %v", err)
		}
	}
	log.Println("HTTP server stopped")
}
