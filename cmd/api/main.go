package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/auth"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/dialogue"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/oracle"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/router"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/whatsapp"
	"github.com/ovaphlow/pitchfork/service-health-bot/pkg/database"
	"github.com/ovaphlow/pitchfork/service-health-bot/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-health-bot")

	// init db
	sqlDB, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// record store
	ids := utilities.NewIDGenerator(snowflakeNode())
	users := user.NewUserService(sqlxDB)
	complaints := complaint.NewService(sqlxDB, ids)
	chats := chat.NewService(sqlxDB, ids)

	setupCtx, cancelSetup := context.WithTimeout(ctx, 30*time.Second)
	if err := ensureTables(setupCtx, users, complaints, chats); err != nil {
		cancelSetup()
		sugar.Fatalf("ensure tables: %v", err)
	}
	cancelSetup()

	// oracle and gateway
	gemini, err := oracle.NewGenAI(ctx, oracle.ConfigFromEnv(), sugar.Named("oracle"))
	if err != nil {
		sugar.Fatalf("gemini client: %v", err)
	}
	waCfg := whatsapp.ConfigFromEnv()
	gateway := whatsapp.NewGateway(waCfg, sugar.Named("whatsapp"))

	dedupeCfg := whatsapp.DedupeConfigFromEnv()
	redisClient := whatsapp.NewRedisClient(dedupeCfg)
	if redisClient != nil {
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			sugar.Warnf("redis ping failed, dedupe will fail open: %v", err)
		}
	} else {
		sugar.Info("REDIS_ADDR not set; duplicate delivery suppression disabled")
	}
	dedupe := whatsapp.NewDeduper(redisClient, dedupeCfg.TTL, sugar.Named("dedupe"))

	// dialogue engine
	dlgLogger := sugar.Named("dialogue")
	rt := dialogue.NewRouter(dialogue.ConfigFromEnv(), users, complaints, chats, gemini, dialogue.DefaultCatalog(), dlgLogger)
	engine := dialogue.NewEngine(rt, gateway, chats, dlgLogger)

	// admin auth is optional
	var tokens *auth.TokenService
	if authCfg := auth.ConfigFromEnv(); authCfg.Secret != "" {
		tokens, err = auth.NewTokenService(authCfg)
		if err != nil {
			sugar.Fatalf("admin tokens: %v", err)
		}
	}

	// mount http server
	handler := router.RegisterRoutes(router.Handlers{
		Webhook: whatsapp.NewHandler(waCfg, engine, dedupe, sugar.Named("webhook")),
		Users:   user.NewHandler(users, complaints, sugar.Named("admin")),
		Chats:   chat.NewHandler(chats, sugar.Named("admin")),
		Tokens:  tokens,
	}, sugar)
	srv := &http.Server{
		Addr:              httpAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for in-flight webhook turns
	doneCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}

func ensureTables(ctx context.Context, users *user.UserService, complaints *complaint.Service, chats *chat.Service) error {
	if err := users.EnsureTables(ctx); err != nil {
		return err
	}
	if err := complaints.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure complaints: %w", err)
	}
	if err := chats.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure chat_logs: %w", err)
	}
	return nil
}

func httpAddr() string {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		return v
	}
	return "0.0.0.0:8431"
}

func snowflakeNode() int64 {
	n, err := strconv.ParseInt(os.Getenv("SNOWFLAKE_NODE"), 10, 64)
	if err != nil {
		return 1
	}
	return n
}
