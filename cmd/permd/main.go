package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"peerperm/internal/adapters/api"
	"peerperm/internal/adapters/api/middleware"
	"peerperm/internal/adapters/db/memory"
	pgrepo "peerperm/internal/adapters/db/postgres"
	"peerperm/internal/application/access"
	appauth "peerperm/internal/application/auth"
	"peerperm/internal/config"
	"peerperm/internal/domain/netperm"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.LoadConfig()

	log.Info().
		Str("http_port", cfg.HTTPPort).
		Bool("auth_enabled", cfg.Auth.Enabled).
		Bool("db_enabled", cfg.Database.Enabled).
		Msg("Starting peerperm server")

	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		log.Fatal().Msg("AUTH_ENABLED is set but AUTH_SECRET is empty")
	}

	// Initialize the repository (Postgres or in-memory)
	var repo netperm.Repository
	var locker *pgrepo.Locker

	if cfg.Database.Enabled {
		log.Info().Str("dsn", cfg.Database.DSN).Msg("Initializing Postgres repository")
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping postgres")
		}
		if err := pgrepo.RunMigrations(ctx, db, cfg.Database.Migrations); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}
		cancel()

		pool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open pgx pool")
		}
		locker = pgrepo.NewLocker(pool)
		repo = pgrepo.NewRepository(db)
	} else {
		log.Warn().Msg("DB disabled - using in-memory repository")
		repo = memory.NewRepository()
	}

	// Initialize services
	service := access.NewService(repo)
	authService := appauth.NewService(&cfg.Auth)

	// Import seed entries; a spec that does not parse refuses startup.
	if cfg.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("seed_file", cfg.SeedFile).Msg("load seed file")
		}

		importSeed := func(ctx context.Context) error {
			return service.ImportSpecs(ctx, seed.Whitebind, seed.Whitelist)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if locker != nil {
			err = locker.WithLock(ctx, "seed-import", importSeed)
		} else {
			err = importSeed(ctx)
		}
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("import seed entries")
		}

		log.Info().
			Int("whitebind", len(seed.Whitebind)).
			Int("whitelist", len(seed.Whitelist)).
			Msg("Seed entries imported")
	}

	// Initialize API handler and wire the event stream
	handler := api.NewHandler(service)
	service.SetNotifier(handler.Hub())

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}
	if cfg.AllowedOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.AllowedOrigin}
	}
	r.Use(cors.New(corsConfig))

	handler.RegisterRoutes(r, middleware.AuthMiddleware(authService, &cfg.Auth))

	log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
