package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escartian/FitByte/internal/api"
	"github.com/escartian/FitByte/internal/cache"
	"github.com/escartian/FitByte/internal/config"
	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/logging"
	"github.com/escartian/FitByte/internal/metrics"
	"github.com/escartian/FitByte/internal/ratelimit"
	"github.com/escartian/FitByte/internal/repository/mongo"
	"github.com/escartian/FitByte/internal/sanitize"
	"github.com/escartian/FitByte/internal/service"
	"github.com/escartian/FitByte/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}
	logging.Setup(cfg.Log)
	log.Info("starting FitByte server")

	ctx := context.Background()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	indexCtx, cancelIndexes := context.WithTimeout(ctx, time.Minute)
	err = mongo.EnsureIndexes(indexCtx, appDB)
	cancelIndexes()
	if err != nil {
		log.Fatalf("could not create indexes: %s", err)
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB, cfg.Database.OpTimeout)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB, cfg.Database.OpTimeout)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB, cfg.Database.OpTimeout)

	// --- Storage ---
	images, err := storage.NewImageStorage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("could not initialize image storage: %s", err)
	}

	// --- Services ---
	genders := make([]domain.Gender, 0, len(cfg.Registration.Genders))
	for _, g := range cfg.Registration.Genders {
		genders = append(genders, domain.Gender(g))
	}

	sanitizer := sanitize.NewStrict()
	sessions := service.NewSessionCodec(cfg.Session.Secret, cfg.Session.Expiration)

	authService := service.NewAuthService(userRepo, sanitizer, sessions, service.RegistrationPolicy{
		Genders: genders,
		MinAge:  cfg.Registration.MinAge,
	})
	exerciseService := service.NewExerciseService(exerciseRepo, cache.NewJSONCache(cfg.Cache.SizeMB, cfg.Cache.TTL), images, sanitizer, genders)
	completionService := service.NewCompletionService(userRepo, workoutRepo, sanitizer)
	workoutService := service.NewWorkoutService(workoutRepo, completionService, sanitizer)

	// --- Rate limiting ---
	var authLimiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Errorf("failed to close redis client: %s", err)
			}
		}()
		authLimiter = ratelimit.NewRedisLimiter(redisClient, "fitbyte:auth", cfg.RateLimit.AuthPerMinute)
		log.Infof("auth rate limit backed by redis at %s", cfg.Redis.Addr)
	} else {
		authLimiter = ratelimit.NewLocalLimiter(cfg.RateLimit.AuthPerMinute)
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("fitbyte", "api", registry)

	// --- Gin Engine ---
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	api.SetupRoutes(router, api.Dependencies{
		AuthService:       authService,
		ExerciseService:   exerciseService,
		WorkoutService:    workoutService,
		CompletionService: completionService,
		Sessions:          sessions,
		Cookie:            api.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		AuthLimiter:       authLimiter,
		Metrics:           metricsManager,
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// in-flight requests get 5 seconds to finish
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Info("server exiting")
}
