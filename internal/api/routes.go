package api

import (
	"net/http"

	"github.com/escartian/FitByte/internal/metrics"
	"github.com/escartian/FitByte/internal/ratelimit"
	"github.com/escartian/FitByte/internal/service"

	"github.com/gin-gonic/gin"
)

// Dependencies is everything the HTTP layer is built from.
type Dependencies struct {
	AuthService       service.AuthService
	ExerciseService   service.ExerciseService
	WorkoutService    service.WorkoutService
	CompletionService service.CompletionService
	Sessions          *service.SessionCodec
	Cookie            CookieConfig
	AuthLimiter       ratelimit.Limiter
	Metrics           *metrics.Manager
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService, deps.Sessions, deps.Cookie, deps.Metrics)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService)
	workoutHandler := NewWorkoutHandler(deps.WorkoutService, deps.CompletionService, deps.Metrics)

	router.Use(
		RequestLogger(),
		PanicRecovery(deps.Metrics),
		RequestMetrics(deps.Metrics),
		SessionMiddleware(deps.Sessions, deps.Cookie.Name),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/enums", exerciseHandler.Enums)

		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:name", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:name/images/:index", exerciseHandler.ExerciseImage)
		}

		authGroup := apiV1.Group("/auth")
		{
			limited := authGroup.Group("")
			if deps.AuthLimiter != nil {
				limited.Use(RateLimit(deps.AuthLimiter, "auth", deps.Metrics))
			}
			limited.POST("/register", authHandler.Register)
			limited.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// Listing and reading workouts works anonymously; visibility depends on the session.
		apiV1.GET("/workouts", workoutHandler.ListWorkouts)
		apiV1.GET("/workouts/:id", workoutHandler.GetWorkout)
	}

	protected := apiV1.Group("")
	protected.Use(RequireSession())
	{
		protected.GET("/me", authHandler.Me)
		protected.DELETE("/users/:id", authHandler.DeleteUser)

		protected.POST("/exercises", exerciseHandler.CreateExercise)

		protected.POST("/workouts", workoutHandler.CreateWorkout)
		protected.POST("/workouts/finish", workoutHandler.FinishWorkout)

		protected.POST("/completed_workout", workoutHandler.RecordCompletion)
		protected.GET("/history", workoutHandler.History)
		protected.DELETE("/history/:entryId", workoutHandler.RemoveHistoryEntry)
	}
}
