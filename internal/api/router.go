package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/diasys/diasys-api/internal/api/handler"
	"github.com/diasys/diasys-api/internal/api/middleware"
	"github.com/diasys/diasys-api/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	sessions ports.SessionService,
	predictions ports.PredictionService,
	history ports.PredictionRepository,
	db *mongo.Database,
	rdb *redis.Client,
	predictor ports.Predictor,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("diasys"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions)
	predictionHandler := handler.NewPredictionHandler(predictions, history)
	authRequired := middleware.Auth(sessions)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout, authRequired)

	// --- Prediction routes (access-gated) ---
	e.POST("/predict", predictionHandler.Predict, authRequired)
	e.GET("/history", predictionHandler.History, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb, predictor)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
