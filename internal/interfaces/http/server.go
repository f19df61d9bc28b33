// Package http is the REST adapter over the application services.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/service"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Services bundles the application services the API exposes
type Services struct {
	Auth           *service.AuthService
	Plans          *service.PlanService
	Budgets        *service.BudgetService
	Accommodations *service.AccommodationService
	TripItems      *service.TripItemService
	TravelInfo     *service.TravelInfoService
	Users          *service.UserService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	tokens     *auth.TokenManager
	logger     *zap.Logger
}

// NewServer creates the HTTP server and wires all routes
func NewServer(config ServerConfig, services Services, tokens *auth.TokenManager, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		config: config,
		router: router,
		tokens: tokens,
		logger: logger,
	}

	router.Use(gin.Recovery())
	router.Use(s.loggingMiddleware())
	router.Use(corsMiddleware())

	s.setupRoutes(services)
	return s
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) setupRoutes(services Services) {
	handlers := NewHandlers(services, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	api.POST("/users/login", handlers.Login)

	authed := api.Group("", auth.RequireAuth(s.tokens))
	{
		plans := authed.Group("/plans")
		{
			plans.GET("", handlers.ListPlans)
			plans.POST("", handlers.CreatePlan)
			plans.GET("/:id", handlers.GetPlan)
			plans.PUT("/:id", handlers.UpdatePlan)
			plans.DELETE("/:id", handlers.DeletePlan)
			plans.GET("/:id/pdf", handlers.ExportPlan)
		}

		budgets := authed.Group("/budgets")
		{
			budgets.POST("/batch", handlers.ReplaceBudget)
			budgets.GET("/activity/:activityId", handlers.GetBudget)
			budgets.GET("/activity/:activityId/export", handlers.ExportBudgetWorkbook)
			budgets.POST("/import", handlers.ImportBudgetWorkbook)
			budgets.PATCH("/:id/status", handlers.ToggleBudgetStatus)
		}

		accommodations := authed.Group("/accommodations")
		{
			accommodations.POST("/batch", handlers.ReplaceAccommodations)
			accommodations.POST("/import", handlers.ImportAccommodationWorkbook)
			accommodations.GET("/activity/:activityId", handlers.GetAccommodations)
			accommodations.PATCH("/:id/status", handlers.ToggleAccommodationStatus)
		}

		tripItems := authed.Group("/trip-items")
		{
			tripItems.POST("", handlers.ReplaceTripItems)
			tripItems.POST("/import", handlers.ImportTripItemWorkbook)
			tripItems.GET("/activity/:activityId", handlers.GetTripItems)
		}

		travelInfo := authed.Group("/travel-info")
		{
			travelInfo.GET("/activity/:activityId", handlers.GetTravelInfo)
			travelInfo.PUT("/activity/:activityId", handlers.UpsertTravelInfo)
		}

		users := authed.Group("/users", auth.RequireAdmin())
		{
			users.GET("", handlers.ListUsers)
			users.POST("", handlers.CreateUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}
	}
}

// Start runs the HTTP server until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
