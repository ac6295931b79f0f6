package router

import (
	"context"
	"time"

	"github.com/anonto42/threadboard/backend/internal/handlers"
	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/anonto42/threadboard/backend/internal/repositories"
	"github.com/anonto42/threadboard/backend/internal/services"
	"github.com/anonto42/threadboard/backend/pkg/config"
	"github.com/anonto42/threadboard/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Warn.Printf("%s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			logger.Info.Printf("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.Info.Println("Global middleware configured.")
}

// SetupRoutes migrates the relational schema, builds the repositories and
// services over the given connections and registers every route
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) error {
	err := pgdb.AutoMigrate(
		&models.Member{},
		&models.Posting{},
		&models.MemberPosting{},
	)
	if err != nil {
		return err
	}
	logger.Info.Println("PostgreSQL auto-migrations completed for all models.")

	// --- Initialize Repositories ---
	memberRepo := repositories.NewPostgresMemberRepository(pgdb)
	postingRepo := repositories.NewPostgresPostingRepository(pgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgClient.Database(cfg.MongoDatabase), cfg.CommentsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := commentRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.Info.Printf("MongoDB indexes ensured on %s.%s.", cfg.MongoDatabase, cfg.CommentsCollection)

	opts := services.Options{
		StoreTimeout:  cfg.StoreTimeout,
		WriteAttempts: cfg.CommentWriteRetries,
	}
	RegisterHandlers(e,
		services.NewPostingService(postingRepo, memberRepo, opts),
		services.NewCommentService(commentRepo, postingRepo, opts),
	)
	return nil
}

// RegisterHandlers wires the HTTP handlers onto e
func RegisterHandlers(e *echo.Echo, postingService *services.PostingService, commentService *services.CommentService) {
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("")

	memberHandler := handlers.NewMemberHandler(postingService)
	memberHandler.RegisterMemberRoutes(api)
	logger.Info.Println("Member routes configured.")

	postingHandler := handlers.NewPostingHandler(postingService, commentService)
	postingHandler.RegisterPostingRoutes(api)
	logger.Info.Println("Posting routes configured.")

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)
	logger.Info.Println("Comment routes configured.")

	logger.Info.Println("All routes configured.")
}
